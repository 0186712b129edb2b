package repository

import (
	"context"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"
)

const (
	defaultUsersTableName  = "users"
	defaultOffersTableName = "offers"
)

type addressItem struct {
	Street     string `dynamodbav:"street"`
	City       string `dynamodbav:"city"`
	PostalCode string `dynamodbav:"postal_code"`
	Country    string `dynamodbav:"country"`
}

// userItem accepts both the normalized billing_address map and the legacy flat fields.
type userItem struct {
	ID             string       `dynamodbav:"id"`
	Name           string       `dynamodbav:"name"`
	Email          string       `dynamodbav:"email"`
	Phone          string       `dynamodbav:"phone"`
	Company        string       `dynamodbav:"company"`
	BillingAddress *addressItem `dynamodbav:"billing_address"`
	Address        string       `dynamodbav:"address"`
	City           string       `dynamodbav:"city"`
	PostalCode     string       `dynamodbav:"postal_code"`
	Country        string       `dynamodbav:"country"`
}

type offerItem struct {
	ID          string `dynamodbav:"id"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description"`
	Price       string `dynamodbav:"price"`
	Active      bool   `dynamodbav:"active"`
}

// UserDynamoRepository reads accounts managed by the identity service.
type UserDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultUsersTableName)}
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	it, found, err := getByID[userItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func fromUserItem(it userItem) entities.User {
	u := entities.User{
		ID:         it.ID,
		Name:       it.Name,
		Email:      it.Email,
		Phone:      it.Phone,
		Company:    it.Company,
		Address:    it.Address,
		City:       it.City,
		PostalCode: it.PostalCode,
		Country:    it.Country,
	}
	if it.BillingAddress != nil {
		a := entities.Address(*it.BillingAddress)
		u.BillingAddress = &a
	}
	return u
}

// OfferDynamoRepository reads the service catalog.
type OfferDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOfferRepository = (*OfferDynamoRepository)(nil)

func NewOfferDynamoRepository(ddb DynamoAPI, tableName string) *OfferDynamoRepository {
	return &OfferDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultOffersTableName)}
}

func (r *OfferDynamoRepository) GetByID(ctx context.Context, id string) (entities.Offer, error) {
	it, found, err := getByID[offerItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.Offer{}, err
	}
	return entities.Offer{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Price:       parseDecimal(it.Price),
		Active:      it.Active,
	}, nil
}
