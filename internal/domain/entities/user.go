package entities

import "strings"

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Principal is the authenticated caller as supplied by the identity collaborator.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess implements the owner-or-admin-or-matching-email rule.
func (p Principal) CanAccess(ownerID, email string) bool {
	if p.UserID == "" {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	if ownerID != "" && ownerID == p.UserID {
		return true
	}
	return email != "" && p.Email != "" && strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(p.Email))
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// User is the account record read for billing purposes.
//
// Older accounts carry the flat Address/City/PostalCode/Country fields;
// newer ones carry BillingAddress.
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Company        string   `json:"company,omitempty"`
	BillingAddress *Address `json:"billing_address,omitempty"`

	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// BillingInfo prefers the normalized address and falls back field by field to the legacy ones.
func (u User) BillingInfo() BillingInfo {
	b := BillingInfo{
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Company:    u.Company,
		Address:    u.Address,
		City:       u.City,
		PostalCode: u.PostalCode,
		Country:    u.Country,
	}
	if a := u.BillingAddress; a != nil {
		b.Address = firstNonEmpty(a.Street, b.Address)
		b.City = firstNonEmpty(a.City, b.City)
		b.PostalCode = firstNonEmpty(a.PostalCode, b.PostalCode)
		b.Country = firstNonEmpty(a.Country, b.Country)
	}
	return b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
