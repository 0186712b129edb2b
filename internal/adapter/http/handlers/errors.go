package handlers

import (
	"errors"
	"log"
	"net/http"

	"agency_billing/internal/usecase"
	"agency_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		log.Printf("[http][handler] %s %s failed code=%s err=%v", c.Request.Method, c.FullPath(), appErr.Code, appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapCommonError covers the errors every use case can return.
func mapCommonError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", verr.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Access denied", http.StatusForbidden)
	case errors.Is(err, usecase.ErrIdentifierExhausted):
		return pkg.NewDomainError("IDENTIFIER_EXHAUSTED", "could not allocate a unique number", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrPaymentProvider):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider unavailable", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentIntentRequired):
		return pkg.NewDomainErrorSimple("PAYMENT_INTENT_REQUIRED", "Payment intent id is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotSucceeded):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_SUCCEEDED", "Payment has not succeeded", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentMismatch):
		return pkg.NewDomainErrorSimple("PAYMENT_MISMATCH", "Payment does not belong to this record", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInsufficientPayment):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_PAYMENT", "Payment does not cover the required amount", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotPriced):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_PRICED", "Quote has no proposed amount", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotAcceptable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_ACCEPTABLE", "Quote is not awaiting acceptance", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote validity has expired", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteLocked):
		return pkg.NewDomainErrorSimple("QUOTE_LOCKED", "Quote is closed", http.StatusBadRequest)
	default:
		return mapOrderError(err)
	}
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrCheckoutRequired):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOfferNotFound):
		return pkg.NewDomainErrorSimple("OFFER_NOT_FOUND", "Offer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Order status transition not allowed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotCancellable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_CANCELLABLE", "Only pending orders without payment can be cancelled", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderAmountLocked):
		return pkg.NewDomainErrorSimple("ORDER_AMOUNT_LOCKED", "Order amount cannot change once a payment was made", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderCancelled):
		return pkg.NewDomainErrorSimple("ORDER_CANCELLED", "Order is cancelled", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDepositNotPaid):
		return pkg.NewDomainErrorSimple("DEPOSIT_NOT_PAID", "Deposit has not been paid", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDepositAlreadyPaid):
		return pkg.NewDomainErrorSimple("DEPOSIT_ALREADY_PAID", "Deposit already paid", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBalanceAlreadyPaid):
		return pkg.NewDomainErrorSimple("BALANCE_ALREADY_PAID", "Balance already paid", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	default:
		return mapOrderError(err)
	}
}

func mapProjectError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	default:
		return mapCommonError(err)
	}
}
