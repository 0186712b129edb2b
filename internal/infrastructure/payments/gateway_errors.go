package payments

import (
	"errors"
	"strings"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrMissingCredentials   = errors.New("missing payment gateway credentials")
)

// classifyGatewayError turns a provider error into a short reason for log lines.
func classifyGatewayError(err error) string {
	switch {
	case err == nil:
		return ""
	case isGatewayBadRequest(err):
		return "bad_request"
	case isGatewayUnauthorized(err):
		return "unauthorized"
	case isGatewayNotFound(err):
		return "not_found"
	case isGatewayInvalidUsers(err):
		return "invalid_users"
	default:
		return "unknown"
	}
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400") ||
		strings.Contains(msg, "invalid_request_error")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401") ||
		strings.Contains(msg, "invalid_client") || strings.Contains(msg, "invalid api key")
}

func isGatewayNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"status\":404") || strings.Contains(msg, "resource_missing") ||
		strings.Contains(msg, "resource_not_found")
}

func isGatewayInvalidUsers(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}
