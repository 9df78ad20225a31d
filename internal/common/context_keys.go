// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserEmailKey is the context key for storing the authenticated caller's email
	UserEmailKey = "userEmail"
	// UserClaimsKey stores the whole verified claims object
	UserClaimsKey = "userClaims"
	// RequestIDKey is the context key for the request id set by the request logger
	RequestIDKey = "requestID"
)
