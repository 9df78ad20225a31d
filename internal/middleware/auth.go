// File: internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"blad_backend/internal/common"
	"blad_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gates in this file never call c.Next(): gin advances to the next handler on
// its own, which lets Unless run them inline.

// AuthMiddleware verifies the bearer credential and attaches the decoded
// identity to the request context. Any failure is a 401.
func AuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(common.AuthorizationHeader) == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		c.Set(common.UserEmailKey, claims.Email)
		c.Set(common.UserClaimsKey, claims)
	}
}

// GetUserClaimsFromContext retrieves the verified claims from the Gin context.
func GetUserClaimsFromContext(c *gin.Context) *shared.Claims {
	val, exists := c.Get(common.UserClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*shared.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireRole admits the request only when the verified caller's stored role
// equals role and the account is not blocked. It performs exactly one account
// lookup per request and must be mounted after AuthMiddleware.
func RequireRole(accounts shared.AccountProvider, role shared.Role, logger *zap.Logger) gin.HandlerFunc {
	if !role.Valid() {
		panic("middleware: RequireRole called with unknown role " + string(role))
	}
	return func(c *gin.Context) {
		claims := GetUserClaimsFromContext(c)
		if claims == nil {
			panic("middleware: RequireRole mounted without AuthMiddleware")
		}

		account, err := accounts.GetAccountByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				logger.Info("Role check for unknown user", zap.String("email", claims.Email), zap.String("required_role", string(role)))
				common.RespondWithError(c, common.ErrForbidden)
				return
			}
			common.RespondWithError(c, err)
			return
		}

		if !account.Active() {
			logger.Info("Blocked user refused", zap.String("email", claims.Email))
			common.RespondWithError(c, common.ErrForbidden.WithDetails("Account is blocked."))
			return
		}
		if account.Role != role {
			logger.Debug("Insufficient role",
				zap.String("email", claims.Email),
				zap.String("role", string(account.Role)),
				zap.String("required_role", string(role)),
			)
			common.RespondWithError(c, common.ErrForbidden)
			return
		}
	}
}

// RequireSelf admits the request only when the email in the named path
// parameter is the verified caller's own.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetUserClaimsFromContext(c)
		if claims == nil {
			panic("middleware: RequireSelf mounted without AuthMiddleware")
		}
		if common.NormalizeEmail(c.Param(param)) != common.NormalizeEmail(claims.Email) {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("forbidden access"))
			return
		}
	}
}

// Unless runs gates in order unless skip reports true for the request.
// It stops at the first gate that aborts.
func Unless(skip func(*gin.Context) bool, gates ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skip(c) {
			return
		}
		for _, gate := range gates {
			gate(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

// HasQuery reports whether the request carries a non-empty query parameter key.
func HasQuery(key string) func(*gin.Context) bool {
	return func(c *gin.Context) bool {
		return strings.TrimSpace(c.Query(key)) != ""
	}
}
