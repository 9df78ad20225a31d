// File: internal/auth/handler.go
package auth

import (
	"blad_backend/internal/common"
	"blad_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the token issuing endpoint.
type Handler struct {
	tokenService shared.TokenService
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(tokenService shared.TokenService, logger *zap.Logger) *Handler {
	return &Handler{
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRoutes mounts POST /jwt. The route is open.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/jwt", h.issueToken)
}

func (h *Handler) issueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Issue token: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	token, expiresAt, err := h.tokenService.IssueToken(shared.Identity{Email: req.Email, Name: req.Name})
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, shared.TokenResponse{
		Token:     token,
		TokenType: common.AuthorizationTypeBearer,
		ExpiresIn: int64(h.tokenService.TTL().Seconds()),
		ExpiresAt: expiresAt,
	})
}
