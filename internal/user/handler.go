// File: internal/user/handler.go
package user

import (
	"strings"

	"blad_backend/internal/common"
	"blad_backend/internal/middleware"
	"blad_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the user routes. authMW verifies the credential,
// adminMW must be a RequireRole(admin) gate.
func (h *Handler) RegisterRoutes(router gin.IRouter, authMW, adminMW gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("", h.register)
		users.GET("", middleware.Unless(middleware.HasQuery("reqEmail"), authMW, adminMW), h.listUsers)

		users.GET("/admin/:email", authMW, middleware.RequireSelf("email"), h.checkRole(shared.RoleAdmin))
		users.GET("/volunteer/:email", authMW, middleware.RequireSelf("email"), h.checkRole(shared.RoleVolunteer))
		users.GET("/donor/:email", authMW, middleware.RequireSelf("email"), h.checkRole(shared.RoleDonor))

		users.PATCH("/admin/:id", authMW, adminMW, h.promote(shared.RoleAdmin))
		users.PATCH("/volunteer/:id", authMW, adminMW, h.promote(shared.RoleVolunteer))
		users.PATCH("/blocked/:id", authMW, adminMW, h.setStatus(shared.StatusBlocked))
		users.PATCH("/active/:id", authMW, adminMW, h.setStatus(shared.StatusActive))
	}
}

func (h *Handler) register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		h.logger.Warn("User registration: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	if err := c.ShouldBindBodyWith(&req.Extras, binding.JSON); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, result)
}

// listUsers returns every user for admins, or the users matching ?reqEmail=.
func (h *Handler) listUsers(c *gin.Context) {
	var params FilterParams
	if email := strings.TrimSpace(c.Query("reqEmail")); email != "" {
		params.Email = &email
	}
	users, err := h.service.ListUsers(c.Request.Context(), params)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, users)
}

func (h *Handler) checkRole(role shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := h.service.HasRole(c.Request.Context(), c.Param("email"), role)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		common.RespondOK(c, RoleCheckResponse{string(role): ok})
	}
}

func (h *Handler) promote(role shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.service.PromoteTo(c.Request.Context(), c.Param("id"), role)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		common.RespondOK(c, result)
	}
}

func (h *Handler) setStatus(status shared.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), status)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		common.RespondOK(c, result)
	}
}
