// File: internal/donation/handler.go
package donation

import (
	"strings"

	"blad_backend/internal/common"
	"blad_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for donation request handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new donation request handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the donation request routes.
func (h *Handler) RegisterRoutes(router gin.IRouter, authMW, adminMW gin.HandlerFunc) {
	requests := router.Group("/requests")
	{
		requests.POST("", h.create)
		requests.GET("", middleware.Unless(middleware.HasQuery("reqEmail"), authMW, adminMW), h.list)
		requests.GET("/:id", h.get)
		requests.PATCH("/:id", authMW, h.update)
		requests.DELETE("/:id", authMW, h.delete)
	}
}

func (h *Handler) create(c *gin.Context) {
	var in CreateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("Create donation request: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	result, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, result)
}

func (h *Handler) list(c *gin.Context) {
	var (
		requests []Request
		err      error
	)
	if email := strings.TrimSpace(c.Query("reqEmail")); email != "" {
		requests, err = h.service.ListByRequester(c.Request.Context(), email)
	} else {
		requests, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, requests)
}

func (h *Handler) get(c *gin.Context) {
	req, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, req)
}

func (h *Handler) update(c *gin.Context) {
	var in UpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("Update donation request: Invalid request body", zap.Error(err), zap.String("requestID", c.Param("id")))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	result, err := h.service.Update(c.Request.Context(), common.GetUserEmailFromContext(c), c.Param("id"), in)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, result)
}

func (h *Handler) delete(c *gin.Context) {
	result, err := h.service.Delete(c.Request.Context(), common.GetUserEmailFromContext(c), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, result)
}
