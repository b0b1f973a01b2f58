package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/fenixclinic/clinic-api/internal/handler"
	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/service/auth"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/httputil"
)

type Handler struct {
	service auth.Service
}

func NewHandler(service auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.GET("/profile", h.Profile)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, resp)
}

// Profile echoes the identity the auth middleware resolved.
func (h *Handler) Profile(c *gin.Context) {
	user, ok := handler.RequireIdentity(c)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, user)
}
