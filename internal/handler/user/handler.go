package user

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fenixclinic/clinic-api/internal/handler"
	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/service/user"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/httputil"
)

type Handler struct {
	service user.Service
}

func NewHandler(service user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/roles", h.ListRoles)
		users.GET("/getByRole", h.ListByRole)
		users.GET("/permissions", h.ListPermissions)
		users.POST("/change-password", h.ChangePassword)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Get(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	id, err := handler.ParseIDParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, u)
}

func (h *Handler) List(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}

	filters := &model.UserFilters{
		Role:      strings.TrimSpace(c.Query("role")),
		FirstName: strings.TrimSpace(c.Query("first_name")),
	}
	if raw := c.Query("start_birth_date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Validation(err.Error(), err))
			return
		}
		filters.StartBirthDate = &parsed
	}
	if raw := c.Query("end_birth_date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Validation(err.Error(), err))
			return
		}
		filters.EndBirthDate = &parsed
	}

	users, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, users)
}

func (h *Handler) ListRoles(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, roles)
}

func (h *Handler) ListByRole(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	roleID, err := strconv.ParseInt(c.Query("role_id"), 10, 64)
	if err != nil || roleID <= 0 {
		httputil.RespondWithError(c, errors.Validation("invalid role_id", err))
		return
	}

	users, err := h.service.ListByRole(c.Request.Context(), roleID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, users)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	roleID, err := strconv.ParseInt(c.Query("role_id"), 10, 64)
	if err != nil || roleID <= 0 {
		httputil.RespondWithError(c, errors.Validation("invalid role_id", err))
		return
	}

	perms, err := h.service.ListPermissions(c.Request.Context(), roleID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, perms)
}

// ChangePassword changes the authenticated user's own password.
func (h *Handler) ChangePassword(c *gin.Context) {
	identity, ok := handler.RequireIdentity(c)
	if !ok {
		return
	}
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), identity.ID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "password changed")
}

func (h *Handler) Update(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	id, err := handler.ParseIDParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	id, err := handler.ParseIDParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "user deleted")
}
