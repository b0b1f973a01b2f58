package patient

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fenixclinic/clinic-api/internal/handler"
	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/service/patient"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/httputil"
)

// Shorter search terms degenerate into near-full table scans.
const minSearchLen = 3

type Handler struct {
	service patient.Service
}

func NewHandler(service patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/count", h.Count)
		patients.GET("/search", h.Search)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.PUT("/manage/:id", h.Manage)
		patients.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
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

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) List(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	page, err := handler.BindPagination(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	patients, total, err := h.service.List(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithPagination(c, patients, page.Skip, page.Limit, total)
}

func (h *Handler) Count(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"count": count})
}

func (h *Handler) Search(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	query := strings.TrimSpace(c.Query("query"))
	if len(query) < minSearchLen {
		httputil.RespondWithError(c, errors.Validation("search query must be at least 3 characters", nil))
		return
	}
	page, err := handler.BindPagination(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	patients, err := h.service.Search(c.Request.Context(), query, page.Skip, page.Limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
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
	var req model.UpdatePatientRequest
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

func (h *Handler) Manage(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	id, err := handler.ParseIDParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var req model.ManagePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	managed, err := h.service.Manage(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, managed)
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
	httputil.RespondWithMessage(c, "patient deleted")
}
