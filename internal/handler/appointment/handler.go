package appointment

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fenixclinic/clinic-api/internal/handler"
	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/service/appointment"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/httputil"
)

type Handler struct {
	service appointment.Service
}

func NewHandler(service appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/search", h.Search)
		appointments.GET("/today", h.ListToday)
		appointments.GET("/upcoming", h.ListUpcoming)
		appointments.GET("/user/:user_id", h.ListByUser)
		appointments.GET("/patient/:patient_id", h.ListByPatient)
		appointments.GET("/patient/:patient_id/count", h.CountByPatient)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id", h.Update)
		appointments.PUT("/:id/manage", h.Manage)
		appointments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	var req model.CreateAppointmentRequest
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

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
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

	appointments, err := h.service.List(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

// Search accepts query, start_date and end_date parameters; the dates are
// parsed here because the wire format is plain "YYYY-MM-DD" text.
func (h *Handler) Search(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	page, err := handler.BindPagination(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	filters := &model.AppointmentSearchFilters{
		Query:      strings.TrimSpace(c.Query("query")),
		Pagination: page,
	}
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Validation(err.Error(), err))
			return
		}
		filters.StartDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Validation(err.Error(), err))
			return
		}
		filters.EndDate = &parsed
	}

	appointments, err := h.service.Search(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) ListToday(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	appointments, err := h.service.ListToday(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) ListUpcoming(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	page, err := handler.BindPagination(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointments, err := h.service.ListUpcoming(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) ListByUser(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	userID, err := handler.ParseIDParam(c, "user_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	page, err := handler.BindPagination(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointments, err := h.service.ListByUser(c.Request.Context(), userID, page.Skip, page.Limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	patientID, err := handler.ParseIDParam(c, "patient_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	page, err := handler.BindPagination(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointments, err := h.service.ListByPatient(c.Request.Context(), patientID, page.Skip, page.Limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) CountByPatient(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	patientID, err := handler.ParseIDParam(c, "patient_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	count, err := h.service.CountByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"count": count})
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
	var req model.UpdateAppointmentRequest
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
	var req model.UpdateAppointmentRequest
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
	httputil.RespondWithMessage(c, "appointment deleted")
}
