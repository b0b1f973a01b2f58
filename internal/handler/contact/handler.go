package contact

import (
	"github.com/gin-gonic/gin"

	"github.com/fenixclinic/clinic-api/internal/handler"
	"github.com/fenixclinic/clinic-api/internal/service/contact"
	"github.com/fenixclinic/clinic-api/pkg/httputil"
)

type Handler struct {
	service contact.Service
}

func NewHandler(service contact.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	{
		contacts.GET("/patient/:patient_id", h.ListByPatient)
	}
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

	contacts, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, contacts)
}
