package report

import (
	"github.com/gin-gonic/gin"

	"github.com/fenixclinic/clinic-api/internal/handler"
	"github.com/fenixclinic/clinic-api/internal/service/report"
	"github.com/fenixclinic/clinic-api/pkg/httputil"
)

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/medical-history/:patient_id", h.MedicalHistory)
		reports.GET("/medical-certificate/:appointment_id", h.MedicalCertificate)
		reports.GET("/recipe/:appointment_id", h.Recipe)
	}
}

// MedicalHistory responds with the PDF base64-encoded inside the usual JSON
// envelope; the other two reports are plain attachment downloads.
func (h *Handler) MedicalHistory(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	patientID, err := handler.ParseIDParam(c, "patient_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	doc, err := h.service.MedicalHistory(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doc)
}

func (h *Handler) MedicalCertificate(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	appointmentID, err := handler.ParseIDParam(c, "appointment_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	f, err := h.service.MedicalCertificate(c.Request.Context(), appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	defer h.service.ScheduleCleanup(f)

	c.FileAttachment(f.Path, f.Name)
}

func (h *Handler) Recipe(c *gin.Context) {
	if _, ok := handler.RequireIdentity(c); !ok {
		return
	}
	appointmentID, err := handler.ParseIDParam(c, "appointment_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	f, err := h.service.Recipe(c.Request.Context(), appointmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	defer h.service.ScheduleCleanup(f)

	c.FileAttachment(f.Path, f.Name)
}
