package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

type ApplicationHandler struct {
	responder
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

type applyRequest struct {
	JobID       string `json:"jobId"`
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Apply godoc
// @Summary      Applies the authenticated student to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      403
// @Failure      404
// @Failure      409
// @Router       /jobs/apply [post]
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req applyRequest
	if !h.decode(w, r, &req) {
		return
	}

	app, err := h.service.Apply(r.Context(), identity, ports.ApplyInput{
		JobID:       req.JobID,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusCreated, envelope{"message": "Applied successfully", "application": app})
}

func (h *ApplicationHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	apps, err := h.service.ListApplicants(r.Context(), chi.URLParam(r, "id"), identity)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"count": len(apps), "applicants": apps})
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	apps, err := h.service.ListMine(r.Context(), identity)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"count": len(apps), "applications": apps})
}

func (h *ApplicationHandler) ListForEmployer(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	apps, err := h.service.ListForEmployer(r.Context(), identity)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"count": len(apps), "applications": apps})
}

// UpdateStatus godoc
// @Summary      Sets the status of an application
// @Description  Only the employer who posted the job may change it. Any of pending, accepted, rejected is accepted.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      403
// @Failure      404
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req updateStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	app, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), identity, domain.ApplicationStatus(req.Status))
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"message": "Application status updated to " + string(app.Status), "application": app})
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	if err := h.service.Withdraw(r.Context(), chi.URLParam(r, "id"), identity); err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"message": "Application withdrawn successfully"})
}
