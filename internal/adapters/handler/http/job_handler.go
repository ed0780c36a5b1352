package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

type JobHandler struct {
	responder
	service ports.JobService
}

func NewJobHandler(service ports.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

type createJobRequest struct {
	Title        string `json:"title"`
	CompanyName  string `json:"companyName"`
	Location     string `json:"location"`
	Salary       int64  `json:"salary"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type updateJobRequest struct {
	Title        *string `json:"title"`
	CompanyName  *string `json:"companyName"`
	Location     *string `json:"location"`
	Salary       *int64  `json:"salary"`
	Type         *string `json:"type"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
}

// ListJobs godoc
// @Summary      Lists every job
// @Description  Public. Each job carries a summary of the employer who posted it.
// @Tags         jobs
// @Produce      json
// @Success      200
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.List(r.Context())
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"count": len(jobs), "jobs": jobs})
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"job": job})
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req createJobRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := ports.CreateJobInput{
		Title:        req.Title,
		CompanyName:  req.CompanyName,
		Location:     req.Location,
		Salary:       req.Salary,
		Type:         domain.JobType(req.Type),
		Description:  req.Description,
		Requirements: req.Requirements,
	}

	job, err := h.service.Create(r.Context(), identity, input)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusCreated, envelope{"message": "Job created successfully", "job": job})
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req updateJobRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := ports.UpdateJobInput{
		Title:        req.Title,
		CompanyName:  req.CompanyName,
		Location:     req.Location,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if req.Type != nil {
		jobType := domain.JobType(*req.Type)
		input.Type = &jobType
	}

	job, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), identity, input)
	if err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"message": "Job updated successfully", "job": job})
}

func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), identity); err != nil {
		h.error(w, r, err)
		return
	}
	h.json(w, http.StatusOK, envelope{"message": "Job deleted successfully"})
}
