package request

import (
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase"
)

type UpdateProjectRequest struct {
	Status   *string `json:"status"`
	Progress *int    `json:"progress"`
	Notes    *string `json:"notes"`
}

func (r UpdateProjectRequest) ToUpdate() usecase.ProjectUpdate {
	out := usecase.ProjectUpdate{Progress: r.Progress, Notes: r.Notes}
	if r.Status != nil {
		s := entities.ProjectStatus(normalizeStatus(*r.Status))
		out.Status = &s
	}
	return out
}

type ProjectCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r ProjectCommentRequest) ResolveText() string {
	return strings.TrimSpace(r.Text)
}

type MilestoneRequest struct {
	Title   string     `json:"title" binding:"required"`
	DueDate *time.Time `json:"dueDate"`
}
