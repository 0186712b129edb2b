package response

import (
	"time"

	"agency_billing/internal/domain/entities"
)

type MilestoneResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type ProjectFileResponse struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProjectResponse struct {
	ID            string                `json:"id"`
	ProjectNumber string                `json:"projectNumber"`
	OrderID       string                `json:"orderId"`
	UserID        string                `json:"userId"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	Status        string                `json:"status"`
	Progress      int                   `json:"progress"`
	Milestones    []MilestoneResponse   `json:"milestones"`
	Files         []ProjectFileResponse `json:"files"`
	Comments      []CommentResponse     `json:"comments"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func FromProject(p entities.Project) ProjectResponse {
	out := ProjectResponse{
		ID:            p.ID,
		ProjectNumber: p.ProjectNumber,
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        string(p.Status),
		Progress:      p.Progress,
		Milestones:    make([]MilestoneResponse, 0, len(p.Milestones)),
		Files:         make([]ProjectFileResponse, 0, len(p.Files)),
		Comments:      make([]CommentResponse, 0, len(p.Comments)),
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, m := range p.Milestones {
		out.Milestones = append(out.Milestones, MilestoneResponse{
			ID:          m.ID,
			Title:       m.Title,
			Status:      string(m.Status),
			DueDate:     timePtr(m.DueDate),
			CompletedAt: timePtr(m.CompletedAt),
		})
	}
	for _, f := range p.Files {
		out.Files = append(out.Files, ProjectFileResponse(f))
	}
	for _, c := range p.Comments {
		out.Comments = append(out.Comments, CommentResponse(c))
	}
	return out
}

func FromProjects(ps []entities.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProject(p))
	}
	return out
}
