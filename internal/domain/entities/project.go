package entities

import "time"

type ProjectStatus string

const (
	ProjectStatusWaiting    ProjectStatus = "waiting"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusReview     ProjectStatus = "review"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
)

const ProjectNumberPrefix = "PROJ"

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusWaiting, ProjectStatusInProgress, ProjectStatusReview, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusCompleted MilestoneStatus = "completed"
)

type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Status      MilestoneStatus `json:"status"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

type ProjectFile struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is the delivery workspace created when an order is paid.
// Deleting a project never affects its order.
type Project struct {
	ID            string        `json:"id"`
	ProjectNumber string        `json:"project_number"`
	OrderID       string        `json:"order_id"`
	UserID        string        `json:"user_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Status        ProjectStatus `json:"status"`
	Progress      int           `json:"progress"`
	Milestones    []Milestone   `json:"milestones"`
	Files         []ProjectFile `json:"files"`
	Comments      []Comment     `json:"comments"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SetProgress clamps to 0..100.
func (p *Project) SetProgress(progress int) {
	switch {
	case progress < 0:
		progress = 0
	case progress > 100:
		progress = 100
	}
	p.Progress = progress
}

func (p *Project) SetStatus(status ProjectStatus) {
	p.Status = status
	if status == ProjectStatusCompleted {
		p.Progress = 100
	}
}
