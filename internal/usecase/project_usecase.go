package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrInvalidProjectID = errors.New("invalid project id")
)

type ProjectUpdate struct {
	Status   *entities.ProjectStatus
	Progress *int
	Notes    *string
}

type IProjectUseCase interface {
	GetProject(ctx context.Context, principal entities.Principal, id string) (entities.Project, error)
	ListProjects(ctx context.Context, principal entities.Principal) ([]entities.Project, error)
	UpdateProject(ctx context.Context, principal entities.Principal, id string, in ProjectUpdate) (entities.Project, error)
	AddProjectComment(ctx context.Context, principal entities.Principal, id, text string) (entities.Project, error)
	AddMilestone(ctx context.Context, principal entities.Principal, id, title string, dueDate *time.Time) (entities.Project, error)
}

type ProjectUseCase struct {
	projects interfaces.IProjectRepository
	now      func() time.Time
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

func NewProjectUseCase(projects interfaces.IProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{projects: projects, now: func() time.Time { return time.Now().UTC() }}
}

func (u *ProjectUseCase) GetProject(ctx context.Context, principal entities.Principal, id string) (entities.Project, error) {
	return u.loadAuthorized(ctx, principal, id)
}

func (u *ProjectUseCase) ListProjects(ctx context.Context, principal entities.Principal) ([]entities.Project, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if principal.IsAdmin() {
		return u.projects.ListAll(ctx)
	}
	return u.projects.ListByUserID(ctx, principal.UserID)
}

func (u *ProjectUseCase) UpdateProject(ctx context.Context, principal entities.Principal, id string, in ProjectUpdate) (entities.Project, error) {
	if err := requireAdmin(principal); err != nil {
		return entities.Project{}, err
	}
	p, err := u.loadAuthorized(ctx, principal, id)
	if err != nil {
		return entities.Project{}, err
	}
	if in.Progress != nil {
		p.SetProgress(*in.Progress)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return entities.Project{}, invalidField("status", "is not a valid project status")
		}
		p.SetStatus(*in.Status)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	p.UpdatedAt = u.now()
	updated, err := u.projects.Update(ctx, p)
	if err != nil {
		return entities.Project{}, err
	}
	log.Printf("[project][usecase] updated project_id=%s status=%s progress=%d", updated.ID, updated.Status, updated.Progress)
	return updated, nil
}

func (u *ProjectUseCase) AddProjectComment(ctx context.Context, principal entities.Principal, id, text string) (entities.Project, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.Project{}, invalidField("text", "is required")
	}
	p, err := u.loadAuthorized(ctx, principal, id)
	if err != nil {
		return entities.Project{}, err
	}
	now := u.now()
	p.Comments = append(p.Comments, entities.Comment{
		ID:        uuid.NewString(),
		AuthorID:  principal.UserID,
		Text:      text,
		CreatedAt: now,
	})
	p.UpdatedAt = now
	return u.projects.Update(ctx, p)
}

func (u *ProjectUseCase) AddMilestone(ctx context.Context, principal entities.Principal, id, title string, dueDate *time.Time) (entities.Project, error) {
	if err := requireAdmin(principal); err != nil {
		return entities.Project{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return entities.Project{}, invalidField("title", "is required")
	}
	p, err := u.loadAuthorized(ctx, principal, id)
	if err != nil {
		return entities.Project{}, err
	}
	m := entities.Milestone{ID: uuid.NewString(), Title: title, Status: entities.MilestoneStatusPending}
	if dueDate != nil {
		d := dueDate.UTC()
		m.DueDate = &d
	}
	p.Milestones = append(p.Milestones, m)
	p.UpdatedAt = u.now()
	return u.projects.Update(ctx, p)
}

func (u *ProjectUseCase) loadAuthorized(ctx context.Context, principal entities.Principal, id string) (entities.Project, error) {
	if err := requirePrincipal(principal); err != nil {
		return entities.Project{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Project{}, ErrInvalidProjectID
	}
	p, err := u.projects.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	if !principal.IsAdmin() && p.UserID != principal.UserID {
		return entities.Project{}, ErrForbidden
	}
	return p, nil
}
