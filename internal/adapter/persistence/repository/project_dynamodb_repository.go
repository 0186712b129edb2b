package repository

import (
	"context"
	"sort"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"
)

const (
	defaultProjectsTableName = "projects"
	projectsOrderIDIndex     = "order_id-index"
	projectsUserIDIndex      = "user_id-index"
)

type milestoneItem struct {
	ID          string `dynamodbav:"id"`
	Title       string `dynamodbav:"title"`
	Status      string `dynamodbav:"status"`
	DueDate     string `dynamodbav:"due_date,omitempty"`
	CompletedAt string `dynamodbav:"completed_at,omitempty"`
}

type projectFileItem struct {
	Name       string `dynamodbav:"name"`
	URL        string `dynamodbav:"url"`
	UploadedBy string `dynamodbav:"uploaded_by"`
	UploadedAt string `dynamodbav:"uploaded_at"`
}

type commentItem struct {
	ID        string `dynamodbav:"id"`
	AuthorID  string `dynamodbav:"author_id"`
	Text      string `dynamodbav:"text"`
	CreatedAt string `dynamodbav:"created_at"`
}

type projectItem struct {
	ID            string            `dynamodbav:"id"`
	ProjectNumber string            `dynamodbav:"project_number"`
	OrderID       string            `dynamodbav:"order_id"`
	UserID        string            `dynamodbav:"user_id"`
	Name          string            `dynamodbav:"name"`
	Description   string            `dynamodbav:"description,omitempty"`
	Status        string            `dynamodbav:"status"`
	Progress      int               `dynamodbav:"progress"`
	Milestones    []milestoneItem   `dynamodbav:"milestones"`
	Files         []projectFileItem `dynamodbav:"files"`
	Comments      []commentItem     `dynamodbav:"comments"`
	Notes         string            `dynamodbav:"notes,omitempty"`
	CreatedAt     string            `dynamodbav:"created_at"`
	UpdatedAt     string            `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id), user_id-index (PK: user_id)
type ProjectDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	identifiersTable string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb DynamoAPI, tableName, identifiersTable string) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{
		ddb:              ddb,
		tableName:        tableOrDefault(tableName, defaultProjectsTableName),
		identifiersTable: tableOrDefault(identifiersTable, defaultIdentifiersTableName),
	}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	err := createNumbered(ctx, r.ddb, r.identifiersTable, numberedRecord{
		table:  r.tableName,
		id:     p.ID,
		number: p.ProjectNumber,
		kind:   "project",
		item:   toProjectItem(p),
	}, time.Now())
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	it, found, err := getByID[projectItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Project, error) {
	items, err := queryIndex[projectItem](ctx, r.ddb, r.tableName, projectsOrderIDIndex, "order_id", orderID)
	if err != nil || len(items) == 0 {
		return entities.Project{}, err
	}
	out := fromProjectItems(items)
	return out[len(out)-1], nil
}

func (r *ProjectDynamoRepository) ListAll(ctx context.Context) ([]entities.Project, error) {
	items, err := scanAll[projectItem](ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	return fromProjectItems(items), nil
}

func (r *ProjectDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Project, error) {
	items, err := queryIndex[projectItem](ctx, r.ddb, r.tableName, projectsUserIDIndex, "user_id", userID)
	if err != nil {
		return nil, err
	}
	return fromProjectItems(items), nil
}

func (r *ProjectDynamoRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	if err := replaceExisting(ctx, r.ddb, r.tableName, p.ID, toProjectItem(p)); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func toProjectItem(p entities.Project) projectItem {
	it := projectItem{
		ID:            p.ID,
		ProjectNumber: p.ProjectNumber,
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        string(p.Status),
		Progress:      p.Progress,
		Milestones:    make([]milestoneItem, 0, len(p.Milestones)),
		Files:         make([]projectFileItem, 0, len(p.Files)),
		Comments:      make([]commentItem, 0, len(p.Comments)),
		Notes:         p.Notes,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
	for _, m := range p.Milestones {
		it.Milestones = append(it.Milestones, milestoneItem{
			ID:          m.ID,
			Title:       m.Title,
			Status:      string(m.Status),
			DueDate:     formatTimePtr(m.DueDate),
			CompletedAt: formatTimePtr(m.CompletedAt),
		})
	}
	for _, f := range p.Files {
		it.Files = append(it.Files, projectFileItem{Name: f.Name, URL: f.URL, UploadedBy: f.UploadedBy, UploadedAt: formatTime(f.UploadedAt)})
	}
	for _, c := range p.Comments {
		it.Comments = append(it.Comments, commentItem{ID: c.ID, AuthorID: c.AuthorID, Text: c.Text, CreatedAt: formatTime(c.CreatedAt)})
	}
	return it
}

func fromProjectItem(it projectItem) entities.Project {
	p := entities.Project{
		ID:            it.ID,
		ProjectNumber: it.ProjectNumber,
		OrderID:       it.OrderID,
		UserID:        it.UserID,
		Name:          it.Name,
		Description:   it.Description,
		Status:        entities.ProjectStatus(it.Status),
		Progress:      it.Progress,
		Notes:         it.Notes,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
	for _, m := range it.Milestones {
		p.Milestones = append(p.Milestones, entities.Milestone{
			ID:          m.ID,
			Title:       m.Title,
			Status:      entities.MilestoneStatus(m.Status),
			DueDate:     parseTimePtr(m.DueDate),
			CompletedAt: parseTimePtr(m.CompletedAt),
		})
	}
	for _, f := range it.Files {
		p.Files = append(p.Files, entities.ProjectFile{Name: f.Name, URL: f.URL, UploadedBy: f.UploadedBy, UploadedAt: parseTime(f.UploadedAt)})
	}
	for _, c := range it.Comments {
		p.Comments = append(p.Comments, entities.Comment{ID: c.ID, AuthorID: c.AuthorID, Text: c.Text, CreatedAt: parseTime(c.CreatedAt)})
	}
	return p
}

func fromProjectItems(items []projectItem) []entities.Project {
	out := make([]entities.Project, 0, len(items))
	for _, it := range items {
		out = append(out, fromProjectItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
