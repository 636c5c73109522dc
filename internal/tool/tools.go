package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
)

// ProjectStore is the slice of the project repository the tools need.
type ProjectStore interface {
	FindByID(ctx context.Context, id string) (*model.Project, error)
	FindAll(ctx context.Context) ([]*model.Project, error)
	FindByClientID(ctx context.Context, clientID string) ([]*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
}

// Analyzer produces a free-text health report for a project summary.
type Analyzer interface {
	AnalyzeProject(ctx context.Context, projectDetails string) string
}

// NewProjectRegistry builds the portal's tool catalog: list_projects,
// analyze_project, create_task, update_project_status.
func NewProjectRegistry(projects ProjectStore, analyzer Analyzer, logger *zap.Logger) *Registry {
	t := &projectTools{projects: projects, analyzer: analyzer}

	return NewRegistry(logger,
		&Tool{
			Name:        "list_projects",
			Description: "List all active projects in the system.",
			Parameters:  map[string]any{},
			Handler:     t.listProjects,
		},
		&Tool{
			Name:        "analyze_project",
			Description: "Analyze a specific project using AI to get a health report.",
			Parameters: objectSchema(map[string]any{
				"projectId": stringParam("The ID of the project to analyze"),
			}, "projectId"),
			Handler: t.analyzeProject,
		},
		&Tool{
			Name:        "create_task",
			Description: "Add a new task to a specific project.",
			Parameters: objectSchema(map[string]any{
				"projectId":       stringParam("The ID of the project"),
				"taskDescription": stringParam("The description of the task to add"),
			}, "projectId", "taskDescription"),
			Handler: t.createTask,
		},
		&Tool{
			Name:        "update_project_status",
			Description: "Update the status of a project.",
			Parameters: objectSchema(map[string]any{
				"projectId": stringParam("The ID of the project"),
				"status":    stringParam("The new status (e.g., 'In Progress', 'Completed')"),
			}, "projectId", "status"),
			Handler: t.updateProjectStatus,
		},
	)
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func stringParam(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

type projectTools struct {
	projects ProjectStore
	analyzer Analyzer
}

func (t *projectTools) listProjects(ctx context.Context, principal *model.Principal, _ Args) (any, error) {
	if principal.IsAdmin() {
		return t.projects.FindAll(ctx)
	}
	return t.projects.FindByClientID(ctx, principal.ID)
}

// loadOwnedProject loads a project and enforces the ownership-or-admin check.
func (t *projectTools) loadOwnedProject(ctx context.Context, principal *model.Principal, projectID string) (*model.Project, error) {
	p, err := t.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && !p.OwnedBy(principal.ID) {
		return nil, apperr.Forbidden("Access denied to this project")
	}
	return p, nil
}

func (t *projectTools) analyzeProject(ctx context.Context, principal *model.Principal, args Args) (any, error) {
	projectID, ok := args.String("projectId")
	if !ok {
		return nil, apperr.Invalid("Missing projectId argument")
	}

	p, err := t.loadOwnedProject(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Name: %s, Status: %s, Description: %s, Tasks: %d",
		p.Name, p.Status, p.Description, len(p.Tasks))

	return map[string]any{"analysis": t.analyzer.AnalyzeProject(ctx, details)}, nil
}

func (t *projectTools) createTask(ctx context.Context, principal *model.Principal, args Args) (any, error) {
	projectID, okID := args.String("projectId")
	description, okDesc := args.String("taskDescription")
	if !okID || !okDesc {
		return nil, apperr.Invalid("Missing projectId or taskDescription argument")
	}

	p, err := t.loadOwnedProject(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}

	task := model.ProjectTask{
		ID:        uuid.NewString(),
		Title:     description,
		Status:    "Pending",
		Assignee:  "Admin",
		DueDate:   time.Now().AddDate(0, 0, 7),
		Completed: false,
	}
	p.Tasks = append(p.Tasks, task)

	if err := t.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	return map[string]any{"message": "Task added successfully", "task": task}, nil
}

func (t *projectTools) updateProjectStatus(ctx context.Context, principal *model.Principal, args Args) (any, error) {
	projectID, okID := args.String("projectId")
	status, okStatus := args.String("status")
	if !okID || !okStatus {
		return nil, apperr.Invalid("Missing projectId or status argument")
	}
	if !model.ValidStatus(status) {
		return nil, apperr.Invalid("Invalid status: %s", status)
	}

	p, err := t.loadOwnedProject(ctx, principal, projectID)
	if err != nil {
		return nil, err
	}

	p.Status = model.NormalizeStatus(status)
	if err := t.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	return map[string]any{"message": "Project status updated successfully", "status": p.Status}, nil
}
