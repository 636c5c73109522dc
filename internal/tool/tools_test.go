package tool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
)

type fakeProjectStore struct {
	projects           map[string]*model.Project
	updates            int
	conflictNextUpdate bool
}

func newFakeProjectStore(projects ...*model.Project) *fakeProjectStore {
	store := &fakeProjectStore{projects: make(map[string]*model.Project)}
	for _, p := range projects {
		store.projects[p.ID] = p
	}
	return store
}

func (f *fakeProjectStore) FindByID(_ context.Context, id string) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, apperr.NotFound("Project not found")
	}
	copied := *p
	copied.Tasks = append([]model.ProjectTask(nil), p.Tasks...)
	return &copied, nil
}

func (f *fakeProjectStore) FindAll(_ context.Context) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjectStore) FindByClientID(_ context.Context, clientID string) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range f.projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) Update(_ context.Context, p *model.Project) error {
	stored, ok := f.projects[p.ID]
	if !ok {
		return apperr.NotFound("Project not found")
	}
	if f.conflictNextUpdate || stored.Version != p.Version {
		return apperr.Conflict("Project was modified concurrently, please retry")
	}
	f.updates++
	copied := *p
	copied.Version++
	f.projects[p.ID] = &copied
	return nil
}

type fakeAnalyzer struct {
	lastDetails string
}

func (f *fakeAnalyzer) AnalyzeProject(_ context.Context, details string) string {
	f.lastDetails = details
	return "looks healthy"
}

var (
	admin = &model.Principal{ID: "admin-1", Roles: []model.Role{model.RoleAdmin}}
	owner = &model.Principal{ID: "client-1", Roles: []model.Role{model.RoleClient}}
	other = &model.Principal{ID: "client-2", Roles: []model.Role{model.RoleClient}}
)

func project(id, clientID string) *model.Project {
	return &model.Project{
		ID:       id,
		Name:     "Project " + id,
		Status:   model.StatusActive,
		ClientID: clientID,
		Version:  1,
	}
}

func newTestRegistry(store *fakeProjectStore, analyzer *fakeAnalyzer) *Registry {
	return NewProjectRegistry(store, analyzer, zap.NewNop())
}

func TestCatalogOrderAndSchemas(t *testing.T) {
	registry := newTestRegistry(newFakeProjectStore(), &fakeAnalyzer{})

	catalog := registry.Catalog()
	names := make([]string, 0, len(catalog))
	for _, d := range catalog {
		names = append(names, d.Name)
	}
	require.Equal(t, []string{"list_projects", "analyze_project", "create_task", "update_project_status"}, names)

	require.Empty(t, catalog[0].Parameters)
	require.Equal(t, []string{"projectId"}, catalog[1].Parameters["required"])
	require.Equal(t, []string{"projectId", "taskDescription"}, catalog[2].Parameters["required"])
}

func TestUnknownTool(t *testing.T) {
	store := newFakeProjectStore(project("p1", "client-1"))
	registry := newTestRegistry(store, &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), admin, "frobnicate", nil)
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.Equal(t, "Unknown tool: frobnicate", apperr.Message(err))
	require.Zero(t, store.updates)
}

func TestListProjectsAdminSeesAll(t *testing.T) {
	store := newFakeProjectStore(
		project("p1", "client-1"), project("p2", "client-1"),
		project("p3", "client-2"), project("p4", "client-2"), project("p5", "client-2"),
	)
	registry := newTestRegistry(store, &fakeAnalyzer{})

	result, err := registry.Call(context.Background(), admin, "list_projects", nil)
	require.NoError(t, err)
	require.Len(t, result.([]*model.Project), 5)
}

func TestListProjectsClientSeesOwnOnly(t *testing.T) {
	store := newFakeProjectStore(
		project("p1", "client-1"), project("p2", "client-1"),
		project("p3", "client-2"), project("p4", "client-2"), project("p5", "client-2"),
	)
	registry := newTestRegistry(store, &fakeAnalyzer{})

	result, err := registry.Call(context.Background(), owner, "list_projects", nil)
	require.NoError(t, err)

	projects := result.([]*model.Project)
	require.Len(t, projects, 2)
	for _, p := range projects {
		require.Equal(t, "client-1", p.ClientID)
	}
}

func TestAnalyzeProjectBuildsSummary(t *testing.T) {
	p := project("p1", "client-1")
	p.Description = "portal backend"
	p.Tasks = []model.ProjectTask{{ID: "t1"}, {ID: "t2"}}
	analyzer := &fakeAnalyzer{}
	registry := newTestRegistry(newFakeProjectStore(p), analyzer)

	result, err := registry.Call(context.Background(), owner, "analyze_project", Args{"projectId": "p1"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"analysis": "looks healthy"}, result)
	require.Equal(t, "Name: Project p1, Status: Active, Description: portal backend, Tasks: 2", analyzer.lastDetails)
}

func TestAnalyzeProjectMissingArgument(t *testing.T) {
	registry := newTestRegistry(newFakeProjectStore(), &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), admin, "analyze_project", Args{})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.Equal(t, "Missing projectId argument", apperr.Message(err))
}

func TestAnalyzeProjectNotFound(t *testing.T) {
	registry := newTestRegistry(newFakeProjectStore(), &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), admin, "analyze_project", Args{"projectId": "nope"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAnalyzeProjectOwnershipCheck(t *testing.T) {
	registry := newTestRegistry(newFakeProjectStore(project("p1", "client-1")), &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), other, "analyze_project", Args{"projectId": "p1"})
	require.ErrorIs(t, err, apperr.ErrForbidden)
	require.Equal(t, "Access denied to this project", apperr.Message(err))
}

func TestCreateTaskAppendsOneTask(t *testing.T) {
	store := newFakeProjectStore(project("p1", "client-1"))
	registry := newTestRegistry(store, &fakeAnalyzer{})

	result, err := registry.Call(context.Background(), owner, "create_task",
		Args{"projectId": "p1", "taskDescription": "Write the docs"})
	require.NoError(t, err)

	stored := store.projects["p1"]
	require.Len(t, stored.Tasks, 1)

	task := stored.Tasks[0]
	require.NotEmpty(t, task.ID)
	require.Equal(t, "Write the docs", task.Title)
	require.Equal(t, "Pending", task.Status)
	require.Equal(t, "Admin", task.Assignee)
	require.False(t, task.Completed)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 7), task.DueDate, time.Minute)

	payload := result.(map[string]any)
	require.Equal(t, "Task added successfully", payload["message"])
}

func TestCreateTaskMissingArguments(t *testing.T) {
	store := newFakeProjectStore(project("p1", "client-1"))
	registry := newTestRegistry(store, &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), admin, "create_task", Args{"projectId": "p1"})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.Equal(t, "Missing projectId or taskDescription argument", apperr.Message(err))
	require.Zero(t, store.updates)
}

func TestUpdateProjectStatusByOwner(t *testing.T) {
	store := newFakeProjectStore(project("p1", "client-1"))
	registry := newTestRegistry(store, &fakeAnalyzer{})

	result, err := registry.Call(context.Background(), owner, "update_project_status",
		Args{"projectId": "p1", "status": "Completed"})
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, store.projects["p1"].Status)

	payload := result.(map[string]any)
	require.Equal(t, "Project status updated successfully", payload["message"])
}

func TestUpdateProjectStatusForbiddenLeavesStatusUnchanged(t *testing.T) {
	store := newFakeProjectStore(project("p1", "client-1"))
	registry := newTestRegistry(store, &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), other, "update_project_status",
		Args{"projectId": "p1", "status": "Completed"})
	require.ErrorIs(t, err, apperr.ErrForbidden)
	require.Equal(t, model.StatusActive, store.projects["p1"].Status)
	require.Zero(t, store.updates)
}

func TestUpdateProjectStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeProjectStore(project("p1", "client-1"))
	registry := newTestRegistry(store, &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), admin, "update_project_status",
		Args{"projectId": "p1", "status": "Launching Soon"})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.Zero(t, store.updates)
}

func TestUpdateProjectStatusVersionConflict(t *testing.T) {
	store := newFakeProjectStore(project("p1", "client-1"))
	store.conflictNextUpdate = true
	registry := newTestRegistry(store, &fakeAnalyzer{})

	_, err := registry.Call(context.Background(), admin, "update_project_status",
		Args{"projectId": "p1", "status": "Completed"})
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Equal(t, model.StatusActive, store.projects["p1"].Status)
}
