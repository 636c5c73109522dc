package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
	"clientportal/internal/repository"
)

type ProjectHandler struct {
	projects *repository.ProjectRepository
	logger   *zap.Logger
}

func NewProjectHandler(projects *repository.ProjectRepository, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		logger:   logger,
	}
}

// MyProjects handles GET /api/projects/my-projects
func (h *ProjectHandler) MyProjects(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	projects, err := h.projects.FindByClientID(c.Request.Context(), principal.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// ClientStats handles GET /api/projects/stats
func (h *ProjectHandler) ClientStats(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	active, err := h.projects.CountByClientIDAndStatus(ctx, principal.ID, model.StatusActive)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	completed, err := h.projects.CountByClientIDAndStatus(ctx, principal.ID, model.StatusCompleted)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	pending, err := h.projects.CountByClientIDAndStatus(ctx, principal.ID, model.StatusPending)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activeProjects":    active,
		"completedProjects": completed,
		"pendingTasks":      pending,
		"needsReview":       0,
	})
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ClientID    string `json:"clientId" binding:"required"`
	Priority    string `json:"priority"`
	Progress    int    `json:"progress"`
	UpdateNote  string `json:"update"`
}

// Create handles POST /api/projects/create
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	status := model.StatusPending
	if req.Status != "" {
		if !model.ValidStatus(req.Status) {
			writeError(c, h.logger, apperr.Invalid("Invalid status: %s", req.Status))
			return
		}
		status = model.NormalizeStatus(req.Status)
	}

	priority := req.Priority
	if priority == "" {
		priority = "Medium"
	}

	p := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		ClientID:    req.ClientID,
		Priority:    priority,
		Progress:    req.Progress,
		UpdateNote:  req.UpdateNote,
		Tasks:       []model.ProjectTask{},
	}

	if err := h.projects.Create(c.Request.Context(), p); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project created successfully!", "project": p})
}

// All handles GET /api/projects/all
func (h *ProjectHandler) All(c *gin.Context) {
	projects, err := h.projects.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetByID handles GET /api/projects/:id. Clients may only fetch their own
// projects.
func (h *ProjectHandler) GetByID(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	p, err := h.projects.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !principal.IsAdmin() && !p.OwnedBy(principal.ID) {
		writeError(c, h.logger, apperr.Forbidden("Access denied to this project"))
		return
	}

	c.JSON(http.StatusOK, p)
}

type addTaskRequest struct {
	Title    string    `json:"title" binding:"required"`
	Status   string    `json:"status"`
	Assignee string    `json:"assignee"`
	DueDate  time.Time `json:"dueDate"`
}

// AddTask handles POST /api/projects/:id/tasks
func (h *ProjectHandler) AddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.projects.FindByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	task := model.ProjectTask{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Status:   req.Status,
		Assignee: req.Assignee,
		DueDate:  req.DueDate,
	}
	if task.Status == "" {
		task.Status = "Pending"
	}
	p.Tasks = append(p.Tasks, task)

	if err := h.projects.Update(ctx, p); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type updateTaskRequest struct {
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

// UpdateTask handles PUT /api/projects/:id/tasks/:taskId. Only the task's
// status and completed flag are writable.
func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.projects.FindByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !principal.IsAdmin() && !p.OwnedBy(principal.ID) {
		writeError(c, h.logger, apperr.Forbidden("Access denied to this project"))
		return
	}

	taskID := c.Param("taskId")
	found := false
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			p.Tasks[i].Status = req.Status
			p.Tasks[i].Completed = req.Completed
			found = true
			break
		}
	}
	if !found {
		writeError(c, h.logger, apperr.NotFound("Task not found"))
		return
	}

	if err := h.projects.Update(ctx, p); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
