package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clientportal/internal/handler"
	"clientportal/internal/model"
)

type Router struct {
	Engine *gin.Engine
}

// Handlers bundles the HTTP handlers wired into the route table.
type Handlers struct {
	Auth      *handler.AuthHandler
	Project   *handler.ProjectHandler
	MCP       *handler.MCPHandler
	AI        *handler.AIHandler
	Request   *handler.RequestHandler
	Contact   *handler.ContactHandler
	Message   *handler.MessageHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

func NewRouter(h Handlers, jwtSecret string, db *pgxpool.Pool) *Router {
	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Public
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/mcp/tools", h.MCP.Tools)
	api.POST("/contact/submit", h.Contact.Submit)

	// Anonymous submissions are accepted; a valid token links the request
	// to the caller.
	api.POST("/requests/submit", OptionalAuthMiddleware(jwtSecret), h.Request.Submit)

	auth := api.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		admin := auth.Group("/")
		admin.Use(RequireRoles(model.RoleAdmin))
		{
			admin.GET("/projects/all", h.Project.All)
			admin.POST("/projects/create", h.Project.Create)
			admin.POST("/projects/:id/tasks", h.Project.AddTask)
			admin.POST("/ai/generate-tasks", h.AI.GenerateTasks)
			admin.GET("/requests/all", h.Request.All)
			admin.PUT("/requests/:id/status", h.Request.UpdateStatus)
			admin.GET("/contact/all", h.Contact.All)
			admin.GET("/users/clients", h.User.Clients)
			admin.DELETE("/users/:id", h.User.Delete)
			admin.GET("/dashboard/admin/stats", h.Dashboard.AdminStats)
		}

		client := auth.Group("/")
		client.Use(RequireRoles(model.RoleClient))
		{
			client.GET("/projects/my-projects", h.Project.MyProjects)
			client.GET("/projects/stats", h.Project.ClientStats)
			client.GET("/requests/my-requests", h.Request.MyRequests)
		}

		adminOrClient := auth.Group("/")
		adminOrClient.Use(RequireRoles(model.RoleAdmin, model.RoleClient))
		{
			adminOrClient.GET("/projects/:id", h.Project.GetByID)
			adminOrClient.PUT("/projects/:id/tasks/:taskId", h.Project.UpdateTask)
			adminOrClient.POST("/mcp/call", h.MCP.Call)
		}

		auth.POST("/messages/send", h.Message.Send)
		auth.GET("/messages/conversation/:userId", h.Message.Conversation)
		auth.GET("/messages/contacts", h.Message.Contacts)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
