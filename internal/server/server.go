// Package server exposes the task/list REST API.
package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"daylist/internal/service"
)

// TaskStore is the persistence surface the handlers need. *store.Store
// implements it; tests substitute a mock.
type TaskStore interface {
	EnsureUser(ctx context.Context, userID string) error
	ListLists(ctx context.Context, userID string) ([]service.TaskList, error)
	CreateList(ctx context.Context, userID, name string) (service.TaskList, error)
	RenameList(ctx context.Context, userID, listID, name string) (service.TaskList, error)
	DeleteList(ctx context.Context, userID, listID string) error
	ListTasks(ctx context.Context, userID, listID string) ([]service.Task, error)
	ListImportant(ctx context.Context, userID string) ([]service.Task, error)
	CreateTask(ctx context.Context, userID, listID, title string) (service.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, patch service.TaskPatch) (service.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	ApplyPositions(ctx context.Context, userID, listID string, orders []service.TaskOrder) error
}

// Server is the daylist REST server.
type Server struct {
	store  TaskStore
	secret []byte
	router *gin.Engine
}

// NewServer creates a server over the given store. secret signs and
// verifies bearer tokens.
func NewServer(store TaskStore, secret []byte) *Server {
	router := gin.Default()

	s := &Server{
		store:  store,
		secret: secret,
		router: router,
	}

	authed := router.Group("/", s.authRequired())
	{
		authed.GET("/lists", s.handleListLists)
		authed.POST("/lists", s.handleCreateList)
		authed.PUT("/lists/:id", s.handleRenameList)
		authed.PATCH("/lists/:id", s.handleRenameList)
		authed.DELETE("/lists/:id", s.handleDeleteList)

		authed.GET("/lists/:id/tasks", s.handleListTasks)
		authed.POST("/lists/:id/tasks", s.handleCreateTask)
		authed.PATCH("/lists/:id/tasks/reorder", s.handleReorder)

		authed.GET("/tasks/important", s.handleListImportant)
		authed.PATCH("/tasks/:id", s.handleUpdateTask)
		authed.DELETE("/tasks/:id", s.handleDeleteTask)
	}

	return s
}

// Handler returns the root http.Handler, for tests and embedding.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
