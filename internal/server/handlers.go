package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daylist/internal/service"
)

const maxTitleSize = 8 << 10 // 8KB

type nameRequest struct {
	Name string `json:"name"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type reorderRequest struct {
	TaskOrders []service.TaskOrder `json:"taskOrders"`
}

func (s *Server) handleListLists(c *gin.Context) {
	lists, err := s.store.ListLists(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if lists == nil {
		lists = []service.TaskList{}
	}
	c.JSON(http.StatusOK, lists)
}

func (s *Server) handleCreateList(c *gin.Context) {
	var req nameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := s.store.CreateList(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (s *Server) handleRenameList(c *gin.Context) {
	var req nameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := s.store.RenameList(c.Request.Context(), userID(c), c.Param("id"), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleDeleteList(c *gin.Context) {
	if err := s.store.DeleteList(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleListImportant(c *gin.Context) {
	tasks, err := s.store.ListImportant(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req titleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Title) > maxTitleSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title exceeds maximum size of 8KB"})
		return
	}

	task, err := s.store.CreateTask(c.Request.Context(), userID(c), c.Param("id"), req.Title)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var patch service.TaskPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Title != nil && len(*patch.Title) > maxTitleSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title exceeds maximum size of 8KB"})
		return
	}

	task, err := s.store.UpdateTask(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleReorder(c *gin.Context) {
	var req reorderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.store.ApplyPositions(c.Request.Context(), userID(c), c.Param("id"), req.TaskOrders)
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps the error taxonomy onto HTTP statuses. Forbidden deliberately
// carries no detail about the other user's data.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
