package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookfinder/internal/tasks"
)

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue TaskQueue
}

// NewTasksController creates a new TasksController. A nil queue disables
// every endpoint.
func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// RunTaskRequest is the request body for running a task.
type RunTaskRequest struct {
	BookID   string `json:"book_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

var taskTypes = []TaskTypeInfo{
	{Type: "prefetch_cover", Description: "Download a book cover into the local cache"},
	{Type: "refresh_favorite", Description: "Replace a favourite with the catalog's current record"},
	{Type: "refresh_all_favorites", Description: "Refresh every favourite from the catalog"},
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"task_types": taskTypes})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if !tc.enabled(c) {
		return
	}
	taskID, ok := requireParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task "+taskID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	if !tc.enabled(c) {
		return
	}
	taskType := c.Param("type")

	var req RunTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request: "+err.Error())
			return
		}
	}

	var task backlite.Task
	switch taskType {
	case "prefetch_cover":
		if req.BookID == "" {
			respondBadRequest(c, "book_id is required for prefetch_cover task")
			return
		}
		task = tasks.PrefetchCoverTask{BookID: req.BookID, ImageURL: req.ImageURL}

	case "refresh_favorite":
		if req.BookID == "" {
			respondBadRequest(c, "book_id is required for refresh_favorite task")
			return
		}
		task = tasks.RefreshFavoriteTask{BookID: req.BookID}

	case "refresh_all_favorites":
		task = tasks.RefreshAllFavoritesTask{}

	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	ids, err := tc.queue.Enqueue(task)
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	respondAccepted(c, "task enqueued", gin.H{"task_id": ids[0], "type": taskType})
}

func (tc *TasksController) enabled(c *gin.Context) bool {
	if tc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, codeTasksDisabled, "background tasks are disabled")
		return false
	}
	return true
}
