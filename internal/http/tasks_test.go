package http

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookfinder/internal/tasks"
)

func tasksRouter(queue TaskQueue) *gin.Engine {
	controller := NewTasksController(queue)
	router := gin.New()
	router.GET("/api/tasks/types", controller.ListTaskTypes)
	router.GET("/api/tasks/:id", controller.GetTaskStatus)
	router.POST("/api/tasks/:type/run", controller.RunTask)
	return router
}

func newTaskClient(t *testing.T) *tasks.Client {
	t.Helper()

	client, err := tasks.NewClient(filepath.Join(t.TempDir(), "bookfinder.db"), tasks.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	client.Register(
		backlite.NewQueue(func(ctx context.Context, task tasks.PrefetchCoverTask) error { return nil }),
		backlite.NewQueue(func(ctx context.Context, task tasks.RefreshFavoriteTask) error { return nil }),
		backlite.NewQueue(func(ctx context.Context, task tasks.RefreshAllFavoritesTask) error { return nil }),
	)
	return client
}

func TestTasksController_Disabled(t *testing.T) {
	router := tasksRouter(nil)

	w := doJSON(router, "POST", "/api/tasks/prefetch_cover/run", `{"book_id":"b1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, codeTasksDisabled, decodeError(t, w).Code)

	w = doJSON(router, "GET", "/api/tasks/abc", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(router, "GET", "/api/tasks/types", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTasksController_ListTaskTypes(t *testing.T) {
	w := doJSON(tasksRouter(nil), "GET", "/api/tasks/types", "")

	var resp struct {
		TaskTypes []TaskTypeInfo `json:"task_types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.TaskTypes, 3)
	assert.Equal(t, "prefetch_cover", resp.TaskTypes[0].Type)
}

func TestTasksController_RunTask(t *testing.T) {
	router := tasksRouter(newTaskClient(t))

	t.Run("rejects unknown type", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/tasks/reindex/run", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "unknown task type: reindex", decodeError(t, w).Error)
	})

	t.Run("requires book id", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/tasks/refresh_favorite/run", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(router, "POST", "/api/tasks/prefetch_cover/run", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/tasks/prefetch_cover/run", `{"book_id":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("enqueues and reports status", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/tasks/prefetch_cover/run", `{"book_id":"b1","image_url":"https://img.test/c.jpg"}`)
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "prefetch_cover", data["type"])
		taskID, _ := data["task_id"].(string)
		require.NotEmpty(t, taskID)

		w = doJSON(router, "GET", "/api/tasks/"+taskID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"`+taskID+`","status":"pending"}`, w.Body.String())
	})

	t.Run("unknown task id is not found", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/tasks/no-such-task", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"task no-such-task not found"}`, w.Body.String())
	})

	t.Run("enqueues refresh of all favourites without a body", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/tasks/refresh_all_favorites/run", "")
		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}
