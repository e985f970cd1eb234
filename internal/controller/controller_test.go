package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/service"
	"pharmacy_erp/internal/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ==================== 错误映射 ====================

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"未找到", service.ErrNotFound, http.StatusNotFound},
		{"包装后的未找到", fmt.Errorf("商品%w", service.ErrNotFound), http.StatusNotFound},
		{"冲突", service.ErrConflict, http.StatusConflict},
		{"无权限", service.ErrForbidden, http.StatusForbidden},
		{"状态不允许", service.ErrInvalidState, http.StatusBadRequest},
		{"参数非法", service.ErrInvalidInput, http.StatusBadRequest},
		{"凭证错误", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"令牌无效", service.ErrInvalidToken, http.StatusUnauthorized},
		{"尝试过多", service.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"库存不足", fmt.Errorf("结账: %w", model.ErrInsufficientStock), http.StatusBadRequest},
		{"AI 失败", service.ErrAIGeneration, http.StatusBadGateway},
		{"未知错误", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) { respondError(c, errors.New("pq: relation does not exist")) })
	r.GET("/missing", func(c *gin.Context) { respondError(c, service.ErrNotFound) })

	w := performRequest(r, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "服务器内部错误", body["message"])
	assert.NotContains(t, w.Body.String(), "relation")

	w = performRequest(r, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(404), decodeBody(t, w)["code"])
}

func TestPathID(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		ok(c, gin.H{"id": id})
	})

	for _, path := range []string{"/items/abc", "/items/0", "/items/-3"} {
		w := performRequest(r, http.MethodGet, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := performRequest(r, http.MethodGet, "/items/42")
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["id"])
}

func TestQueryID(t *testing.T) {
	r := gin.New()
	r.GET("/q", func(c *gin.Context) {
		if _, valid := queryID(c, "pharmacy_id"); valid {
			ok(c, nil)
		}
	})

	assert.Equal(t, http.StatusBadRequest, performRequest(r, http.MethodGet, "/q").Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/q?pharmacy_id=7").Code)
}

// ==================== 定时任务 ====================

type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (j *blockingJob) Name() string { return "slow" }

func (j *blockingJob) Run(context.Context) error {
	close(j.started)
	<-j.release
	return nil
}

type failingJob struct{}

func (failingJob) Name() string { return "broken" }
func (failingJob) Run(context.Context) error { return errors.New("disk full") }

func TestTaskController(t *testing.T) {
	tm := task.NewTaskManager(zap.NewNop(), time.Second)
	job := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	require.NoError(t, tm.Register("", job))
	require.NoError(t, tm.Register("", failingJob{}))

	ctrl := NewTaskController(tm)
	r := gin.New()
	r.GET("/tasks", ctrl.ListTasks)
	r.POST("/tasks/:name/run", ctrl.RunTask)

	w := performRequest(r, http.MethodGet, "/tasks")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)

	assert.Equal(t, http.StatusNotFound, performRequest(r, http.MethodPost, "/tasks/unknown/run").Code)
	assert.Equal(t, http.StatusInternalServerError, performRequest(r, http.MethodPost, "/tasks/broken/run").Code)

	done := make(chan int, 1)
	go func() { done <- performRequest(r, http.MethodPost, "/tasks/slow/run").Code }()
	<-job.started
	assert.Equal(t, http.StatusConflict, performRequest(r, http.MethodPost, "/tasks/slow/run").Code)
	close(job.release)
	assert.Equal(t, http.StatusOK, <-done)
}
