package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/task"
)

// TaskController 定时任务管理
type TaskController struct {
	taskManager *task.TaskManager
}

// NewTaskController 创建任务控制器
func NewTaskController(taskManager *task.TaskManager) *TaskController {
	return &TaskController{taskManager: taskManager}
}

// ==================== Handler 实现 ====================

// ListTasks 任务状态
// @Summary 定时任务列表及最近执行情况
// @Tags Tasks
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /tasks [get]
func (ctrl *TaskController) ListTasks(c *gin.Context) {
	ok(c, ctrl.taskManager.Status())
}

// RunTask 手动触发
// @Summary 立即执行指定任务
// @Tags Tasks
// @Security BearerAuth
// @Param name path string true "任务名"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "任务不存在"
// @Failure 409 {object} map[string]interface{} "任务执行中"
// @Router /tasks/{name}/run [post]
func (ctrl *TaskController) RunTask(c *gin.Context) {
	name := c.Param("name")
	err := ctrl.taskManager.RunNow(c.Request.Context(), name)
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": err.Error()})
		return
	case errors.Is(err, task.ErrTaskRunning):
		c.JSON(http.StatusConflict, gin.H{"code": 409, "message": err.Error()})
		return
	case err != nil:
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "任务已执行",
		"data":    gin.H{"name": name},
	})
}
