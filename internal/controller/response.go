package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/service"
	"pharmacy_erp/pkg/logger"
)

// statusOf 服务层错误映射为 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidState), model.IsBusinessRule(err):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAIGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError 输出错误响应，500 时记录日志且不暴露细节
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		message = "服务器内部错误"
	}
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": "参数错误: " + err.Error(),
	})
}

// pathID 解析路径中的正整数 ID
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的 " + name,
		})
		return 0, false
	}
	return id, true
}

// queryID 解析查询参数中的正整数 ID
func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的 " + name,
		})
		return 0, false
	}
	return id, true
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "创建成功",
		"data":    data,
	})
}

// readUpload 读取 multipart 中的 file 字段
func readUpload(c *gin.Context) ([]byte, string, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, err)
		return nil, "", false
	}
	if fh.Size > service.MaxUploadSize {
		respondError(c, service.ErrFileTooLarge)
		return nil, "", false
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxUploadSize+1))
	if err != nil {
		respondError(c, err)
		return nil, "", false
	}
	return data, fh.Filename, true
}
