package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/service"
)

// UserController 账号、登录与平台用户管理
type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ==================== 登录注册 ====================

// Register 药房员工自助注册，加入药房需 owner 邀请
// @Summary 员工注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "账号信息"
// @Success 201 {object} dto.LoginResponse
// @Failure 409 {object} map[string]interface{} "用户名或邮箱已占用"
// @Router /auth/register [post]
func (ctrl *UserController) Register(c *gin.Context) {
	ctrl.signUp(c, model.RoleStaff)
}

// RegisterCustomer 网店顾客注册
// @Summary 顾客注册
// @Tags Storefront
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "账号信息"
// @Success 201 {object} dto.LoginResponse
// @Failure 409 {object} map[string]interface{} "用户名或邮箱已占用"
// @Router /shop/register [post]
func (ctrl *UserController) RegisterCustomer(c *gin.Context) {
	ctrl.signUp(c, model.RoleCustomer)
}

// signUp 注册后直接签发令牌
func (ctrl *UserController) signUp(c *gin.Context, role string) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokens, err := ctrl.userService.Register(c.Request.Context(), &req, role)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, tokens)
}

// Login 用户名或邮箱登录
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录凭证"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]interface{} "凭证错误"
// @Failure 429 {object} map[string]interface{} "尝试过于频繁"
// @Router /auth/login [post]
func (ctrl *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokens, err := ctrl.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, tokens)
}

// RefreshToken 以 refresh token 换取新的令牌对
// @Summary 续期令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/refresh [post]
func (ctrl *UserController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokens, err := ctrl.userService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, tokens)
}

// ==================== 个人账号 ====================

// @Summary 当前账号
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Router /auth/profile [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	me, err := ctrl.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, me)
}

// @Summary 修改个人资料
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "姓名与电话"
// @Success 200 {object} dto.UserInfo
// @Router /auth/profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	me, err := ctrl.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, me)
}

// ChangePassword 需校验旧密码
// @Summary 修改密码
// @Tags Auth
// @Accept json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "旧密码与新密码"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "旧密码错误"
// @Router /auth/password [put]
func (ctrl *UserController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := ctrl.userService.ChangePassword(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "密码已修改"})
}

// UpdateDeviceToken 登记 FCM 设备令牌，传空串即注销推送
// @Summary 推送设备令牌
// @Tags Auth
// @Accept json
// @Security BearerAuth
// @Param request body dto.DeviceTokenRequest true "设备令牌"
// @Success 200 {object} map[string]interface{}
// @Router /auth/device-token [put]
func (ctrl *UserController) UpdateDeviceToken(c *gin.Context) {
	var req dto.DeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := ctrl.userService.UpdateDeviceToken(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	ok(c, nil)
}

// ==================== 平台用户（超级管理员） ====================

// @Summary 新建平台账号
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "账号与角色"
// @Success 201 {object} dto.UserInfo
// @Failure 409 {object} map[string]interface{}
// @Router /users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := ctrl.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, u)
}

// @Summary 平台账号列表
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "用户名/邮箱"
// @Param role query string false "平台角色"
// @Param status query int false "1 启用 0 停用"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.PageResult[dto.UserInfo]
// @Router /users [get]
func (ctrl *UserController) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	page, err := ctrl.userService.ListUsers(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, page)
}

// @Summary 账号详情
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 200 {object} dto.UserInfo
// @Router /users/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}

	u, err := ctrl.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, u)
}

// UpdateUser 修改邮箱、角色或启停账号
// @Summary 修改账号
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Param request body dto.UpdateUserRequest true "账号字段"
// @Success 200 {object} dto.UserInfo
// @Router /users/{id} [put]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := ctrl.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, u)
}

// @Summary 重置账号密码
// @Tags User
// @Accept json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Param request body dto.ResetPasswordRequest true "新密码"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/password [put]
func (ctrl *UserController) ResetPassword(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := ctrl.userService.ResetPassword(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "密码已重置"})
}

// DeleteUser 软删除，超级管理员不可删除
// @Summary 删除账号
// @Tags User
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}

	if err := ctrl.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}
