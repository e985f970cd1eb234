package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
	limiter  *middleware.KeyedLimiter
	log      *zap.Logger
}

// NewUserService 创建用户服务，limiter 为空时不限制登录频率
func NewUserService(userRepo repository.UserRepository, limiter *middleware.KeyedLimiter) *UserService {
	return &UserService{
		userRepo: userRepo,
		limiter:  limiter,
		log:      logger.Named("user"),
	}
}

// ==================== 认证相关 ====================

// Register 注册账号，role 为 staff 或 customer
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest, role string) (*dto.LoginResponse, error) {
	if role != model.RoleStaff && role != model.RoleCustomer {
		return nil, fmt.Errorf("%w: role %s", ErrInvalidInput, role)
	}
	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
		Status:    model.UserStatusActive,
	}
	if err := s.createUser(ctx, user, req.Password); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Login 用户登录，Login 可为用户名或邮箱
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	key := strings.ToLower(strings.TrimSpace(req.Login))
	if s.limiter != nil && !s.limiter.Allow(key) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByLogin(ctx, key)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.log.Info("登录密码错误", zap.String("login", key))
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

// RefreshToken 刷新 Token
func (s *UserService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken, middleware.TokenRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 确保用户仍然有效
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, ErrUserDisabled
	}

	pair, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(pair.ExpiresIn) * time.Second),
		User:         toUserInfo(user),
	}, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *model.User) (*dto.LoginResponse, error) {
	pair, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("更新最后登录时间失败", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(pair.ExpiresIn) * time.Second),
		User:         toUserInfo(user),
	}, nil
}

// ==================== 个人资料 ====================

// GetProfile 获取当前用户信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateProfile 修改个人资料
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.mustGet(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}
	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// UpdateDeviceToken 更新推送设备令牌，空串表示注销
func (s *UserService) UpdateDeviceToken(ctx context.Context, userID int64, req *dto.DeviceTokenRequest) error {
	if _, err := s.mustGet(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.UpdateDeviceToken(ctx, userID, strings.TrimSpace(req.Token))
}

// ==================== 用户管理 ====================

// CreateUser 创建用户
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserInfo, error) {
	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      req.Role,
		Status:    model.UserStatusActive,
	}
	if err := s.createUser(ctx, user, req.Password); err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// GetUser 获取用户
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.UserInfo, error) {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// ListUsers 用户列表
func (s *UserService) ListUsers(ctx context.Context, req *dto.UserListRequest) (*dto.PageResult[dto.UserInfo], error) {
	users, total, err := s.userRepo.List(ctx, repository.UserFilter{
		Keyword:    req.Keyword,
		Role:       req.Role,
		Status:     req.Status,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	list := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		list = append(list, *toUserInfo(&users[i]))
	}
	return dto.NewPageResult(list, total), nil
}

// UpdateUser 修改用户
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserInfo, error) {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && !strings.EqualFold(req.Email, user.Email) {
		exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailExists
		}
		user.Email = req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// ResetPassword 管理员重置密码
func (s *UserService) ResetPassword(ctx context.Context, id int64, req *dto.ResetPasswordRequest) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}
	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, id, hashed)
}

// DeleteUser 删除用户，超级管理员不可删除
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == model.RoleSuperAdmin {
		return ErrCannotDeleteAdmin
	}
	return s.userRepo.Delete(ctx, id)
}

// ==================== 辅助方法 ====================

func (s *UserService) mustGet(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) createUser(ctx context.Context, user *model.User, password string) error {
	exists, err := s.userRepo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameExists
	}
	exists, err = s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailExists
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Create(ctx, user)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		Role:        user.Role,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = fmt.Errorf("%w: 用户已禁用", ErrForbidden)
	ErrInvalidToken       = errors.New("Token 无效")
	ErrTooManyAttempts    = errors.New("登录尝试过于频繁，请稍后再试")
	ErrUserNotFound       = fmt.Errorf("用户%w", ErrNotFound)
	ErrInvalidOldPassword = fmt.Errorf("%w: 旧密码错误", ErrInvalidInput)
	ErrUsernameExists     = fmt.Errorf("用户名%w", ErrConflict)
	ErrEmailExists        = fmt.Errorf("邮箱%w", ErrConflict)
	ErrCannotDeleteAdmin  = fmt.Errorf("%w: 不能删除超级管理员", ErrForbidden)
)
