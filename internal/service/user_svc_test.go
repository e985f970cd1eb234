package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/model"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewUserService(store.Users, nil)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "Sophie", Email: "Sophie@Example.com", Password: "motdepasse1",
	}, model.RoleStaff)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, model.RoleStaff, resp.User.Role)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "sophie", Email: "autre@example.com", Password: "motdepasse1"}, model.RoleCustomer)
	assert.True(t, errors.Is(err, ErrUsernameExists))
	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "sophie2", Email: "sophie@example.com", Password: "motdepasse1"}, model.RoleCustomer)
	assert.True(t, errors.Is(err, ErrEmailExists))
	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "root", Email: "root@example.com", Password: "motdepasse1"}, model.RoleSuperAdmin)
	assert.True(t, errors.Is(err, ErrInvalidInput), "注册不能直接成为超级管理员")

	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "sophie@example.com", Password: "motdepasse1"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "sophie", Password: "mauvais"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "inconnu", Password: "motdepasse1"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestUserService_LoginRateLimit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewUserService(store.Users, middleware.NewKeyedLimiter(time.Hour, 2))

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "paul", Email: "paul@example.com", Password: "motdepasse1"}, model.RoleStaff)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = svc.Login(ctx, &dto.LoginRequest{Login: "paul", Password: "mauvais"})
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	}
	_, err = svc.Login(ctx, &dto.LoginRequest{Login: " PAUL ", Password: "motdepasse1"})
	assert.True(t, errors.Is(err, ErrTooManyAttempts), "同一登录名大小写不同也计入同一限额")

	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "paul@example.com", Password: "motdepasse1"})
	assert.NoError(t, err, "邮箱登录单独计数")
}

func TestUserService_DisabledUser(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewUserService(store.Users, nil)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Username: "marie", Email: "marie@example.com", Password: "motdepasse1"}, model.RoleStaff)
	require.NoError(t, err)

	disabled := model.UserStatusDisabled
	info, err := svc.UpdateUser(ctx, resp.User.ID, &dto.UpdateUserRequest{Status: &disabled})
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusDisabled, info.Status)

	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "marie", Password: "motdepasse1"})
	assert.True(t, errors.Is(err, ErrUserDisabled))
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.True(t, errors.Is(err, ErrUserDisabled), "禁用后 refresh token 失效")
}

func TestUserService_RefreshToken(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewUserService(store.Users, nil)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Username: "luc", Email: "luc@example.com", Password: "motdepasse1"}, model.RoleCustomer)
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: resp.AccessToken})
	assert.True(t, errors.Is(err, ErrInvalidToken), "access token 不能用于刷新")
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestUserService_ChangePassword(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewUserService(store.Users, nil)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Username: "anne", Email: "anne@example.com", Password: "motdepasse1"}, model.RoleStaff)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, resp.User.ID, &dto.ChangePasswordRequest{OldPassword: "mauvais", NewPassword: "nouveaumdp2"})
	assert.True(t, errors.Is(err, ErrInvalidOldPassword))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	require.NoError(t, svc.ChangePassword(ctx, resp.User.ID, &dto.ChangePasswordRequest{OldPassword: "motdepasse1", NewPassword: "nouveaumdp2"}))
	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "anne", Password: "motdepasse1"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = svc.Login(ctx, &dto.LoginRequest{Login: "anne", Password: "nouveaumdp2"})
	assert.NoError(t, err)
}

func TestUserService_DeleteUser(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewUserService(store.Users, nil)

	admin, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "admin", Email: "admin@example.com", Password: "motdepasse1", Role: model.RoleSuperAdmin})
	require.NoError(t, err)
	staff, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "hugo", Email: "hugo@example.com", Password: "motdepasse1", Role: model.RoleStaff})
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID)
	assert.True(t, errors.Is(err, ErrCannotDeleteAdmin), "超级管理员不可删除")
	assert.True(t, errors.Is(err, ErrForbidden))
	_, err = svc.GetUser(ctx, admin.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, staff.ID))
	_, err = svc.GetUser(ctx, staff.ID)
	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))

	err = svc.DeleteUser(ctx, staff.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "hugo", Email: "hugo2@example.com", Password: "motdepasse1", Role: model.RoleStaff})
	assert.True(t, errors.Is(err, ErrUsernameExists), "已删除账号的用户名仍被占用")
}
