package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"pharmacy_erp/internal/model"
)

// UserRepository 平台账号，用户名与邮箱统一存小写
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, id int64) error
	UpdateDeviceToken(ctx context.Context, id int64, token string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter UserFilter) ([]model.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserFilter 用户筛选条件
type UserFilter struct {
	Keyword string
	Role    string
	Status  *int
	Pagination
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 不存在时返回 nil, nil
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// GetByLogin 用户名或邮箱登录
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Password", "Memberships").Save(user).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.setColumn(ctx, id, "password", hashedPassword)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return r.setColumn(ctx, id, "last_login_at", time.Now())
}

// UpdateDeviceToken 空串即清除
func (r *userRepository) UpdateDeviceToken(ctx context.Context, id int64, token string) error {
	return r.setColumn(ctx, id, "device_token", token)
}

// setColumn 单列更新，不刷新 updated_at
func (r *userRepository) setColumn(ctx context.Context, id int64, column string, value interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).UpdateColumn(column, value).Error
}

// Delete 软删除
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})

	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("username LIKE ? OR email LIKE ? OR LOWER(last_name) LIKE ?", kw, kw, kw)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var users []model.User
	total, err := paginate(query, filter.Pagination, "id DESC", &users)
	return users, total, err
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.taken(ctx, "username", username)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.taken(ctx, "email", email)
}

// taken 含软删除账号，用户名与邮箱不可复用
func (r *userRepository) taken(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.User{}).
		Where(column+" = ?", strings.ToLower(strings.TrimSpace(value))).
		Count(&count).Error
	return count > 0, err
}
