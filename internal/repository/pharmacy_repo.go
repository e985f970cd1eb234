package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pharmacy_erp/internal/model"
)

// ==================== PharmacyRepository 药房仓库 ====================

// PharmacyRepository 药房仓库接口
type PharmacyRepository interface {
	Create(ctx context.Context, pharmacy *model.Pharmacy) error
	GetByID(ctx context.Context, id int64) (*model.Pharmacy, error)
	GetByCode(ctx context.Context, code string) (*model.Pharmacy, error)
	Update(ctx context.Context, pharmacy *model.Pharmacy) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PharmacyFilter) ([]model.Pharmacy, int64, error)
	ListByUser(ctx context.Context, userID int64) ([]MyPharmacy, error)
	ExistsByLicense(ctx context.Context, license string, excludeID int64) (bool, error)
}

// PharmacyFilter 药房筛选条件
type PharmacyFilter struct {
	Keyword        string
	City           string
	Status         *int
	StorefrontOnly bool
	Pagination
}

// MyPharmacy 用户所属药房及角色
type MyPharmacy struct {
	model.Pharmacy
	MemberRole string `json:"member_role"`
}

type pharmacyRepository struct {
	db *gorm.DB
}

// NewPharmacyRepository 创建药房仓库
func NewPharmacyRepository(db *gorm.DB) PharmacyRepository {
	return &pharmacyRepository{db: db}
}

func (r *pharmacyRepository) Create(ctx context.Context, pharmacy *model.Pharmacy) error {
	return r.db.WithContext(ctx).Create(pharmacy).Error
}

func (r *pharmacyRepository) GetByID(ctx context.Context, id int64) (*model.Pharmacy, error) {
	var pharmacy model.Pharmacy
	err := r.db.WithContext(ctx).First(&pharmacy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pharmacy, err
}

func (r *pharmacyRepository) GetByCode(ctx context.Context, code string) (*model.Pharmacy, error) {
	var pharmacy model.Pharmacy
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&pharmacy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pharmacy, err
}

func (r *pharmacyRepository) Update(ctx context.Context, pharmacy *model.Pharmacy) error {
	return r.db.WithContext(ctx).Omit("Memberships").Save(pharmacy).Error
}

func (r *pharmacyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Pharmacy{}, id).Error
}

func (r *pharmacyRepository) List(ctx context.Context, filter PharmacyFilter) ([]model.Pharmacy, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Pharmacy{})

	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", kw, kw)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", likeExact(filter.City))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StorefrontOnly {
		query = query.Where("storefront_enabled = ? AND status = ?", true, model.PharmacyStatusActive)
	}

	var pharmacies []model.Pharmacy
	total, err := paginate(query, filter.Pagination, "id DESC", &pharmacies)
	return pharmacies, total, err
}

// ListByUser 用户有效成员关系对应的药房
func (r *pharmacyRepository) ListByUser(ctx context.Context, userID int64) ([]MyPharmacy, error) {
	var rows []MyPharmacy
	err := r.db.WithContext(ctx).
		Model(&model.Pharmacy{}).
		Select("pharmacies.*, pharmacy_members.role AS member_role").
		Joins("JOIN pharmacy_members ON pharmacy_members.pharmacy_id = pharmacies.id AND pharmacy_members.deleted_at IS NULL").
		Where("pharmacy_members.user_id = ? AND pharmacy_members.active = ?", userID, true).
		Order("pharmacies.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *pharmacyRepository) ExistsByLicense(ctx context.Context, license string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Pharmacy{}).
		Where("license_number = ? AND id <> ?", license, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ==================== MemberRepository 成员仓库 ====================

// MemberRepository 药房成员仓库接口
type MemberRepository interface {
	Create(ctx context.Context, member *model.PharmacyMember) error
	Get(ctx context.Context, pharmacyID, userID int64) (*model.PharmacyMember, error)
	GetActiveMember(ctx context.Context, pharmacyID, userID int64) (*model.PharmacyMember, error)
	ListByPharmacy(ctx context.Context, pharmacyID int64) ([]model.PharmacyMember, error)
	Update(ctx context.Context, member *model.PharmacyMember) error
	Remove(ctx context.Context, pharmacyID, userID int64) error
	CountActiveOwners(ctx context.Context, pharmacyID int64) (int64, error)
	UserIDsByRoles(ctx context.Context, pharmacyID int64, roles []string) ([]int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建成员仓库
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.PharmacyMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Get 不区分是否启用
func (r *memberRepository) Get(ctx context.Context, pharmacyID, userID int64) (*model.PharmacyMember, error) {
	var member model.PharmacyMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("pharmacy_id = ? AND user_id = ?", pharmacyID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) GetActiveMember(ctx context.Context, pharmacyID, userID int64) (*model.PharmacyMember, error) {
	var member model.PharmacyMember
	err := r.db.WithContext(ctx).
		Joins("JOIN pharmacies ON pharmacies.id = pharmacy_members.pharmacy_id AND pharmacies.deleted_at IS NULL").
		Where("pharmacy_members.pharmacy_id = ? AND pharmacy_members.user_id = ? AND pharmacy_members.active = ?", pharmacyID, userID, true).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) ListByPharmacy(ctx context.Context, pharmacyID int64) ([]model.PharmacyMember, error) {
	var members []model.PharmacyMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("pharmacy_id = ?", pharmacyID).
		Order("id ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepository) Update(ctx context.Context, member *model.PharmacyMember) error {
	return r.db.WithContext(ctx).Omit("User", "Pharmacy").Save(member).Error
}

// Remove 物理删除，便于重新邀请
func (r *memberRepository) Remove(ctx context.Context, pharmacyID, userID int64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("pharmacy_id = ? AND user_id = ?", pharmacyID, userID).
		Delete(&model.PharmacyMember{}).Error
}

func (r *memberRepository) CountActiveOwners(ctx context.Context, pharmacyID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PharmacyMember{}).
		Where("pharmacy_id = ? AND role = ? AND active = ?", pharmacyID, model.MemberOwner, true).
		Count(&count).Error
	return count, err
}

func (r *memberRepository) UserIDsByRoles(ctx context.Context, pharmacyID int64, roles []string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.PharmacyMember{}).
		Where("pharmacy_id = ? AND role IN ? AND active = ?", pharmacyID, roles, true).
		Pluck("user_id", &ids).Error
	return ids, err
}
