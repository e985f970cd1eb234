package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// PharmacyService 药房与成员管理
type PharmacyService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewPharmacyService 创建药房服务
func NewPharmacyService(store *repository.Store) *PharmacyService {
	return &PharmacyService{store: store, log: logger.Named("pharmacy")}
}

// ==================== 药房 ====================

// Create 创建药房，创建人同一事务内成为 owner
func (s *PharmacyService) Create(ctx context.Context, userID int64, req *dto.CreatePharmacyRequest) (*model.Pharmacy, error) {
	ph := &model.Pharmacy{
		Name:              strings.TrimSpace(req.Name),
		LegalName:         req.LegalName,
		LicenseNumber:     strings.TrimSpace(req.LicenseNumber),
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		Phone:             req.Phone,
		Email:             req.Email,
		Currency:          strings.ToUpper(req.Currency),
		Status:            model.PharmacyStatusActive,
		StorefrontEnabled: req.StorefrontEnabled,
	}
	if ph.Currency == "" {
		ph.Currency = "EUR"
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Pharmacies.ExistsByLicense(ctx, ph.LicenseNumber, 0)
		if err != nil {
			return err
		}
		if exists {
			return ErrLicenseExists
		}
		if err := tx.Pharmacies.Create(ctx, ph); err != nil {
			return err
		}
		return tx.Members.Create(ctx, &model.PharmacyMember{
			PharmacyID: ph.ID,
			UserID:     userID,
			Role:       model.MemberOwner,
			Active:     true,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("药房已创建", zap.Int64("pharmacy_id", ph.ID), zap.String("code", ph.Code), zap.Int64("owner", userID))
	return ph, nil
}

// Get 药房详情
func (s *PharmacyService) Get(ctx context.Context, id int64) (*model.Pharmacy, error) {
	ph, err := s.store.Pharmacies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ph == nil {
		return nil, ErrPharmacyNotFound
	}
	return ph, nil
}

// Update 修改药房
func (s *PharmacyService) Update(ctx context.Context, id int64, req *dto.UpdatePharmacyRequest) (*model.Pharmacy, error) {
	ph, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LicenseNumber != nil && *req.LicenseNumber != ph.LicenseNumber {
		exists, err := s.store.Pharmacies.ExistsByLicense(ctx, *req.LicenseNumber, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrLicenseExists
		}
		ph.LicenseNumber = *req.LicenseNumber
	}
	if req.Name != nil {
		ph.Name = *req.Name
	}
	if req.LegalName != nil {
		ph.LegalName = *req.LegalName
	}
	if req.Address != nil {
		ph.Address = *req.Address
	}
	if req.City != nil {
		ph.City = *req.City
	}
	if req.PostalCode != nil {
		ph.PostalCode = *req.PostalCode
	}
	if req.Phone != nil {
		ph.Phone = *req.Phone
	}
	if req.Email != nil {
		ph.Email = *req.Email
	}
	if req.Currency != nil {
		ph.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Status != nil {
		ph.Status = *req.Status
	}
	if req.StorefrontEnabled != nil {
		ph.StorefrontEnabled = *req.StorefrontEnabled
	}

	if err := s.store.Pharmacies.Update(ctx, ph); err != nil {
		return nil, err
	}
	return ph, nil
}

// Delete 删除药房（软删除）
func (s *PharmacyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Pharmacies.Delete(ctx, id)
}

// List 药房列表（超级管理员）
func (s *PharmacyService) List(ctx context.Context, req *dto.PharmacyListRequest) (*dto.PageResult[model.Pharmacy], error) {
	list, total, err := s.store.Pharmacies.List(ctx, repository.PharmacyFilter{
		Keyword:    req.Keyword,
		City:       req.City,
		Status:     req.Status,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ListMine 我所属的药房及角色
func (s *PharmacyService) ListMine(ctx context.Context, userID int64) ([]repository.MyPharmacy, error) {
	list, err := s.store.Pharmacies.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []repository.MyPharmacy{}
	}
	return list, nil
}

// ==================== 成员 ====================

// ListMembers 成员列表
func (s *PharmacyService) ListMembers(ctx context.Context, pharmacyID int64) ([]model.PharmacyMember, error) {
	return s.store.Members.ListByPharmacy(ctx, pharmacyID)
}

// AddMember 添加成员；已停用的成员重新启用并更新角色
// 只有 owner 可以授予 owner 角色，网店顾客账号不能加入
func (s *PharmacyService) AddMember(ctx context.Context, pharmacyID int64, actorRole string, req *dto.AddMemberRequest) (*model.PharmacyMember, error) {
	if req.Role == model.MemberOwner && actorRole != model.MemberOwner {
		return nil, ErrOwnerGrantDenied
	}

	user, err := s.store.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive() {
		return nil, ErrUserDisabled
	}
	if user.Role == model.RoleCustomer {
		return nil, ErrCustomerNotStaff
	}

	member, err := s.store.Members.Get(ctx, pharmacyID, req.UserID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		if member.Active {
			return nil, ErrMemberExists
		}
		member.Active = true
		member.Role = req.Role
		if err := s.store.Members.Update(ctx, member); err != nil {
			return nil, err
		}
		return member, nil
	}

	member = &model.PharmacyMember{PharmacyID: pharmacyID, UserID: req.UserID, Role: req.Role, Active: true}
	if err := s.store.Members.Create(ctx, member); err != nil {
		return nil, err
	}
	member.User = user
	return member, nil
}

// UpdateMember 修改角色或启用状态，最后一个有效 owner 不可降级或停用
func (s *PharmacyService) UpdateMember(ctx context.Context, pharmacyID, userID int64, actorRole string, req *dto.UpdateMemberRequest) (*model.PharmacyMember, error) {
	if req.Role == model.MemberOwner && actorRole != model.MemberOwner {
		return nil, ErrOwnerGrantDenied
	}

	var member *model.PharmacyMember
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		m, err := tx.Members.Get(ctx, pharmacyID, userID)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrMemberNotFound
		}
		if m.Role == model.MemberOwner && actorRole != model.MemberOwner {
			return ErrOwnerGrantDenied
		}

		newRole, newActive := m.Role, m.Active
		if req.Role != "" {
			newRole = req.Role
		}
		if req.Active != nil {
			newActive = *req.Active
		}
		losingOwner := m.Role == model.MemberOwner && m.Active && (newRole != model.MemberOwner || !newActive)
		if losingOwner {
			if err := ensureAnotherOwner(ctx, tx, pharmacyID); err != nil {
				return err
			}
		}

		m.Role, m.Active = newRole, newActive
		if err := tx.Members.Update(ctx, m); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember 移除成员，最后一个有效 owner 不可移除
func (s *PharmacyService) RemoveMember(ctx context.Context, pharmacyID, userID int64, actorRole string) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		m, err := tx.Members.Get(ctx, pharmacyID, userID)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrMemberNotFound
		}
		if m.Role == model.MemberOwner {
			if actorRole != model.MemberOwner {
				return ErrOwnerGrantDenied
			}
			if m.Active {
				if err := ensureAnotherOwner(ctx, tx, pharmacyID); err != nil {
					return err
				}
			}
		}
		return tx.Members.Remove(ctx, pharmacyID, userID)
	})
}

func ensureAnotherOwner(ctx context.Context, tx *repository.Store, pharmacyID int64) error {
	owners, err := tx.Members.CountActiveOwners(ctx, pharmacyID)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}

// ==================== 错误定义 ====================

var (
	ErrPharmacyNotFound = fmt.Errorf("药房%w", ErrNotFound)
	ErrLicenseExists    = fmt.Errorf("许可证号%w", ErrConflict)
	ErrMemberNotFound   = fmt.Errorf("成员%w", ErrNotFound)
	ErrMemberExists     = fmt.Errorf("成员%w", ErrConflict)
	ErrLastOwner        = fmt.Errorf("%w: 药房至少需要一个有效的 owner", ErrInvalidState)
	ErrOwnerGrantDenied = fmt.Errorf("%w: 仅 owner 可以管理 owner 成员", ErrForbidden)
	ErrCustomerNotStaff = fmt.Errorf("%w: 网店顾客账号不能成为药房成员", ErrInvalidInput)
)
