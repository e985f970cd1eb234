package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
)

// ownedPharmacy 由 manager 账号创建一家新药房，创建人成为唯一 owner
func (f fixture) ownedPharmacy(t *testing.T) *model.Pharmacy {
	t.Helper()
	ph, err := NewPharmacyService(f.store).Create(context.Background(), f.manager.ID, &dto.CreatePharmacyRequest{
		Name: "Pharmacie du Port", LicenseNumber: "LIC-PORT",
	})
	require.NoError(t, err)
	return ph
}

func TestPharmacyService_Create(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	svc := NewPharmacyService(f.store)

	ph := f.ownedPharmacy(t)
	assert.Equal(t, "EUR", ph.Currency)

	owner, err := f.store.Members.Get(ctx, ph.ID, f.manager.ID)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, model.MemberOwner, owner.Role)
	assert.True(t, owner.Active)

	_, err = svc.Create(ctx, f.cashier.ID, &dto.CreatePharmacyRequest{Name: "Doublon", LicenseNumber: " LIC-PORT "})
	assert.True(t, errors.Is(err, ErrLicenseExists))
}

func TestPharmacyService_LastOwner(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	svc := NewPharmacyService(f.store)
	ph := f.ownedPharmacy(t)

	_, err := svc.UpdateMember(ctx, ph.ID, f.manager.ID, model.MemberOwner, &dto.UpdateMemberRequest{Role: model.MemberPharmacist})
	assert.True(t, errors.Is(err, ErrLastOwner), "唯一 owner 不能降级")
	assert.True(t, errors.Is(err, ErrInvalidState))

	inactive := false
	_, err = svc.UpdateMember(ctx, ph.ID, f.manager.ID, model.MemberOwner, &dto.UpdateMemberRequest{Active: &inactive})
	assert.True(t, errors.Is(err, ErrLastOwner), "唯一 owner 不能停用")

	err = svc.RemoveMember(ctx, ph.ID, f.manager.ID, model.MemberOwner)
	assert.True(t, errors.Is(err, ErrLastOwner), "唯一 owner 不能移除")

	owner, err := f.store.Members.Get(ctx, ph.ID, f.manager.ID)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, model.MemberOwner, owner.Role)
	assert.True(t, owner.Active)

	// 第二个 owner 加入后可以降级原 owner
	_, err = svc.AddMember(ctx, ph.ID, model.MemberOwner, &dto.AddMemberRequest{UserID: f.cashier.ID, Role: model.MemberOwner})
	require.NoError(t, err)
	updated, err := svc.UpdateMember(ctx, ph.ID, f.manager.ID, model.MemberOwner, &dto.UpdateMemberRequest{Role: model.MemberPharmacist})
	require.NoError(t, err)
	assert.Equal(t, model.MemberPharmacist, updated.Role)

	err = svc.RemoveMember(ctx, ph.ID, f.cashier.ID, model.MemberOwner)
	assert.True(t, errors.Is(err, ErrLastOwner), "降级后 cashier 成为唯一 owner")

	owners, err := f.store.Members.CountActiveOwners(ctx, ph.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), owners)
}

func TestPharmacyService_OwnerGrantDenied(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	svc := NewPharmacyService(f.store)
	ph := f.ownedPharmacy(t)

	_, err := svc.AddMember(ctx, ph.ID, model.MemberManager, &dto.AddMemberRequest{UserID: f.cashier.ID, Role: model.MemberOwner})
	assert.True(t, errors.Is(err, ErrOwnerGrantDenied), "manager 不能授予 owner")
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = svc.AddMember(ctx, ph.ID, model.MemberManager, &dto.AddMemberRequest{UserID: f.cashier.ID, Role: model.MemberCashier})
	require.NoError(t, err)

	_, err = svc.UpdateMember(ctx, ph.ID, f.cashier.ID, model.MemberManager, &dto.UpdateMemberRequest{Role: model.MemberOwner})
	assert.True(t, errors.Is(err, ErrOwnerGrantDenied), "manager 不能提升为 owner")

	_, err = svc.UpdateMember(ctx, ph.ID, f.manager.ID, model.MemberManager, &dto.UpdateMemberRequest{Role: model.MemberViewer})
	assert.True(t, errors.Is(err, ErrOwnerGrantDenied), "manager 不能修改 owner 成员")

	err = svc.RemoveMember(ctx, ph.ID, f.manager.ID, model.MemberManager)
	assert.True(t, errors.Is(err, ErrOwnerGrantDenied), "manager 不能移除 owner")

	err = svc.RemoveMember(ctx, ph.ID, f.cashier.ID, model.MemberManager)
	require.NoError(t, err)
	gone, err := f.store.Members.Get(ctx, ph.ID, f.cashier.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPharmacyService_AddMember(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	svc := NewPharmacyService(f.store)

	_, err := svc.AddMember(ctx, f.pharmacy.ID, model.MemberManager, &dto.AddMemberRequest{UserID: f.cashier.ID, Role: model.MemberCashier})
	assert.True(t, errors.Is(err, ErrMemberExists))

	_, err = svc.AddMember(ctx, f.pharmacy.ID, model.MemberManager, &dto.AddMemberRequest{UserID: 9999, Role: model.MemberViewer})
	assert.True(t, errors.Is(err, ErrUserNotFound))

	customer := &model.User{Username: "jeanne", Email: "jeanne@example.com", Password: "x", Role: model.RoleCustomer, Status: model.UserStatusActive}
	require.NoError(t, f.store.Users.Create(ctx, customer))
	_, err = svc.AddMember(ctx, f.pharmacy.ID, model.MemberManager, &dto.AddMemberRequest{UserID: customer.ID, Role: model.MemberViewer})
	assert.True(t, errors.Is(err, ErrCustomerNotStaff), "网店顾客账号不能加入药房")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	m, err := f.store.Members.Get(ctx, f.pharmacy.ID, customer.ID)
	require.NoError(t, err)
	assert.Nil(t, m)

	disabled := &model.User{Username: "ancien", Email: "ancien@example.com", Password: "x", Role: model.RoleStaff}
	require.NoError(t, f.store.Users.Create(ctx, disabled))
	disabled.Status = model.UserStatusDisabled
	require.NoError(t, f.store.Users.Update(ctx, disabled))
	_, err = svc.AddMember(ctx, f.pharmacy.ID, model.MemberManager, &dto.AddMemberRequest{UserID: disabled.ID, Role: model.MemberViewer})
	assert.True(t, errors.Is(err, ErrUserDisabled))

	// 停用的成员重新加入时启用并换角色
	inactive := false
	_, err = svc.UpdateMember(ctx, f.pharmacy.ID, f.cashier.ID, model.MemberManager, &dto.UpdateMemberRequest{Active: &inactive})
	require.NoError(t, err)
	back, err := svc.AddMember(ctx, f.pharmacy.ID, model.MemberManager, &dto.AddMemberRequest{UserID: f.cashier.ID, Role: model.MemberStockist})
	require.NoError(t, err)
	assert.True(t, back.Active)
	assert.Equal(t, model.MemberStockist, back.Role)
}
