package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
)

// ==================== 测试夹具 ====================

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(append(model.Models(), model.PartitionedModels()...)...), "数据库迁移失败")
	return repository.NewStore(db)
}

type fixture struct {
	store    *repository.Store
	pharmacy *model.Pharmacy
	manager  *model.User
	cashier  *model.User
}

func seedFixture(t *testing.T) fixture {
	t.Helper()
	store := setupStore(t)
	ctx := context.Background()

	manager := &model.User{Username: "manager", Email: "manager@example.com", Password: "x", Role: model.RoleStaff, Status: model.UserStatusActive}
	cashier := &model.User{Username: "cashier", Email: "cashier@example.com", Password: "x", Role: model.RoleStaff, Status: model.UserStatusActive}
	require.NoError(t, store.Users.Create(ctx, manager))
	require.NoError(t, store.Users.Create(ctx, cashier))

	ph := &model.Pharmacy{Name: "Pharmacie Centrale", LicenseNumber: "LIC-1", StorefrontEnabled: true}
	require.NoError(t, store.Pharmacies.Create(ctx, ph))
	for _, m := range []*model.PharmacyMember{
		{PharmacyID: ph.ID, UserID: manager.ID, Role: model.MemberManager, Active: true},
		{PharmacyID: ph.ID, UserID: cashier.ID, Role: model.MemberCashier, Active: true},
	} {
		require.NoError(t, store.Members.Create(ctx, m))
	}
	return fixture{store: store, pharmacy: ph, manager: manager, cashier: cashier}
}

func (f fixture) product(t *testing.T, sku string, price int64, rx bool) *model.Product {
	t.Helper()
	p := &model.Product{
		PharmacyID: f.pharmacy.ID, SKU: sku, Name: "Produit " + sku, SalePrice: price, PurchasePrice: price / 2,
		VATRate: 550, RequiresPrescription: rx, Published: true, Active: true,
	}
	require.NoError(t, f.store.Products.Create(context.Background(), p))
	return p
}

func (f fixture) batch(t *testing.T, p *model.Product, lot string, qty int, expiresInDays int) *model.StockBatch {
	t.Helper()
	exp := dayStart(time.Now()).AddDate(0, 0, expiresInDays)
	b := &model.StockBatch{
		PharmacyID: p.PharmacyID, ProductID: p.ID, LotNumber: lot,
		QuantityReceived: qty, UnitCost: p.PurchasePrice, ExpiryDate: &exp,
	}
	require.NoError(t, f.store.Batches.Create(context.Background(), b))
	return b
}

func (f fixture) customer(t *testing.T, userID *int64) *model.Customer {
	t.Helper()
	c, err := NewCRMService(f.store, nil).CreateCustomer(context.Background(), f.pharmacy.ID, &dto.CustomerRequest{
		UserID: userID, FirstName: "Jeanne", LastName: "Martin", Phone: "0600000000",
	})
	require.NoError(t, err)
	return c
}

func (f fixture) prescription(t *testing.T, customerID int64) *model.Prescription {
	t.Helper()
	rx, err := NewCRMService(f.store, nil).CreatePrescription(context.Background(), f.pharmacy.ID, &dto.PrescriptionRequest{
		CustomerID: customerID, PrescriberName: "Dr Durand", IssuedAt: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	return rx
}

func reloadProduct(t *testing.T, store *repository.Store, id int64) model.Product {
	t.Helper()
	var p model.Product
	require.NoError(t, store.DB().First(&p, id).Error)
	return p
}

func reloadBatch(t *testing.T, store *repository.Store, id int64) model.StockBatch {
	t.Helper()
	var b model.StockBatch
	require.NoError(t, store.DB().First(&b, id).Error)
	return b
}
