package middleware

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pharmacy_erp/internal/model"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.NumberSequence{}, &model.Supplier{}, &model.Pharmacy{}, &model.ActivityLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := RegisterAuditCallbacks(db); err != nil {
		t.Fatalf("register: %v", err)
	}
	return db
}

func TestAuditCallbacks_StampAndLog(t *testing.T) {
	db := setupAuditDB(t)
	ctx := WithAuditInfo(context.Background(), &AuditInfo{UserID: 5, PharmacyID: 3, IP: "10.0.0.1"})

	s := &model.Supplier{PharmacyID: 3, Name: "Grossiste"}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.CreatedBy != 5 || s.UpdatedBy != 5 {
		t.Errorf("stamp = %d/%d, want 5/5", s.CreatedBy, s.UpdatedBy)
	}

	other := WithAuditInfo(context.Background(), &AuditInfo{UserID: 6, PharmacyID: 3})
	if err := db.WithContext(other).Model(s).Updates(map[string]interface{}{"name": "Grossiste Sud"}).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	var logs []model.ActivityLog
	db.Order("id").Find(&logs)
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}
	if logs[0].Action != "create" || logs[0].Entity != "suppliers" || logs[0].RecordID != s.ID || logs[0].IP != "10.0.0.1" {
		t.Errorf("create log = %+v", logs[0])
	}
	if logs[1].Action != "update" || logs[1].UserID != 6 || len(logs[1].Changes) == 0 {
		t.Errorf("update log = %+v", logs[1])
	}

	var reloaded model.Supplier
	db.First(&reloaded, s.ID)
	if reloaded.UpdatedBy != 6 {
		t.Errorf("updated_by = %d, want 6", reloaded.UpdatedBy)
	}
}

func TestAuditCallbacks_NoContextNoLog(t *testing.T) {
	db := setupAuditDB(t)
	if err := db.Create(&model.Supplier{PharmacyID: 1, Name: "x"}).Error; err != nil {
		t.Fatal(err)
	}
	var n int64
	db.Model(&model.ActivityLog{}).Count(&n)
	if n != 0 {
		t.Errorf("logs = %d, want 0", n)
	}
}
