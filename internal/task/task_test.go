package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/config"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/internal/service"
)

// ==================== 测试替身 ====================

type countJob struct {
	name  string
	runs  atomic.Int32
	err   error
	block chan struct{}
}

func (j *countJob) Name() string { return j.name }

func (j *countJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	if j.block != nil {
		<-j.block
	}
	return j.err
}

type fakeStock struct {
	alerts    int
	alertErr  error
	expired   *dto.ExpireResult
	expireErr error
	days      int
	pharmacy  int64
}

func (f *fakeStock) AlertExpiring(_ context.Context, days int) (int, error) {
	f.days = days
	return f.alerts, f.alertErr
}

func (f *fakeStock) ExpireBatches(_ context.Context, pharmacyID int64) (*dto.ExpireResult, error) {
	f.pharmacy = pharmacyID
	if f.expireErr != nil {
		return nil, f.expireErr
	}
	return f.expired, nil
}

type fakePrescriptions struct{ called bool }

func (f *fakePrescriptions) ExpirePrescriptions(context.Context) (int64, error) {
	f.called = true
	return 2, nil
}

type fakePartitions struct {
	months  int
	dropped int
	err     error
}

func (f *fakePartitions) EnsureFuturePartitions(_ context.Context, monthsAhead int) error {
	f.months = monthsAhead
	return f.err
}

func (f *fakePartitions) DropExpiredPartitions(context.Context) (int, error) {
	return f.dropped, nil
}

type fakeCleaner struct{ before time.Time }

func (f *fakeCleaner) Cleanup(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return 3, nil
}

// ==================== TaskManager ====================

func TestTaskManager_RegisterAndRunNow(t *testing.T) {
	tm := NewTaskManager(zap.NewNop(), time.Second)
	job := &countJob{name: "count"}

	require.NoError(t, tm.Register("0 * * * * *", job))
	assert.Error(t, tm.Register("0 * * * * *", job), "重复注册应失败")
	assert.Error(t, tm.Register("not a spec", &countJob{name: "bad"}))

	require.NoError(t, tm.RunNow(context.Background(), "count"))
	assert.Equal(t, int32(1), job.runs.Load())
	assert.ErrorIs(t, tm.RunNow(context.Background(), "missing"), ErrTaskNotFound)

	status := tm.Status()
	require.Len(t, status, 1)
	assert.Equal(t, "count", status[0].Name)
	assert.Equal(t, int64(1), status[0].Runs)
	assert.Empty(t, status[0].LastErr)
}

func TestTaskManager_RecordsFailure(t *testing.T) {
	tm := NewTaskManager(zap.NewNop(), time.Second)
	job := &countJob{name: "fail", err: errors.New("boom")}
	require.NoError(t, tm.Register("", job))

	err := tm.RunNow(context.Background(), "fail")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, "boom", tm.Status()[0].LastErr)
}

func TestTaskManager_SkipsWhileRunning(t *testing.T) {
	tm := NewTaskManager(zap.NewNop(), time.Second)
	job := &countJob{name: "slow", block: make(chan struct{})}
	require.NoError(t, tm.Register("", job))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = tm.RunNow(context.Background(), "slow")
	}()

	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, tm.RunNow(context.Background(), "slow"), ErrTaskRunning)

	close(job.block)
	wg.Wait()
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestTaskManager_StartStop(t *testing.T) {
	tm := NewTaskManager(zap.NewNop(), time.Second)
	job := &countJob{name: "tick"}
	require.NoError(t, tm.Register("* * * * * *", job))

	tm.Start()
	require.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	tm.Stop(ctx)
	assert.False(t, tm.Status()[0].Next.IsZero())
}

// ==================== 各任务 ====================

func TestExpiryTask_Run(t *testing.T) {
	stock := &fakeStock{alerts: 4, expired: &dto.ExpireResult{Batches: 1, Quantity: 7}}
	rx := &fakePrescriptions{}
	task := NewExpiryTask(stock, rx, 0, zap.NewNop())

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 30, stock.days, "默认 30 天")
	assert.Equal(t, int64(0), stock.pharmacy, "所有药房")
	assert.True(t, rx.called)
}

func TestExpiryTask_ContinuesAfterError(t *testing.T) {
	stock := &fakeStock{alertErr: errors.New("alert failed"), expireErr: errors.New("expire failed")}
	rx := &fakePrescriptions{}
	task := NewExpiryTask(stock, rx, 10, zap.NewNop())

	err := task.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alert failed")
	assert.Contains(t, err.Error(), "expire failed")
	assert.True(t, rx.called, "前一步失败不影响处方过期")
}

func TestMaintenanceTask_Run(t *testing.T) {
	parts := &fakePartitions{dropped: 2}
	cleaner := &fakeCleaner{}
	task := NewMaintenanceTask(parts, cleaner, 0, zap.NewNop())
	fixed := time.Date(2026, 3, 15, 3, 30, 0, 0, time.UTC)
	task.now = func() time.Time { return fixed }

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 3, parts.months)
	assert.Equal(t, fixed.AddDate(0, 0, -90), cleaner.before)

	// 非 PostgreSQL 时无分区维护
	cleaner = &fakeCleaner{}
	require.NoError(t, NewMaintenanceTask(nil, cleaner, 3, zap.NewNop()).Run(context.Background()))
	assert.False(t, cleaner.before.IsZero())
}

func TestSetup_RegistersAllJobs(t *testing.T) {
	store := setupTaskStore(t)
	stock := service.NewStockService(store)
	crm := service.NewCRMService(store, nil)
	notify := service.NewNotifyService(store, service.NewBroadcaster(), nil, nil, config.NotifyConfig{})

	tm, err := Setup(zap.NewNop(), config.TasksConfig{
		ExpiryDays:      30,
		ExpirySpec:      "0 0 6 * * *",
		ReminderSpec:    "0 0/15 * * * *",
		DispatchSpec:    "0 * * * * *",
		PartitionSpec:   "0 30 3 * * *",
		CartCleanupSpec: "0 0 * * * *",
	}, Deps{
		Stock:         stock,
		Prescriptions: crm,
		Reminders:     crm,
		Notify:        notify,
		Carts:         service.NewStorefrontService(store),
	})
	require.NoError(t, err)

	var names []string
	for _, st := range tm.Status() {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"cart_cleanup", "dispatch", "expiry", "maintenance", "reminders"}, names)
	for _, name := range names {
		assert.NoError(t, tm.RunNow(context.Background(), name), name)
	}
}

// ==================== 集成：效期任务 ====================

func setupTaskStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(append(model.Models(), model.PartitionedModels()...)...))
	return repository.NewStore(db)
}

func TestExpiryTask_WithStockService(t *testing.T) {
	store := setupTaskStore(t)
	ctx := context.Background()

	stockist := &model.User{Username: "stock", Email: "stock@example.com", Password: "x", Role: model.RoleStaff, Status: model.UserStatusActive}
	require.NoError(t, store.Users.Create(ctx, stockist))
	ph := &model.Pharmacy{Name: "Pharmacie du Port", LicenseNumber: "LIC-T"}
	require.NoError(t, store.Pharmacies.Create(ctx, ph))
	require.NoError(t, store.Members.Create(ctx, &model.PharmacyMember{PharmacyID: ph.ID, UserID: stockist.ID, Role: model.MemberStockist, Active: true}))

	p := &model.Product{PharmacyID: ph.ID, SKU: "AMOX", Name: "Amoxicilline", SalePrice: 500, PurchasePrice: 250, Active: true}
	require.NoError(t, store.Products.Create(ctx, p))

	today := time.Now()
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	past := midnight.AddDate(0, 0, -2)
	soon := midnight.AddDate(0, 0, 5)
	expired := &model.StockBatch{PharmacyID: ph.ID, ProductID: p.ID, LotNumber: "OLD", QuantityReceived: 4, UnitCost: 250, ExpiryDate: &past}
	fresh := &model.StockBatch{PharmacyID: ph.ID, ProductID: p.ID, LotNumber: "NEW", QuantityReceived: 6, UnitCost: 250, ExpiryDate: &soon}
	require.NoError(t, store.Batches.Create(ctx, expired))
	require.NoError(t, store.Batches.Create(ctx, fresh))

	task := NewExpiryTask(service.NewStockService(store), service.NewCRMService(store, nil), 30, zap.NewNop())
	require.NoError(t, task.Run(ctx))
	// 同一天重复执行不重复通知
	require.NoError(t, task.Run(ctx))

	var old model.StockBatch
	require.NoError(t, store.DB().First(&old, expired.ID).Error)
	assert.Equal(t, 0, old.QuantityRemaining)

	var prod model.Product
	require.NoError(t, store.DB().First(&prod, p.ID).Error)
	assert.Equal(t, 6, prod.StockQuantity)

	var count int64
	store.DB().Model(&model.Notification{}).
		Where("recipient_id = ? AND topic = ?", stockist.ID, model.TopicBatchExpiring).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
