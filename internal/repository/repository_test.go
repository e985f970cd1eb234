package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pharmacy_erp/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(append(model.Models(), model.PartitionedModels()...)...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func seedUserAndPharmacy(t *testing.T, store *Store) (*model.User, *model.Pharmacy) {
	t.Helper()
	ctx := context.Background()
	user := &model.User{Username: "owner", Email: "owner@example.com", Password: "x", Role: model.RoleStaff, Status: model.UserStatusActive}
	if err := store.Users.Create(ctx, user); err != nil {
		t.Fatalf("Create user error = %v", err)
	}
	ph := &model.Pharmacy{Name: "Pharmacie du Port", LicenseNumber: "LIC-42", City: "Nantes"}
	if err := store.Pharmacies.Create(ctx, ph); err != nil {
		t.Fatalf("Create pharmacy error = %v", err)
	}
	if err := store.Members.Create(ctx, &model.PharmacyMember{PharmacyID: ph.ID, UserID: user.ID, Role: model.MemberOwner, Active: true}); err != nil {
		t.Fatalf("Create member error = %v", err)
	}
	return user, ph
}

func TestUserRepo_GetByLogin(t *testing.T) {
	store := NewStore(setupTestDB(t))
	user, _ := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	for _, login := range []string{"OWNER", " owner@example.com "} {
		got, err := store.Users.GetByLogin(ctx, login)
		if err != nil {
			t.Fatalf("GetByLogin(%q) error = %v", login, err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("GetByLogin(%q) = %v, want user %d", login, got, user.ID)
		}
	}

	missing, err := store.Users.GetByLogin(ctx, "nobody")
	if err != nil || missing != nil {
		t.Errorf("GetByLogin(nobody) = %v, %v, want nil, nil", missing, err)
	}
}

func TestUserRepo_DeletedNamesStayTaken(t *testing.T) {
	store := NewStore(setupTestDB(t))
	user, _ := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	if err := store.Users.UpdateDeviceToken(ctx, user.ID, "fcm-token"); err != nil {
		t.Fatalf("UpdateDeviceToken() error = %v", err)
	}
	got, _ := store.Users.GetByID(ctx, user.ID)
	if got.DeviceToken != "fcm-token" {
		t.Errorf("DeviceToken = %q, want fcm-token", got.DeviceToken)
	}

	if err := store.Users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := store.Users.GetByID(ctx, user.ID); got != nil {
		t.Error("软删除后不应再查到")
	}
	if taken, _ := store.Users.ExistsByUsername(ctx, " OWNER "); !taken {
		t.Error("已删除账号的用户名应仍被占用")
	}
	if taken, _ := store.Users.ExistsByEmail(ctx, "owner@example.com"); !taken {
		t.Error("已删除账号的邮箱应仍被占用")
	}
	if taken, _ := store.Users.ExistsByEmail(ctx, "other@example.com"); taken {
		t.Error("未注册邮箱不应被占用")
	}
}

func TestMemberRepo_ActiveAndOwners(t *testing.T) {
	store := NewStore(setupTestDB(t))
	user, ph := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	m, err := store.Members.GetActiveMember(ctx, ph.ID, user.ID)
	if err != nil || m == nil {
		t.Fatalf("GetActiveMember() = %v, %v", m, err)
	}
	if m.Role != model.MemberOwner {
		t.Errorf("Role = %v, want owner", m.Role)
	}

	owners, _ := store.Members.CountActiveOwners(ctx, ph.ID)
	if owners != 1 {
		t.Errorf("CountActiveOwners() = %v, want 1", owners)
	}

	mine, err := store.Pharmacies.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(mine) != 1 || mine[0].MemberRole != model.MemberOwner || mine[0].Name != ph.Name {
		t.Errorf("ListByUser() = %+v", mine)
	}

	m.Active = false
	if err := store.Members.Update(ctx, m); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	m, _ = store.Members.GetActiveMember(ctx, ph.ID, user.ID)
	if m != nil {
		t.Errorf("GetActiveMember() after deactivate = %v, want nil", m)
	}

	if err := store.Members.Remove(ctx, ph.ID, user.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := store.Members.Create(ctx, &model.PharmacyMember{PharmacyID: ph.ID, UserID: user.ID, Role: model.MemberViewer, Active: true}); err != nil {
		t.Errorf("re-invite after Remove() error = %v", err)
	}
}

func TestProductRepo_ListAndValuation(t *testing.T) {
	store := NewStore(setupTestDB(t))
	_, ph := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	products := []*model.Product{
		{PharmacyID: ph.ID, SKU: "dol-500", Name: "Doliprane 500mg", GenericName: "Paracetamol", SalePrice: 250, ReorderLevel: 5},
		{PharmacyID: ph.ID, SKU: "ibu-400", Name: "Advil 400", GenericName: "Ibuprofene", SalePrice: 450},
		{PharmacyID: ph.ID, SKU: "amox-1g", Name: "Amoxicilline 1g", RequiresPrescription: true, SalePrice: 700},
	}
	for _, p := range products {
		if err := store.Products.Create(ctx, p); err != nil {
			t.Fatalf("Create product error = %v", err)
		}
	}
	expiry := time.Now().AddDate(1, 0, 0)
	if err := store.Batches.Create(ctx, &model.StockBatch{
		PharmacyID: ph.ID, ProductID: products[0].ID, LotNumber: "L1", ExpiryDate: &expiry, QuantityReceived: 4, UnitCost: 100,
	}); err != nil {
		t.Fatalf("Create batch error = %v", err)
	}

	tests := []struct {
		name   string
		filter ProductFilter
		want   int64
	}{
		{"全部", ProductFilter{PharmacyID: ph.ID}, 3},
		{"通用名", ProductFilter{PharmacyID: ph.ID, Keyword: "paracetamol"}, 1},
		{"SKU", ProductFilter{PharmacyID: ph.ID, Keyword: "IBU"}, 1},
		{"低库存", ProductFilter{PharmacyID: ph.ID, LowStock: true}, 1},
		{"其他药房", ProductFilter{PharmacyID: ph.ID + 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := store.Products.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if total != tt.want {
				t.Errorf("total = %v, want %v", total, tt.want)
			}
		})
	}

	list, total, _ := store.Products.List(ctx, ProductFilter{PharmacyID: ph.ID, Pagination: Pagination{Page: 2, PageSize: 2}})
	if total != 3 || len(list) != 1 {
		t.Errorf("page 2 = %d items of %d, want 1 of 3", len(list), total)
	}

	rows, err := store.Products.Valuation(ctx, ph.ID)
	if err != nil {
		t.Fatalf("Valuation() error = %v", err)
	}
	var cost int64
	for _, r := range rows {
		cost += r.CostValue
	}
	if cost != 400 {
		t.Errorf("Valuation cost = %v, want 400", cost)
	}

	got, _ := store.Products.GetByID(ctx, ph.ID, products[0].ID)
	if got.StockQuantity != 4 {
		t.Errorf("StockQuantity = %v, want 4", got.StockQuantity)
	}
	got.Name = "Doliprane 500"
	got.StockQuantity = 999
	if err := store.Products.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ = store.Products.GetByID(ctx, ph.ID, products[0].ID)
	if got.StockQuantity != 4 {
		t.Errorf("Update() overwrote stock cache: %v", got.StockQuantity)
	}
}

func TestStore_TransactionRollback(t *testing.T) {
	store := NewStore(setupTestDB(t))
	_, ph := seedUserAndPharmacy(t, store)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Suppliers.Create(ctx, &model.Supplier{PharmacyID: ph.ID, Name: "OCP"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want boom", err)
	}
	_, total, _ := store.Suppliers.List(ctx, SupplierFilter{PharmacyID: ph.ID})
	if total != 0 {
		t.Errorf("supplier count after rollback = %v, want 0", total)
	}
}

func TestCartRepo_UpsertItem(t *testing.T) {
	store := NewStore(setupTestDB(t))
	_, ph := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	p := &model.Product{PharmacyID: ph.ID, SKU: "vitc", Name: "Vitamine C", SalePrice: 500, Published: true}
	_ = store.Products.Create(ctx, p)
	cart := &model.Cart{PharmacyID: ph.ID}
	if err := store.Carts.Create(ctx, cart); err != nil {
		t.Fatalf("Create cart error = %v", err)
	}
	if cart.Token == "" {
		t.Fatal("cart token not assigned")
	}

	_ = store.Carts.UpsertItem(ctx, cart.ID, p.ID, 1)
	_ = store.Carts.UpsertItem(ctx, cart.ID, p.ID, 3)

	got, err := store.Carts.GetByToken(ctx, cart.Token)
	if err != nil || got == nil {
		t.Fatalf("GetByToken() = %v, %v", got, err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Errorf("Items = %+v, want one item with quantity 3", got.Items)
	}
	if got.Items[0].Product == nil || got.Items[0].Product.Name != "Vitamine C" {
		t.Errorf("Items[0].Product not preloaded")
	}

	_ = store.Carts.Touch(ctx, cart.ID, time.Now().Add(-time.Minute))
	if expired, _ := store.Carts.GetByToken(ctx, cart.Token); expired != nil {
		t.Errorf("GetByToken() on expired cart = %v, want nil", expired)
	}
	n, err := store.Carts.DeleteExpired(ctx, time.Now())
	if err != nil || n != 1 {
		t.Errorf("DeleteExpired() = %v, %v, want 1", n, err)
	}
}

func TestNotificationRepo_PendingAndFailures(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	user, ph := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := model.Notify(db, user.ID, model.NotificationInput{PharmacyID: ph.ID, Topic: model.TopicLowStock, Title: "t"}); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}
	}

	pending, _ := store.Notifications.ListPending(ctx, 10, 3)
	if len(pending) != 3 {
		t.Fatalf("ListPending() = %d, want 3", len(pending))
	}

	_ = store.Notifications.MarkDelivered(ctx, pending[0].ID, model.DeliverySent)
	_ = store.Notifications.MarkFailed(ctx, pending[1].ID, 1, "timeout", false)
	_ = store.Notifications.MarkFailed(ctx, pending[2].ID, 3, "timeout", true)

	pending, _ = store.Notifications.ListPending(ctx, 10, 3)
	if len(pending) != 1 || pending[0].DeliveryStatus != model.DeliveryFailed {
		t.Errorf("ListPending() after delivery = %+v, want the single retryable failure", pending)
	}

	unread, _ := store.Notifications.CountUnread(ctx, user.ID)
	if unread != 3 {
		t.Errorf("CountUnread() = %v, want 3", unread)
	}
	n, _ := store.Notifications.MarkRead(ctx, user.ID+1, []int64{pending[0].ID})
	if n != 0 {
		t.Errorf("MarkRead() by another user = %v, want 0", n)
	}
	n, _ = store.Notifications.MarkAllRead(ctx, user.ID)
	if n != 3 {
		t.Errorf("MarkAllRead() = %v, want 3", n)
	}
}

func TestConversationRepo_Unread(t *testing.T) {
	store := NewStore(setupTestDB(t))
	owner, ph := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	other := &model.User{Username: "tech", Email: "tech@example.com", Password: "x", Status: model.UserStatusActive}
	_ = store.Users.Create(ctx, other)

	conv := &model.Conversation{
		PharmacyID: ph.ID,
		Subject:    "Rupture Doliprane",
		Participants: []model.ConversationParticipant{
			{UserID: owner.ID}, {UserID: other.ID},
		},
	}
	if err := store.Conversations.Create(ctx, conv); err != nil {
		t.Fatalf("Create conversation error = %v", err)
	}
	for _, body := range []string{"bonjour", "commande passée"} {
		if err := store.Messages.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: owner.ID, Body: body}); err != nil {
			t.Fatalf("Create message error = %v", err)
		}
	}

	list, total, err := store.Conversations.ListForUser(ctx, ph.ID, other.ID, Pagination{})
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if total != 1 || list[0].Unread != 2 {
		t.Errorf("ListForUser() = %d convs, unread %v, want 1 conv with 2 unread", total, list[0].Unread)
	}
	if list[0].LastMessagePreview != "commande passée" {
		t.Errorf("LastMessagePreview = %q", list[0].LastMessagePreview)
	}

	_ = store.Conversations.MarkRead(ctx, conv.ID, other.ID, time.Now().Add(time.Second))
	unread, _ := store.Conversations.UnreadCount(ctx, conv.ID, other.ID)
	if unread != 0 {
		t.Errorf("UnreadCount() after MarkRead = %v, want 0", unread)
	}
	ownUnread, _ := store.Conversations.UnreadCount(ctx, conv.ID, owner.ID)
	if ownUnread != 0 {
		t.Errorf("sender UnreadCount() = %v, want 0", ownUnread)
	}
}

func TestAppointmentRepo_HasConflict(t *testing.T) {
	store := NewStore(setupTestDB(t))
	owner, ph := seedUserAndPharmacy(t, store)
	ctx := context.Background()

	cust := &model.Customer{PharmacyID: ph.ID, FirstName: "Jeanne", LastName: "Martin"}
	if err := store.Customers.Create(ctx, cust); err != nil {
		t.Fatalf("Create customer error = %v", err)
	}
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	appt := &model.Appointment{PharmacyID: ph.ID, CustomerID: cust.ID, StaffUserID: &owner.ID,
		Type: model.AppointmentVaccination, ScheduledAt: start, DurationMinutes: 30}
	if err := store.Appointments.Create(ctx, appt); err != nil {
		t.Fatalf("Create appointment error = %v", err)
	}

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"重叠", start.Add(15 * time.Minute), true},
		{"紧接其后", start.Add(30 * time.Minute), false},
		{"之前结束", start.Add(-15 * time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Appointments.HasConflict(ctx, owner.ID, tt.start, tt.start.Add(15*time.Minute), 0)
			if err != nil {
				t.Fatalf("HasConflict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HasConflict() = %v, want %v", got, tt.want)
			}
		})
	}

	ok, _ := store.Appointments.MarkReminded(ctx, appt.ID)
	again, _ := store.Appointments.MarkReminded(ctx, appt.ID)
	if !ok || again {
		t.Errorf("MarkReminded() = %v then %v, want true then false", ok, again)
	}
}
