package model

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(append(Models(), PartitionedModels()...)...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type fixture struct {
	pharmacy *Pharmacy
	manager  *User
	cashier  *User
}

func seedPharmacy(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	manager := &User{Username: "Manager", Email: "MGR@example.com", Password: "x", Role: RoleStaff, Status: UserStatusActive}
	cashier := &User{Username: "cashier", Email: "cashier@example.com", Password: "x", Role: RoleStaff, Status: UserStatusActive}
	if err := db.Create(manager).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := db.Create(cashier).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	ph := &Pharmacy{Name: "Pharmacie Centrale", LicenseNumber: "LIC-1"}
	if err := db.Create(ph).Error; err != nil {
		t.Fatalf("create pharmacy: %v", err)
	}
	for _, m := range []PharmacyMember{
		{PharmacyID: ph.ID, UserID: manager.ID, Role: MemberManager, Active: true},
		{PharmacyID: ph.ID, UserID: cashier.ID, Role: MemberCashier, Active: true},
	} {
		m := m
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("create member: %v", err)
		}
	}
	return fixture{pharmacy: ph, manager: manager, cashier: cashier}
}

func seedProduct(t *testing.T, db *gorm.DB, pharmacyID int64, sku string, price int64, reorder int) *Product {
	t.Helper()
	p := &Product{PharmacyID: pharmacyID, SKU: sku, Name: "Produit " + sku, SalePrice: price, VATRate: 550, ReorderLevel: reorder, Active: true}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func seedBatch(t *testing.T, db *gorm.DB, p *Product, lot string, qty int, expiry *time.Time) *StockBatch {
	t.Helper()
	b := &StockBatch{PharmacyID: p.PharmacyID, ProductID: p.ID, LotNumber: lot, QuantityReceived: qty, UnitCost: 100, ExpiryDate: expiry}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("create batch: %v", err)
	}
	return b
}

func reloadProduct(t *testing.T, db *gorm.DB, id int64) Product {
	t.Helper()
	var p Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p
}

func datePtr(days int) *time.Time {
	d := startOfDay(time.Now()).AddDate(0, 0, days)
	return &d
}

// ==================== 编号 ====================

func TestNextNumber_Increments(t *testing.T) {
	db := setupTestDB(t)

	for want := int64(1); want <= 3; want++ {
		got, err := NextNumber(db, 7, "sale:20261019")
		if err != nil {
			t.Fatalf("NextNumber: %v", err)
		}
		if got != want {
			t.Errorf("NextNumber = %d, want %d", got, want)
		}
	}

	other, _ := NextNumber(db, 8, "sale:20261019")
	if other != 1 {
		t.Errorf("sequence must be per pharmacy, got %d", other)
	}
}

func TestPharmacyAndUserHooks(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)

	if f.pharmacy.Code != "PH-0001" {
		t.Errorf("pharmacy code = %s, want PH-0001", f.pharmacy.Code)
	}
	if f.manager.Username != "manager" || f.manager.Email != "mgr@example.com" {
		t.Errorf("user not normalised: %s %s", f.manager.Username, f.manager.Email)
	}

	second := &Pharmacy{Name: "Annexe", LicenseNumber: "LIC-2"}
	if err := db.Create(second).Error; err != nil {
		t.Fatal(err)
	}
	if second.Code != "PH-0002" {
		t.Errorf("second code = %s, want PH-0002", second.Code)
	}
}

// ==================== 库存 ====================

func TestStockBatch_CreateIncrementsStock(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := seedProduct(t, db, f.pharmacy.ID, "doli500", 250, 0)

	seedBatch(t, db, p, "L1", 10, datePtr(60))
	seedBatch(t, db, p, "L2", 5, nil)

	got := reloadProduct(t, db, p.ID)
	if got.StockQuantity != 15 {
		t.Errorf("stock = %d, want 15", got.StockQuantity)
	}
	if got.SKU != "DOLI500" {
		t.Errorf("sku = %s, want DOLI500", got.SKU)
	}

	var movements []StockMovement
	db.Where("product_id = ?", p.ID).Order("id").Find(&movements)
	if len(movements) != 2 || movements[0].Type != MovementIn || movements[1].BalanceAfter != 15 {
		t.Errorf("unexpected movements: %+v", movements)
	}
}

func TestStockBatch_RejectsZeroQuantity(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := seedProduct(t, db, f.pharmacy.ID, "X", 100, 0)

	err := db.Create(&StockBatch{PharmacyID: f.pharmacy.ID, ProductID: p.ID, LotNumber: "L"}).Error
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("err = %v, want ErrInvalidQuantity", err)
	}
}

func TestAdjustBatch_NeverNegative(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := seedProduct(t, db, f.pharmacy.ID, "X", 100, 0)
	b := seedBatch(t, db, p, "L1", 3, nil)

	err := db.Transaction(func(tx *gorm.DB) error {
		return AdjustBatch(tx, b, -4, MovementAdjustment, RefAdjustment, 0, "")
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if got := reloadProduct(t, db, p.ID); got.StockQuantity != 3 {
		t.Errorf("stock = %d, want 3", got.StockQuantity)
	}
}

// ==================== 销售 ====================

func TestSale_FEFODeduction(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := seedProduct(t, db, f.pharmacy.ID, "AMOX", 500, 0)

	late := seedBatch(t, db, p, "LATE", 10, datePtr(200))
	early := seedBatch(t, db, p, "EARLY", 4, datePtr(20))
	expired := seedBatch(t, db, p, "OLD", 10, datePtr(-1))

	sale := &Sale{
		PharmacyID: f.pharmacy.ID,
		CashierID:  f.cashier.ID,
		Lines:      []SaleLine{{ProductID: p.ID, Quantity: 6}},
		Payments:   []Payment{{Method: PayCash, Amount: 5000}},
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if sale.TotalTTC != 3000 || sale.ChangeAmount != 2000 || sale.DueAmount != 0 {
		t.Errorf("totals = ttc %d change %d due %d", sale.TotalTTC, sale.ChangeAmount, sale.DueAmount)
	}
	today := time.Now().Format("20060102")
	if sale.Number != "VT-"+today+"-0001" {
		t.Errorf("number = %s", sale.Number)
	}

	var e, l, o StockBatch
	db.First(&e, early.ID)
	db.First(&l, late.ID)
	db.First(&o, expired.ID)
	if e.QuantityRemaining != 0 || l.QuantityRemaining != 8 || o.QuantityRemaining != 10 {
		t.Errorf("remaining early=%d late=%d expired=%d, want 0/8/10", e.QuantityRemaining, l.QuantityRemaining, o.QuantityRemaining)
	}
	if got := reloadProduct(t, db, p.ID); got.StockQuantity != 18 {
		t.Errorf("stock cache = %d, want 18", got.StockQuantity)
	}

	var allocs []SaleLineAllocation
	db.Find(&allocs)
	if len(allocs) != 2 {
		t.Errorf("allocations = %d, want 2", len(allocs))
	}
}

func TestSale_InsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := seedProduct(t, db, f.pharmacy.ID, "RARE", 500, 0)
	seedBatch(t, db, p, "L1", 2, nil)

	sale := &Sale{
		PharmacyID: f.pharmacy.ID,
		CashierID:  f.cashier.ID,
		Lines:      []SaleLine{{ProductID: p.ID, Quantity: 3}},
	}
	err := db.Create(sale).Error
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	var count int64
	db.Model(&Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("sales = %d, want 0", count)
	}
	if got := reloadProduct(t, db, p.ID); got.StockQuantity != 2 {
		t.Errorf("stock = %d, want 2", got.StockQuantity)
	}
}

func TestSale_PrescriptionRequired(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := &Product{PharmacyID: f.pharmacy.ID, SKU: "RX", Name: "Antibiotique", SalePrice: 900, RequiresPrescription: true, Active: true}
	db.Create(p)
	seedBatch(t, db, p, "L1", 5, nil)

	err := db.Create(&Sale{PharmacyID: f.pharmacy.ID, CashierID: f.cashier.ID, Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}}}).Error
	if !errors.Is(err, ErrPrescriptionRequired) {
		t.Errorf("err = %v, want ErrPrescriptionRequired", err)
	}
}

func TestSale_LowStockNotification(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := seedProduct(t, db, f.pharmacy.ID, "LOW", 100, 5)
	seedBatch(t, db, p, "L1", 7, nil)

	if err := db.Create(&Sale{PharmacyID: f.pharmacy.ID, CashierID: f.cashier.ID, Lines: []SaleLine{{ProductID: p.ID, Quantity: 3}}}).Error; err != nil {
		t.Fatal(err)
	}

	var notes []Notification
	db.Where("topic = ?", TopicLowStock).Find(&notes)
	if len(notes) != 1 || notes[0].RecipientID != f.manager.ID {
		t.Errorf("low stock notifications = %+v", notes)
	}
}

func TestSale_LoyaltyAccrualAndCancel(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	p := seedProduct(t, db, f.pharmacy.ID, "VIT", 1250, 0)
	b := seedBatch(t, db, p, "L1", 10, nil)

	customer := &Customer{PharmacyID: f.pharmacy.ID, FirstName: "Anne", LastName: "Martin"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatal(err)
	}
	if customer.Code != "CL-000001" || customer.LoyaltyAccount == nil {
		t.Fatalf("customer hooks: code=%s account=%v", customer.Code, customer.LoyaltyAccount)
	}

	sale := &Sale{
		PharmacyID: f.pharmacy.ID, CashierID: f.cashier.ID, CustomerID: &customer.ID,
		Lines:    []SaleLine{{ProductID: p.ID, Quantity: 2}},
		Payments: []Payment{{Method: PayCard, Amount: 2500}},
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatal(err)
	}
	if sale.PointsEarned != 25 {
		t.Errorf("points earned = %d, want 25", sale.PointsEarned)
	}

	var acc LoyaltyAccount
	db.Where("customer_id = ?", customer.ID).First(&acc)
	if acc.PointsBalance != 25 || acc.LifetimePoints != 25 {
		t.Errorf("account = %+v", acc)
	}

	var loaded Sale
	db.First(&loaded, sale.ID)
	loaded.Status = SaleCancelled
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(&loaded).Error
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var batch StockBatch
	db.First(&batch, b.ID)
	if batch.QuantityRemaining != 10 {
		t.Errorf("batch remaining after cancel = %d, want 10", batch.QuantityRemaining)
	}
	db.First(&acc, acc.ID)
	if acc.PointsBalance != 0 {
		t.Errorf("balance after cancel = %d, want 0", acc.PointsBalance)
	}
}

// ==================== 积分 ====================

func TestLoyalty_RedeemBeyondBalanceRejected(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	c := &Customer{PharmacyID: f.pharmacy.ID, FirstName: "A", LastName: "B"}
	db.Create(c)

	err := db.Create(&LoyaltyTransaction{AccountID: c.LoyaltyAccount.ID, Type: LoyaltyRedeem, Points: -1}).Error
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("err = %v, want ErrInsufficientPoints", err)
	}
}

func TestLoyaltyPolicy_Tier(t *testing.T) {
	p := LoyaltyPolicy{CentsPerPoint: 100, PointValueCents: 5, SilverThreshold: 500, GoldThreshold: 2000}
	tests := []struct {
		lifetime int64
		want     string
	}{
		{0, TierBronze}, {499, TierBronze}, {500, TierSilver}, {1999, TierSilver}, {2000, TierGold},
	}
	for _, tt := range tests {
		if got := p.TierFor(tt.lifetime); got != tt.want {
			t.Errorf("TierFor(%d) = %s, want %s", tt.lifetime, got, tt.want)
		}
	}
	if got := p.PointsFor(1999); got != 19 {
		t.Errorf("PointsFor(1999) = %d, want 19", got)
	}
}

// ==================== 发票 ====================

func TestInvoicePayment_Cascade(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)

	inv := &Invoice{
		PharmacyID: f.pharmacy.ID,
		Status:     InvoiceIssued,
		IssuedBy:   f.manager.ID,
		Lines:      []InvoiceLine{{Label: "Consultation", Quantity: 1, UnitPrice: 1000}},
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatal(err)
	}
	if inv.Number != "FA-"+time.Now().Format("2006")+"-000001" || inv.Balance != 1000 {
		t.Fatalf("invoice = %s balance %d", inv.Number, inv.Balance)
	}

	if err := db.Create(&InvoicePayment{InvoiceID: inv.ID, Method: PayCash, Amount: 400}).Error; err != nil {
		t.Fatal(err)
	}
	var got Invoice
	db.First(&got, inv.ID)
	if got.Status != InvoicePartial || got.Balance != 600 {
		t.Errorf("after partial: status=%s balance=%d", got.Status, got.Balance)
	}

	err := db.Create(&InvoicePayment{InvoiceID: inv.ID, Method: PayCash, Amount: 700}).Error
	if !errors.Is(err, ErrOverpayment) {
		t.Errorf("err = %v, want ErrOverpayment", err)
	}

	if err := db.Create(&InvoicePayment{InvoiceID: inv.ID, Method: PayCard, Amount: 600}).Error; err != nil {
		t.Fatal(err)
	}
	db.First(&got, inv.ID)
	if got.Status != InvoicePaid || got.Balance != 0 {
		t.Errorf("after full: status=%s balance=%d", got.Status, got.Balance)
	}

	var n int64
	db.Model(&Notification{}).Where("recipient_id = ? AND topic = ?", f.manager.ID, TopicInvoicePaid).Count(&n)
	if n != 1 {
		t.Errorf("paid notifications = %d, want 1", n)
	}
}

func TestInvoicePayment_DraftNotPayable(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	inv := &Invoice{PharmacyID: f.pharmacy.ID, Lines: []InvoiceLine{{Label: "x", Quantity: 1, UnitPrice: 100}}}
	db.Create(inv)

	err := db.Create(&InvoicePayment{InvoiceID: inv.ID, Method: PayCash, Amount: 100}).Error
	if !errors.Is(err, ErrInvoiceNotPayable) {
		t.Errorf("err = %v, want ErrInvoiceNotPayable", err)
	}
}

// ==================== 人事 ====================

func TestLeaveRequest_DaysAndNotifications(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)
	emp := &Employee{PharmacyID: f.pharmacy.ID, FirstName: "Paul", LastName: "Durand", UserID: &f.cashier.ID, HireDate: time.Now()}
	if err := db.Create(emp).Error; err != nil {
		t.Fatal(err)
	}
	if emp.Matricule != "EMP-00001" {
		t.Errorf("matricule = %s", emp.Matricule)
	}

	start := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	req := &LeaveRequest{PharmacyID: f.pharmacy.ID, EmployeeID: emp.ID, Type: LeavePaid, StartDate: start, EndDate: start.AddDate(0, 0, 4)}
	if err := db.Create(req).Error; err != nil {
		t.Fatal(err)
	}
	if req.Days != 5 {
		t.Errorf("days = %d, want 5", req.Days)
	}

	var loaded LeaveRequest
	db.First(&loaded, req.ID)
	loaded.Status = LeaveStatusApproved
	if err := db.Save(&loaded).Error; err != nil {
		t.Fatal(err)
	}

	var managerNotes, employeeNotes int64
	db.Model(&Notification{}).Where("recipient_id = ? AND topic = ?", f.manager.ID, TopicLeaveRequested).Count(&managerNotes)
	db.Model(&Notification{}).Where("recipient_id = ? AND topic = ?", f.cashier.ID, TopicLeaveReviewed).Count(&employeeNotes)
	if managerNotes != 1 || employeeNotes != 1 {
		t.Errorf("notifications manager=%d employee=%d", managerNotes, employeeNotes)
	}

	bad := &LeaveRequest{PharmacyID: f.pharmacy.ID, EmployeeID: emp.ID, Type: LeaveSick, StartDate: start, EndDate: start.AddDate(0, 0, -1)}
	if err := db.Create(bad).Error; !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestLeaveRequest_DaysAcrossDST(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	cest := time.FixedZone("CEST", 7200)
	l := &LeaveRequest{
		StartDate: time.Date(2026, 3, 28, 0, 0, 0, 0, cet),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, cest),
	}
	if err := l.BeforeSave(nil); err != nil {
		t.Fatal(err)
	}
	if l.Days != 4 {
		t.Errorf("days = %d, want 4", l.Days)
	}

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	for _, tc := range []struct {
		start, end time.Time
		want       int
	}{
		{time.Date(2026, 3, 28, 0, 0, 0, 0, paris), time.Date(2026, 3, 31, 0, 0, 0, 0, paris), 4},
		{time.Date(2026, 10, 24, 0, 0, 0, 0, paris), time.Date(2026, 10, 26, 0, 0, 0, 0, paris), 3},
		{time.Date(2026, 3, 29, 9, 0, 0, 0, paris), time.Date(2026, 3, 29, 18, 0, 0, 0, paris), 1},
	} {
		l := &LeaveRequest{StartDate: tc.start, EndDate: tc.end}
		if err := l.BeforeSave(nil); err != nil {
			t.Fatal(err)
		}
		if l.Days != tc.want {
			t.Errorf("%s..%s days = %d, want %d", tc.start.Format("01-02"), tc.end.Format("01-02"), l.Days, tc.want)
		}
	}
}

func TestAttendanceAndPayslip(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)

	in := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	out := in.Add(7*time.Hour + 30*time.Minute)
	a := &Attendance{PharmacyID: f.pharmacy.ID, EmployeeID: 1, ClockIn: in, ClockOut: &out}
	if err := db.Create(a).Error; err != nil {
		t.Fatal(err)
	}
	if a.WorkedMinutes != 450 {
		t.Errorf("worked = %d, want 450", a.WorkedMinutes)
	}

	slip := &Payslip{PharmacyID: f.pharmacy.ID, EmployeeID: 1, Period: "2026-10", Gross: 200000, Bonus: 10000, Deductions: 50000}
	if err := db.Create(slip).Error; err != nil {
		t.Fatal(err)
	}
	if slip.Net != 160000 || slip.Number != "PAY-202610-0001" {
		t.Errorf("payslip = %s net %d", slip.Number, slip.Net)
	}
}

// ==================== 消息与订单 ====================

func TestMessage_UpdatesConversationAndNotifies(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)

	conv := &Conversation{PharmacyID: f.pharmacy.ID, Subject: "Inventaire", Participants: []ConversationParticipant{
		{UserID: f.manager.ID}, {UserID: f.cashier.ID},
	}}
	if err := db.Create(conv).Error; err != nil {
		t.Fatal(err)
	}
	msg := &Message{ConversationID: conv.ID, SenderID: f.manager.ID, Body: "Merci de compter le rayon B"}
	if err := db.Create(msg).Error; err != nil {
		t.Fatal(err)
	}

	var got Conversation
	db.First(&got, conv.ID)
	if got.LastMessagePreview != msg.Body || got.LastMessageAt == nil {
		t.Errorf("conversation = %+v", got)
	}
	var n []Notification
	db.Where("topic = ?", TopicMessageNew).Find(&n)
	if len(n) != 1 || n[0].RecipientID != f.cashier.ID {
		t.Errorf("message notifications = %+v", n)
	}
}

func TestOnlineOrder_StatusNotification(t *testing.T) {
	db := setupTestDB(t)
	f := seedPharmacy(t, db)

	order := &OnlineOrder{PharmacyID: f.pharmacy.ID, UserID: f.cashier.ID, Items: []OnlineOrderItem{
		{ProductID: 1, Name: "A", Quantity: 2, UnitPrice: 300},
	}}
	if err := db.Create(order).Error; err != nil {
		t.Fatal(err)
	}
	if order.TotalTTC != 600 || order.ItemCount != 2 {
		t.Errorf("order totals = %d/%d", order.TotalTTC, order.ItemCount)
	}

	var loaded OnlineOrder
	db.First(&loaded, order.ID)
	loaded.Status = OrderConfirmed
	if err := db.Omit(clause.Associations).Save(&loaded).Error; err != nil {
		t.Fatal(err)
	}
	var n int64
	db.Model(&Notification{}).Where("recipient_id = ? AND topic = ?", f.cashier.ID, TopicOrderStatus).Count(&n)
	if n != 1 {
		t.Errorf("status notifications = %d, want 1", n)
	}

	if !CanTransition(OrderPending, OrderConfirmed) || CanTransition(OrderDelivered, OrderPending) {
		t.Error("CanTransition mismatch")
	}
}

func TestNotify_Dedupe(t *testing.T) {
	db := setupTestDB(t)
	in := NotificationInput{Topic: "t", Title: "x", DedupeKey: "k1"}
	for i := 0; i < 3; i++ {
		if err := Notify(db, 42, in); err != nil {
			t.Fatal(err)
		}
	}
	var n int64
	db.Model(&Notification{}).Where("recipient_id = ?", 42).Count(&n)
	if n != 1 {
		t.Errorf("notifications = %d, want 1", n)
	}
}

func TestNotification_DedupeIndex(t *testing.T) {
	db := setupTestDB(t)

	first := &Notification{RecipientID: 42, Topic: "t", Title: "x", DedupeKey: "k1", DeliveryStatus: DeliveryPending}
	if err := db.Create(first).Error; err != nil {
		t.Fatal(err)
	}
	dup := &Notification{RecipientID: 42, Topic: "t", Title: "x", DedupeKey: "k1", DeliveryStatus: DeliveryPending}
	if err := db.Create(dup).Error; err == nil {
		t.Error("相同收件人与 DedupeKey 应违反唯一索引")
	}

	// 绕过预检查直接插入冲突行时静默跳过
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&Notification{RecipientID: 42, Topic: "t", Title: "y", DedupeKey: "k1"}).Error; err != nil {
		t.Fatalf("on conflict: %v", err)
	}

	// 空 DedupeKey 不去重
	for i := 0; i < 2; i++ {
		if err := Notify(db, 42, NotificationInput{Topic: "t", Title: "plain"}); err != nil {
			t.Fatal(err)
		}
	}
	var n int64
	db.Model(&Notification{}).Where("recipient_id = ?", 42).Count(&n)
	if n != 3 {
		t.Errorf("notifications = %d, want 3", n)
	}
}

func TestSplitVAT(t *testing.T) {
	ht, vat := SplitVAT(1055, 550)
	if ht != 1000 || vat != 55 {
		t.Errorf("SplitVAT(1055, 550) = %d, %d", ht, vat)
	}
	if ht, vat := SplitVAT(999, 0); ht != 999 || vat != 0 {
		t.Errorf("zero rate = %d, %d", ht, vat)
	}
	if got := VATOnHT(1000, 2000); got != 200 {
		t.Errorf("VATOnHT = %d", got)
	}
}
