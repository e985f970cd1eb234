package model

// Models 需要 AutoMigrate 的普通表
func Models() []interface{} {
	return []interface{}{
		&NumberSequence{},
		// accounts
		&User{}, &Pharmacy{}, &PharmacyMember{},
		// hr
		&Employee{}, &Attendance{}, &LeaveRequest{}, &Payslip{},
		// stock
		&Category{}, &Product{}, &Supplier{}, &StockBatch{},
		&PurchaseOrder{}, &PurchaseOrderLine{},
		// sales
		&Sale{}, &SaleLine{}, &SaleLineAllocation{}, &Payment{},
		// finance
		&Invoice{}, &InvoiceLine{}, &InvoicePayment{}, &Expense{},
		// crm
		&Customer{}, &Prescription{}, &Appointment{}, &MedicalNote{},
		&LoyaltyAccount{}, &LoyaltyTransaction{},
		// communications
		&Conversation{}, &ConversationParticipant{}, &Message{}, &Notification{},
		// storefront
		&Cart{}, &CartItem{}, &OnlineOrder{}, &OnlineOrderItem{}, &AICallLog{},
	}
}

// PartitionedModels PostgreSQL 下由分区 SQL 建表的模型
func PartitionedModels() []interface{} {
	return []interface{}{&StockMovement{}, &ActivityLog{}}
}
