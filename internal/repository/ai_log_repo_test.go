package repository

import (
	"context"
	"testing"
	"time"

	"pharmacy_erp/internal/model"
)

func TestAICallLogRepo_Create(t *testing.T) {
	repo := NewAICallLogRepository(setupTestDB(t))

	log := &model.AICallLog{
		PharmacyID:   1,
		ProductID:    100,
		CallType:     model.AICallTypeDescription,
		ModelName:    "gemini-2.0-flash",
		Language:     "fr",
		InputTokens:  500,
		OutputTokens: 200,
		DurationMs:   1500,
		Status:       model.AICallStatusSuccess,
	}
	if err := repo.Create(context.Background(), log); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if log.ID == 0 {
		t.Error("ID 应该被自动分配")
	}
}

func TestAICallLogRepo_Usage(t *testing.T) {
	repo := NewAICallLogRepository(setupTestDB(t))
	ctx := context.Background()

	logs := []*model.AICallLog{
		{PharmacyID: 1, ProductID: 1, Language: "fr", InputTokens: 100, OutputTokens: 50, DurationMs: 1000, Status: model.AICallStatusSuccess},
		{PharmacyID: 1, ProductID: 2, Language: "fr", InputTokens: 200, OutputTokens: 100, DurationMs: 3000, Status: model.AICallStatusSuccess},
		{PharmacyID: 1, ProductID: 3, Language: "en", Status: model.AICallStatusFailed},
		{PharmacyID: 2, ProductID: 4, Language: "fr", InputTokens: 500, Status: model.AICallStatusSuccess},
	}
	for _, log := range logs {
		log.CallType = model.AICallTypeDescription
		if err := repo.Create(ctx, log); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	report, err := repo.Usage(ctx, 1, DateRange{})
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if report.TotalCalls != 3 || report.SuccessCount != 2 || report.FailedCount != 1 {
		t.Errorf("calls = %d/%d/%d, want 3/2/1", report.TotalCalls, report.SuccessCount, report.FailedCount)
	}
	if report.TotalInputTokens != 300 || report.TotalOutputTokens != 150 {
		t.Errorf("tokens = %d in / %d out, want 300 / 150", report.TotalInputTokens, report.TotalOutputTokens)
	}

	if len(report.ByLanguage) != 2 {
		t.Fatalf("ByLanguage len = %d, want 2", len(report.ByLanguage))
	}
	if fr := report.ByLanguage[0]; fr.Language != "fr" || fr.Calls != 2 || fr.Tokens != 450 {
		t.Errorf("ByLanguage[0] = %+v, want fr/2/450", fr)
	}

	var daily int64
	for _, d := range report.Daily {
		daily += d.Calls
	}
	if daily != 3 {
		t.Errorf("daily calls = %d, want 3", daily)
	}
}

func TestAICallLogRepo_UsageOutsidePeriod(t *testing.T) {
	repo := NewAICallLogRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &model.AICallLog{PharmacyID: 7, InputTokens: 10, Status: model.AICallStatusSuccess}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	from := time.Now().Add(time.Hour)
	report, err := repo.Usage(ctx, 7, DateRange{From: &from})
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if report.TotalCalls != 0 {
		t.Errorf("TotalCalls = %d, want 0", report.TotalCalls)
	}
	if report.ByLanguage == nil || report.Daily == nil {
		t.Error("空报表的明细应为空数组")
	}
}
