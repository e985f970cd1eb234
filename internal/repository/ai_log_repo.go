package repository

import (
	"context"

	"gorm.io/gorm"

	"pharmacy_erp/internal/model"
)

// AICallLogRepository 记录 Gemini 调用并按药房汇总用量
type AICallLogRepository interface {
	Create(ctx context.Context, log *model.AICallLog) error
	Usage(ctx context.Context, pharmacyID int64, period DateRange) (*AIUsageReport, error)
}

// AIUsageReport 药房 AI 用量报表
type AIUsageReport struct {
	AIUsageStats
	ByLanguage []LanguageUsage `json:"by_language"`
	Daily      []DailyUsage    `json:"daily"`
}

type AIUsageStats struct {
	TotalCalls        int64   `json:"total_calls"`
	SuccessCount      int64   `json:"success_count"`
	FailedCount       int64   `json:"failed_count"`
	TotalInputTokens  int64   `json:"total_input_tokens"`
	TotalOutputTokens int64   `json:"total_output_tokens"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`
}

// LanguageUsage 按生成语言分组
type LanguageUsage struct {
	Language string `json:"language"`
	Calls    int64  `json:"calls"`
	Tokens   int64  `json:"tokens"`
}

// DailyUsage Date 为 YYYY-MM-DD
type DailyUsage struct {
	Date   string `json:"date"`
	Calls  int64  `json:"calls"`
	Tokens int64  `json:"tokens"`
}

type aiCallLogRepo struct {
	db *gorm.DB
}

func NewAICallLogRepository(db *gorm.DB) AICallLogRepository {
	return &aiCallLogRepo{db: db}
}

func (r *aiCallLogRepo) Create(ctx context.Context, log *model.AICallLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *aiCallLogRepo) scope(ctx context.Context, pharmacyID int64, period DateRange) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.AICallLog{}).Where("pharmacy_id = ?", pharmacyID)
	return period.apply(q, "created_at")
}

// Usage 汇总、语言分布与逐日曲线，period 两端为空时不限
func (r *aiCallLogRepo) Usage(ctx context.Context, pharmacyID int64, period DateRange) (*AIUsageReport, error) {
	report := &AIUsageReport{
		ByLanguage: []LanguageUsage{},
		Daily:      []DailyUsage{},
	}

	err := r.scope(ctx, pharmacyID, period).
		Select(`COUNT(*) AS total_calls,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS success_count,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS failed_count,
			COALESCE(SUM(input_tokens), 0) AS total_input_tokens,
			COALESCE(SUM(output_tokens), 0) AS total_output_tokens,
			COALESCE(AVG(duration_ms), 0) AS avg_duration_ms`,
			model.AICallStatusSuccess, model.AICallStatusFailed).
		Scan(&report.AIUsageStats).Error
	if err != nil {
		return nil, err
	}
	if report.TotalCalls == 0 {
		return report, nil
	}

	err = r.scope(ctx, pharmacyID, period).
		Select("language, COUNT(*) AS calls, COALESCE(SUM(input_tokens + output_tokens), 0) AS tokens").
		Group("language").
		Order("calls DESC, language").
		Scan(&report.ByLanguage).Error
	if err != nil {
		return nil, err
	}

	err = r.scope(ctx, pharmacyID, period).
		Select("DATE(created_at) AS date, COUNT(*) AS calls, COALESCE(SUM(input_tokens + output_tokens), 0) AS tokens").
		Group("DATE(created_at)").
		Order("date").
		Scan(&report.Daily).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}
