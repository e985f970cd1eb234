package model

// AICallLog AI调用日志
type AICallLog struct {
	BaseModel

	// 关联
	PharmacyID int64 `gorm:"index;not null;comment:药房ID" json:"pharmacy_id"`
	ProductID  int64 `gorm:"index;comment:商品ID" json:"product_id"`
	UserID     int64 `gorm:"comment:发起人" json:"user_id"`

	// 调用信息
	CallType  string `gorm:"size:32;index;comment:调用类型" json:"call_type"`
	ModelName string `gorm:"size:64;comment:模型名称" json:"model_name"`
	Language  string `gorm:"size:8" json:"language"`

	// 用量统计
	InputTokens  int `gorm:"default:0;comment:输入token数" json:"input_tokens"`
	OutputTokens int `gorm:"default:0;comment:输出token数" json:"output_tokens"`

	DurationMs int64 `gorm:"comment:耗时(毫秒)" json:"duration_ms"`

	// 状态
	Status   string `gorm:"size:32;index;default:success;comment:状态(success/failed)" json:"status"`
	ErrorMsg string `gorm:"size:1024;comment:错误信息" json:"error_msg"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}

// ==================== 调用类型常量 ====================

const (
	AICallTypeDescription = "description"
)

// ==================== 状态常量 ====================

const (
	AICallStatusSuccess = "success"
	AICallStatusFailed  = "failed"
)
