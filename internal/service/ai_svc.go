package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/config"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// ==================== 文本生成 ====================

// Generation 一次生成的结果与用量
type Generation struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// TextGenerator 文本生成模型
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
	Model() string
}

// GeminiGenerator 基于 genai SDK 调用 Gemini
type GeminiGenerator struct {
	apiKey string
	model  string
}

// NewGeminiGenerator 未配置 Key 时返回 nil
func NewGeminiGenerator(cfg config.AIConfig) *GeminiGenerator {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	m := cfg.Model
	if m == "" {
		m = "gemini-2.5-flash"
	}
	return &GeminiGenerator{apiKey: cfg.GeminiAPIKey, model: m}
}

func (g *GeminiGenerator) Model() string {
	return g.model
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*Generation, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("Gemini 初始化失败: %w", err)
	}
	defer client.Close()

	m := client.GenerativeModel(g.model)
	m.SetTemperature(0.4)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("AI 生成失败: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("AI 返回为空")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	out := &Generation{Text: sb.String()}
	if resp.UsageMetadata != nil {
		out.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return out, nil
}

// ==================== 服务 ====================

// AIService 网店商品描述生成
type AIService struct {
	store *repository.Store
	gen   TextGenerator
	log   *zap.Logger
}

// NewAIService gen 为 nil 时生成接口返回 ErrAIDisabled
func NewAIService(store *repository.Store, gen TextGenerator) *AIService {
	return &AIService{store: store, gen: gen, log: logger.Named("ai")}
}

var languageNames = map[string]string{
	"fr": "French",
	"en": "English",
	"es": "Spanish",
	"de": "German",
	"it": "Italian",
}

// GenerateDescription 为商品生成网店描述，Save 为 true 时写回商品
// 每次调用都记入 ai_call_logs
func (s *AIService) GenerateDescription(ctx context.Context, pharmacyID, userID, productID int64, req *dto.GenerateDescriptionRequest) (*dto.GenerateDescriptionResponse, error) {
	if s.gen == nil {
		return nil, ErrAIDisabled
	}
	p, err := s.store.Products.GetByID(ctx, pharmacyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	lang := req.Language
	if lang == "" {
		lang = "fr"
	}

	start := time.Now()
	gen, genErr := s.gen.Generate(ctx, descriptionPrompt(p, languageNames[lang]))

	callLog := &model.AICallLog{
		PharmacyID: pharmacyID,
		ProductID:  productID,
		UserID:     userID,
		CallType:   model.AICallTypeDescription,
		ModelName:  s.gen.Model(),
		Language:   lang,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     model.AICallStatusSuccess,
	}
	if genErr != nil {
		callLog.Status = model.AICallStatusFailed
		callLog.ErrorMsg = truncate(genErr.Error(), 1024)
	} else {
		callLog.InputTokens, callLog.OutputTokens = gen.InputTokens, gen.OutputTokens
	}
	if err := s.store.AICalls.Create(ctx, callLog); err != nil {
		s.log.Warn("记录 AI 调用失败", zap.Error(err))
	}
	if genErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIGeneration, genErr)
	}

	text := cleanGenerated(gen.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: 空结果", ErrAIGeneration)
	}

	resp := &dto.GenerateDescriptionResponse{Description: text}
	if req.Save {
		p.OnlineDescription = text
		p.Category = nil
		if err := s.store.Products.Update(ctx, p); err != nil {
			return nil, err
		}
		resp.Saved = true
	}
	return resp, nil
}

// Usage 药房 AI 用量
func (s *AIService) Usage(ctx context.Context, pharmacyID int64, q dto.PeriodQuery) (*repository.AIUsageReport, error) {
	return s.store.AICalls.Usage(ctx, pharmacyID, toDateRange(q))
}

func descriptionPrompt(p *model.Product, language string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `You write product descriptions for an online pharmacy storefront.
Write in %s, 80-150 words, plain text without markdown or headings.
Be factual and neutral. Do not make medical claims beyond the product's usual indication.
End with a short reminder to read the leaflet and ask the pharmacist for advice.

Product: %s
`, language, p.Name)
	if p.GenericName != "" {
		fmt.Fprintf(&sb, "Active ingredient: %s\n", p.GenericName)
	}
	if p.Form != "" {
		fmt.Fprintf(&sb, "Form: %s\n", p.Form)
	}
	if p.Dosage != "" {
		fmt.Fprintf(&sb, "Dosage: %s\n", p.Dosage)
	}
	if p.Manufacturer != "" {
		fmt.Fprintf(&sb, "Manufacturer: %s\n", p.Manufacturer)
	}
	if p.RequiresPrescription {
		sb.WriteString("This product is prescription-only; mention that a prescription is required.\n")
	}
	return sb.String()
}

// cleanGenerated 去掉模型偶尔包裹的 markdown 代码块
func cleanGenerated(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ==================== 错误定义 ====================

var (
	ErrAIDisabled   = fmt.Errorf("%w: 未配置 Gemini API Key", ErrInvalidState)
	ErrAIGeneration = errors.New("AI 生成失败")
)
