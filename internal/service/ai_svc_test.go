package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/config"
	"pharmacy_erp/internal/model"
)

// fakeGenerator 记录最近一次提示词
type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (g *fakeGenerator) Model() string { return "fake-model" }

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (*Generation, error) {
	g.prompt = prompt
	if g.err != nil {
		return nil, g.err
	}
	return &Generation{Text: g.text, InputTokens: 120, OutputTokens: 80}, nil
}

func TestNewGeminiGenerator_NoAPIKey(t *testing.T) {
	assert.Nil(t, NewGeminiGenerator(config.AIConfig{}))

	g := NewGeminiGenerator(config.AIConfig{GeminiAPIKey: "key"})
	require.NotNil(t, g)
	assert.Equal(t, "gemini-2.5-flash", g.Model())
}

func TestAIService_Disabled(t *testing.T) {
	f := seedFixture(t)
	p := f.product(t, "VITC", 800, false)

	_, err := NewAIService(f.store, nil).GenerateDescription(context.Background(), f.pharmacy.ID, f.manager.ID, p.ID, &dto.GenerateDescriptionRequest{})
	assert.True(t, errors.Is(err, ErrAIDisabled))
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestAIService_GenerateDescription(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "AMOX1G", 900, true)

	gen := &fakeGenerator{text: "```text\nAmoxicilline 1 g, comprimés.\n```"}
	svc := NewAIService(f.store, gen)

	resp, err := svc.GenerateDescription(ctx, f.pharmacy.ID, f.manager.ID, p.ID, &dto.GenerateDescriptionRequest{Save: true})
	require.NoError(t, err)
	assert.Equal(t, "Amoxicilline 1 g, comprimés.", resp.Description)
	assert.True(t, resp.Saved)
	assert.Contains(t, gen.prompt, "French")
	assert.Contains(t, gen.prompt, "prescription-only")
	assert.Equal(t, resp.Description, reloadProduct(t, f.store, p.ID).OnlineDescription)

	gen.err = errors.New("quota exceeded")
	_, err = svc.GenerateDescription(ctx, f.pharmacy.ID, f.manager.ID, p.ID, &dto.GenerateDescriptionRequest{Language: "en"})
	assert.True(t, errors.Is(err, ErrAIGeneration))

	_, err = svc.GenerateDescription(ctx, f.pharmacy.ID, f.manager.ID, 9999, &dto.GenerateDescriptionRequest{})
	assert.True(t, errors.Is(err, ErrNotFound))

	stats, err := svc.Usage(ctx, f.pharmacy.ID, dto.PeriodQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCalls)
	assert.Equal(t, int64(1), stats.SuccessCount)
	assert.Equal(t, int64(1), stats.FailedCount)
	assert.Equal(t, int64(120), stats.TotalInputTokens)

	var failed model.AICallLog
	require.NoError(t, f.store.DB().Where("status = ?", model.AICallStatusFailed).First(&failed).Error)
	assert.Equal(t, "en", failed.Language)
	assert.Equal(t, "quota exceeded", failed.ErrorMsg)
}

func TestCleanGeneratedAndTruncate(t *testing.T) {
	assert.Equal(t, "ok", cleanGenerated("  ```ok```  "))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab", 3))
	assert.False(t, strings.Contains(descriptionPrompt(&model.Product{Name: "X"}, "English"), "prescription"))
}
