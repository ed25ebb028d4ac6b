package handlers

import (
	"context"

	"newscard-api/core/domain"
	"newscard-api/core/interfaces"
)

// mockCardService is a mock implementation of the card service
type mockCardService struct {
	previewFunc func(ctx context.Context, url string) (*domain.ArticleSummary, error)
	renderFunc  func(ctx context.Context, req interfaces.CardRequest) (*domain.Card, error)
	batchFunc   func(ctx context.Context, reqs []interfaces.CardRequest) []interfaces.BatchResult

	lastRequest interfaces.CardRequest
}

func (m *mockCardService) Preview(ctx context.Context, url string) (*domain.ArticleSummary, error) {
	if m.previewFunc != nil {
		return m.previewFunc(ctx, url)
	}
	return &domain.ArticleSummary{URL: url}, nil
}

func (m *mockCardService) Render(ctx context.Context, req interfaces.CardRequest) (*domain.Card, error) {
	m.lastRequest = req
	if m.renderFunc != nil {
		return m.renderFunc(ctx, req)
	}
	return &domain.Card{PNG: []byte("png"), Summary: domain.ArticleSummary{URL: req.URL}}, nil
}

func (m *mockCardService) RenderBatch(ctx context.Context, reqs []interfaces.CardRequest) []interfaces.BatchResult {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, reqs)
	}
	return nil
}

// mockDiagnosticsService is a mock implementation of the diagnostics service
type mockDiagnosticsService struct {
	report *interfaces.DiagnosticsReport
	err    error
}

func (m *mockDiagnosticsService) Diagnose(ctx context.Context, url string) (*interfaces.DiagnosticsReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	r := *m.report
	r.URL = url
	return &r, nil
}

func sampleSummary() *domain.ArticleSummary {
	images := []domain.ImageCandidate{
		{URL: "https://storage.ctinews.com/a.jpg", AltText: "a", Attribution: "（圖／翻攝）", Position: 0},
		{URL: "https://storage.ctinews.com/b.jpg", AltText: "b", Attribution: "b", Position: 1},
	}
	return &domain.ArticleSummary{
		URL:      "https://ctinews.com/news/items/1",
		Title:    "標題",
		Content:  "內文",
		Images:   images,
		Primary:  images[1],
		Strategy: domain.StrategyCharacteristic,
	}
}
