package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func sampleTrade() *domain.Trade {
	entry := time.Date(2025, 9, 15, 8, 27, 26, 0, time.UTC)
	return &domain.Trade{
		ID:           "trade-1",
		Date:         "2025-09-15",
		Symbol:       "AAPL",
		CompanyName:  "Apple Inc",
		EntryPrice:   11.83,
		EntryTime:    entry,
		ExitPrice:    12.84,
		ExitTime:     entry.Add(19 * time.Minute),
		Quantity:     1000,
		PnLDollar:    1010.00,
		PnLPercent:   8.54,
		DurationMin:  19,
		ScaleNumber:  "1/1",
		PositionType: domain.FullExit,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		APIKey:   "test-key",
		Endpoint: server.URL,
		Logger:   &mockLogger{},
	})
	require.NoError(t, err)
	return client, server
}

func TestAnalyzeTrade(t *testing.T) {
	var gotRequest request
	var gotHeaders http.Header

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		resp := map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "ANALYSIS: Solid momentum entry.\nLESSON: Let winners run.\nGRADE: B"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	analysis, err := client.AnalyzeTrade(context.Background(), sampleTrade(), "entered on a VWAP reclaim")
	require.NoError(t, err)

	assert.Equal(t, domain.TradeGrade("B"), analysis.Grade)
	assert.Contains(t, analysis.Analysis, "Solid momentum entry")

	assert.Equal(t, "test-key", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	require.Len(t, gotRequest.Messages, 1)
	prompt := gotRequest.Messages[0].Content
	assert.Contains(t, prompt, "Symbol: AAPL (Apple Inc)")
	assert.Contains(t, prompt, "Duration: 19 minutes")
	assert.Contains(t, prompt, "Trader's Commentary: entered on a VWAP reclaim")
}

func TestAnalyzeTradeHTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	})

	_, err := client.AnalyzeTrade(context.Background(), sampleTrade(), "")
	assert.ErrorIs(t, err, ports.ErrAnalysisFailed)
}

func TestAnalyzeSession(t *testing.T) {
	var prompt string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Messages[0].Content
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "Tighten stops on the second entry."}},
		})
	})

	winner := sampleTrade()
	loser := sampleTrade()
	loser.ID = "trade-2"
	loser.Symbol = "TSLA"
	loser.PnLDollar = -250.00
	loser.DurationMin = 45

	text, err := client.AnalyzeSession(context.Background(), []*domain.Trade{winner, loser})
	require.NoError(t, err)
	assert.Equal(t, "Tighten stops on the second entry.", text)

	assert.Contains(t, prompt, "Total Trades: 2")
	assert.Contains(t, prompt, "Total P&L: $760.00")
	assert.Contains(t, prompt, "Win Rate: 50.0%")
	assert.True(t, strings.Contains(prompt, "1. AAPL") && strings.Contains(prompt, "2. TSLA"))
}

func TestAnalyzeSessionEmpty(t *testing.T) {
	client, err := New(Config{APIKey: "k", Logger: &mockLogger{}})
	require.NoError(t, err)
	text, err := client.AnalyzeSession(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "No trades to analyze", text)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(Config{Logger: &mockLogger{}})
	assert.ErrorIs(t, err, ports.ErrConfigurationError)
}

func TestExtractGrade(t *testing.T) {
	tests := []struct {
		text string
		want domain.TradeGrade
	}{
		{"GRADE: A", "A"},
		{"ANALYSIS: ...\nGRADE: F because of revenge trading", "F"},
		{"no grade given", "C"},
	}
	for _, tt := range tests {
		if got := extractGrade(tt.text); got != tt.want {
			t.Errorf("extractGrade(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
