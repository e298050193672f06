// Package anthropic implements the ports.TradeAnalyzer interface against the
// Anthropic messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"
)

const (
	defaultEndpoint  = "https://api.anthropic.com/v1/messages"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 500
	apiVersion       = "2023-06-01"
)

// Config holds configuration for the analyst client.
type Config struct {
	APIKey    string
	Model     string
	Endpoint  string
	MaxTokens int
	Timeout   time.Duration
	Logger    ports.Logger
}

// Client calls the Anthropic messages API to grade and annotate trades.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     ports.Logger
}

// New creates an analyst client.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required", ports.ErrConfigurationError)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", ports.ErrConfigurationError)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     cfg.Logger,
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// AnalyzeTrade reviews one trade, optionally informed by the trader's own
// commentary, and returns the analysis text with a letter grade.
func (c *Client) AnalyzeTrade(ctx context.Context, trade *domain.Trade, commentary string) (*domain.TradeAnalysis, error) {
	text, err := c.complete(ctx, tradePrompt(trade, commentary), c.cfg.MaxTokens)
	if err != nil {
		return nil, err
	}
	return &domain.TradeAnalysis{
		Analysis: text,
		Grade:    extractGrade(text),
	}, nil
}

// AnalyzeSession reviews a whole session's trade list for patterns.
func (c *Client) AnalyzeSession(ctx context.Context, trades []*domain.Trade) (string, error) {
	if len(trades) == 0 {
		return "No trades to analyze", nil
	}
	return c.complete(ctx, sessionPrompt(trades), 400)
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(request{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrAnalysisFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrAnalysisFailed, err)
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrAnalystUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: http %d: %s", ports.ErrAnalysisFailed, resp.StatusCode, string(respBody))
	}

	var parsed response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: unexpected response body: %v", ports.ErrAnalysisFailed, err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: response contained no text content", ports.ErrAnalysisFailed)
}

func tradePrompt(trade *domain.Trade, commentary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this day trade for a trader who focuses on 7-10:30 AM momentum plays:\n\n")
	fmt.Fprintf(&b, "TRADE DETAILS:\n")
	fmt.Fprintf(&b, "Symbol: %s (%s)\n", trade.Symbol, trade.CompanyName)
	fmt.Fprintf(&b, "Entry: $%.2f at %s\n", trade.EntryPrice, formatClock(trade.EntryTime))
	fmt.Fprintf(&b, "Exit: $%.2f at %s\n", trade.ExitPrice, formatClock(trade.ExitTime))
	fmt.Fprintf(&b, "P&L: $%.2f (%+.1f%%)\n", trade.PnLDollar, trade.PnLPercent)
	fmt.Fprintf(&b, "Duration: %d minutes\n", trade.DurationMin)
	fmt.Fprintf(&b, "Position Type: %s\n", trade.PositionType)
	if commentary != "" {
		fmt.Fprintf(&b, "\nTrader's Commentary: %s\n", commentary)
	}
	b.WriteString(`
Provide analysis in this format:
ANALYSIS: [2-3 sentences about execution, setup quality, and market timing]
LESSON: [Key takeaway for improvement]
GRADE: [A/B/C/D/F based on process, not just outcome]

Focus on:
- Trade execution and timing
- Risk management
- Emotional factors if mentioned
- Specific improvements for next time
`)
	return b.String()
}

func sessionPrompt(trades []*domain.Trade) string {
	var totalPnL float64
	var totalDuration, wins int
	for _, t := range trades {
		totalPnL += t.PnLDollar
		totalDuration += t.DurationMin
		if t.PnLDollar > 0 {
			wins++
		}
	}
	winRate := float64(wins) / float64(len(trades)) * 100
	avgDuration := float64(totalDuration) / float64(len(trades))

	var b strings.Builder
	b.WriteString("Analyze this trading session for a day trader:\n\n")
	b.WriteString("SESSION SUMMARY:\n")
	fmt.Fprintf(&b, "Total Trades: %d\n", len(trades))
	fmt.Fprintf(&b, "Total P&L: $%.2f\n", totalPnL)
	fmt.Fprintf(&b, "Win Rate: %.1f%%\n", winRate)
	fmt.Fprintf(&b, "Avg Duration: %.1f minutes\n\n", avgDuration)
	b.WriteString("INDIVIDUAL TRADES:\n")
	for i, t := range trades {
		fmt.Fprintf(&b, "%d. %s: $%+.2f in %dmin\n", i+1, t.Symbol, t.PnLDollar, t.DurationMin)
	}
	b.WriteString(`
Provide session analysis focusing on:
1. Overall patterns and recurring issues
2. Risk management assessment
3. Three specific improvements for next session
4. Psychological/emotional patterns observed

Keep response concise but actionable.
`)
	return b.String()
}

// extractGrade pulls the letter grade out of the analysis text; "C" when the
// model did not follow the format.
func extractGrade(analysis string) domain.TradeGrade {
	for _, grade := range []string{"A", "B", "C", "D", "F"} {
		if strings.Contains(analysis, "GRADE: "+grade) {
			return domain.TradeGrade(grade)
		}
	}
	return "C"
}

func formatClock(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("15:04:05 MST")
}
