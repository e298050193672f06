package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AadSub19/AI-Trading-Journal/internal/domain"
	"github.com/AadSub19/AI-Trading-Journal/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.TradeRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/trading_journal.db" // Default path
	}

	// Create data directory if it doesn't exist (skip for in-memory DBs).
	if !strings.HasPrefix(dbPath, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
			cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("%w: failed to open database at '%s': %v", ports.ErrDBConnection, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("%w: failed to ping database at '%s': %v", ports.ErrDBConnection, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from
	// limiting connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Trade journal database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		symbol TEXT NOT NULL,
		company_name TEXT,
		entry_price REAL NOT NULL,
		entry_time TIMESTAMP,
		exit_price REAL NOT NULL,
		exit_time TIMESTAMP,
		quantity INTEGER NOT NULL,
		pnl_dollar REAL NOT NULL,
		pnl_percent REAL NOT NULL,
		duration_minutes INTEGER NOT NULL,
		scale_number TEXT NOT NULL,
		position_type TEXT NOT NULL,
		entry_reason TEXT DEFAULT '',
		exit_reason TEXT DEFAULT '',
		emotional_state TEXT DEFAULT '',
		market_context TEXT DEFAULT '',
		lessons_learned TEXT DEFAULT '',
		ai_analysis TEXT DEFAULT '',
		trade_grade TEXT DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol_date ON trades (symbol, date);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades (date);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing trade journal database")
		return r.db.Close()
	}
	return nil
}

// SaveTrade stores a new trade record.
func (r *Repository) SaveTrade(ctx context.Context, trade *domain.Trade) error {
	const query = `
	INSERT INTO trades (
		id, date, symbol, company_name, entry_price, entry_time, exit_price, exit_time,
		quantity, pnl_dollar, pnl_percent, duration_minutes, scale_number, position_type,
		entry_reason, exit_reason, emotional_state, market_context, lessons_learned,
		ai_analysis, trade_grade)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID, trade.Date, trade.Symbol, trade.CompanyName,
		trade.EntryPrice, trade.EntryTime, trade.ExitPrice, trade.ExitTime,
		trade.Quantity, trade.PnLDollar, trade.PnLPercent, trade.DurationMin,
		trade.ScaleNumber, string(trade.PositionType),
		trade.EntryReason, trade.ExitReason, trade.EmotionalState,
		trade.MarketContext, trade.LessonsLearned, trade.AIAnalysis, string(trade.Grade))
	if err != nil {
		return fmt.Errorf("%w: failed to insert trade for %s: %v", ports.ErrQueryFailed, trade.Symbol, err)
	}
	return nil
}

const selectColumns = `
	id, date, symbol, company_name, entry_price, entry_time, exit_price, exit_time,
	quantity, pnl_dollar, pnl_percent, duration_minutes, scale_number, position_type,
	entry_reason, exit_reason, emotional_state, market_context, lessons_learned,
	ai_analysis, trade_grade`

// FindBySymbol retrieves the most recent trades for a symbol, up to a limit.
func (r *Repository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error) {
	query := `SELECT` + selectColumns + `
	FROM trades WHERE symbol = ? ORDER BY exit_time DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query trades for %s: %v", ports.ErrQueryFailed, symbol, err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// FindByDate retrieves all trades entered on the given date (YYYY-MM-DD).
func (r *Repository) FindByDate(ctx context.Context, date string) ([]*domain.Trade, error) {
	query := `SELECT` + selectColumns + `
	FROM trades WHERE date = ? ORDER BY exit_time ASC`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query trades for %s: %v", ports.ErrQueryFailed, date, err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// UpdateScaleNumber rewrites the scale-leg label of a stored trade.
func (r *Repository) UpdateScaleNumber(ctx context.Context, id string, scaleNumber string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE trades SET scale_number = ? WHERE id = ?`, scaleNumber, id)
	if err != nil {
		return fmt.Errorf("%w: failed to update scale number for trade %s: %v", ports.ErrUpdateFailed, id, err)
	}
	return requireRow(result, id)
}

// UpdateAnalysis attaches trader commentary and the AI verdict to a stored trade.
func (r *Repository) UpdateAnalysis(ctx context.Context, id string, commentary string, analysis *domain.TradeAnalysis) error {
	const query = `UPDATE trades SET entry_reason = ?, ai_analysis = ?, trade_grade = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, commentary, analysis.Analysis, string(analysis.Grade), id)
	if err != nil {
		return fmt.Errorf("%w: failed to update analysis for trade %s: %v", ports.ErrUpdateFailed, id, err)
	}
	return requireRow(result, id)
}

// TotalPnL returns the sum of dollar P&L across all stored trades.
func (r *Repository) TotalPnL(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `SELECT SUM(pnl_dollar) FROM trades`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to sum pnl: %v", ports.ErrQueryFailed, err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}

func requireRow(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: could not determine rows affected for trade %s: %v", ports.ErrUpdateFailed, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: trade %s", ports.ErrNotFound, id)
	}
	return nil
}

func collectTrades(rows *sql.Rows) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration failed: %v", ports.ErrQueryFailed, err)
	}
	return trades, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanTrade.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(s scanner) (*domain.Trade, error) {
	var t domain.Trade
	var company, positionType, grade sql.NullString
	var entryTime, exitTime sql.NullTime
	err := s.Scan(
		&t.ID, &t.Date, &t.Symbol, &company,
		&t.EntryPrice, &entryTime, &t.ExitPrice, &exitTime,
		&t.Quantity, &t.PnLDollar, &t.PnLPercent, &t.DurationMin,
		&t.ScaleNumber, &positionType,
		&t.EntryReason, &t.ExitReason, &t.EmotionalState,
		&t.MarketContext, &t.LessonsLearned, &t.AIAnalysis, &grade)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to scan trade: %v", ports.ErrQueryFailed, err)
	}
	t.CompanyName = company.String
	t.PositionType = domain.PositionType(positionType.String)
	t.Grade = domain.TradeGrade(grade.String)
	if entryTime.Valid {
		t.EntryTime = entryTime.Time
	}
	if exitTime.Valid {
		t.ExitTime = exitTime.Time
	}
	return &t, nil
}
