package storage

import (
	"database/sql"
	"fmt"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"portfolioAdvisor/internal/models"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Close() error
}

type Store struct{ db DB }

func OpenSQLite(path string) (DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_fk=1&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	return db, nil
}

// InitSchema creates the tables on first run. The CHECK constraints reject
// records whose action, confidence or status fall outside the closed sets.
func InitSchema(db DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS holdings (
		ticker TEXT PRIMARY KEY,
		shares REAL NOT NULL,
		cost_basis REAL NOT NULL,
		added_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS suggestions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker TEXT NOT NULL,
		action TEXT NOT NULL CHECK (action IN ('BUY','SELL')),
		confidence TEXT NOT NULL CHECK (confidence IN ('HIGH','MEDIUM','LOW')),
		target_price REAL NOT NULL,
		reasoning TEXT NOT NULL,
		created_at TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'OPEN' CHECK (status IN ('OPEN','HIT','EXPIRED')),
		entry_price REAL NOT NULL,
		resolved_price REAL,
		resolved_at TEXT,
		timeframe_days INTEGER NOT NULL DEFAULT 7
	);

	CREATE TABLE IF NOT EXISTS briefings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		content TEXT NOT NULL,
		portfolio_value REAL NOT NULL,
		daily_change_pct REAL,
		suggestion_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holding_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		briefing_id INTEGER NOT NULL,
		ticker TEXT NOT NULL,
		shares REAL NOT NULL,
		price REAL NOT NULL,
		value REAL NOT NULL,
		day_change_pct REAL NOT NULL,
		FOREIGN KEY (briefing_id) REFERENCES briefings(id)
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

// ── Holdings ─────────────────────────────────────────────────────────

// AddHolding inserts a position or merges into an existing one. The merge
// keeps the share count cumulative and recomputes the cost basis as the
// quantity-weighted average of the old and new lots, all inside one upsert.
func (s *Store) AddHolding(ticker string, shares, costBasis float64, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO holdings (ticker, shares, cost_basis, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			cost_basis = (holdings.cost_basis * holdings.shares + excluded.cost_basis * excluded.shares)
			             / (holdings.shares + excluded.shares),
			shares = holdings.shares + excluded.shares`,
		ticker, shares, costBasis, now.Format(time.RFC3339))
	return err
}

func (s *Store) Holdings() ([]models.Holding, error) {
	rows, err := s.db.Query(`SELECT ticker, shares, cost_basis, added_at FROM holdings ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Holding
	for rows.Next() {
		var h models.Holding
		var added string
		if err := rows.Scan(&h.Ticker, &h.Shares, &h.CostBasis, &added); err != nil {
			return nil, err
		}
		h.AddedAt, _ = time.Parse(time.RFC3339, added)
		out = append(out, h)
	}
	return out, rows.Err()
}

// RemoveHolding deletes a position and reports whether it existed.
func (s *Store) RemoveHolding(ticker string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM holdings WHERE ticker = ?`, ticker)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ── Suggestions ──────────────────────────────────────────────────────

func (s *Store) SaveSuggestion(sg *models.Suggestion) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO suggestions (ticker, action, confidence, target_price, reasoning,
		                         created_at, status, entry_price, timeframe_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sg.Ticker, string(sg.Action), string(sg.Confidence), sg.TargetPrice, sg.Reasoning,
		sg.CreatedAt.Format(time.RFC3339), string(sg.Status), sg.EntryPrice, sg.TimeframeDays)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	sg.ID = id
	return id, nil
}

func (s *Store) OpenSuggestions() ([]models.Suggestion, error) {
	return s.querySuggestions(`SELECT id, ticker, action, confidence, target_price, reasoning,
		created_at, status, entry_price, resolved_price, resolved_at, timeframe_days
		FROM suggestions WHERE status = 'OPEN' ORDER BY created_at DESC`)
}

func (s *Store) AllSuggestions() ([]models.Suggestion, error) {
	return s.querySuggestions(`SELECT id, ticker, action, confidence, target_price, reasoning,
		created_at, status, entry_price, resolved_price, resolved_at, timeframe_days
		FROM suggestions ORDER BY created_at DESC`)
}

// ResolveSuggestion moves a suggestion to a terminal status. Status,
// resolved price and resolved timestamp land in one UPDATE so a reader
// never observes one without the others.
func (s *Store) ResolveSuggestion(id int64, status models.Status, price float64, at time.Time) error {
	if !status.Terminal() {
		return fmt.Errorf("cannot resolve suggestion %d to non-terminal status %s", id, status)
	}
	_, err := s.db.Exec(
		`UPDATE suggestions SET status = ?, resolved_price = ?, resolved_at = ? WHERE id = ?`,
		string(status), price, at.Format(time.RFC3339), id)
	return err
}

func (s *Store) querySuggestions(query string, args ...any) ([]models.Suggestion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Suggestion
	for rows.Next() {
		var sg models.Suggestion
		var created string
		var resolvedPrice sql.NullFloat64
		var resolvedAt sql.NullString
		if err := rows.Scan(&sg.ID, &sg.Ticker, &sg.Action, &sg.Confidence, &sg.TargetPrice,
			&sg.Reasoning, &created, &sg.Status, &sg.EntryPrice,
			&resolvedPrice, &resolvedAt, &sg.TimeframeDays); err != nil {
			return nil, err
		}
		sg.CreatedAt, _ = time.Parse(time.RFC3339, created)
		if resolvedPrice.Valid {
			p := resolvedPrice.Float64
			sg.ResolvedPrice = &p
		}
		if resolvedAt.Valid {
			if t, err := time.Parse(time.RFC3339, resolvedAt.String); err == nil {
				sg.ResolvedAt = &t
			}
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

// ── Briefings & snapshots ────────────────────────────────────────────

func (s *Store) SaveBriefing(b *models.Briefing) (int64, error) {
	var change any
	if b.DailyChangePct != nil {
		change = *b.DailyChangePct
	}
	res, err := s.db.Exec(`
		INSERT INTO briefings (date, content, portfolio_value, daily_change_pct, suggestion_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.Date, b.Content, b.PortfolioValue, change, b.SuggestionCount, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	b.ID = id
	return id, nil
}

func (s *Store) SaveSnapshots(briefingID int64, snaps []models.HoldingSnapshot) error {
	for _, sn := range snaps {
		_, err := s.db.Exec(`
			INSERT INTO holding_snapshots (briefing_id, ticker, shares, price, value, day_change_pct)
			VALUES (?, ?, ?, ?, ?, ?)`,
			briefingID, sn.Ticker, sn.Shares, sn.Price, sn.Value, sn.DayChangePct)
		if err != nil {
			return err
		}
	}
	return nil
}

// LatestPortfolioValue returns the most recently recorded portfolio value,
// or nil if no briefing exists yet. It is the daily-change baseline.
func (s *Store) LatestPortfolioValue() (*float64, error) {
	var v float64
	err := s.db.QueryRow(
		`SELECT portfolio_value FROM briefings ORDER BY created_at DESC LIMIT 1`).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// BriefingHistory returns up to n briefings, oldest first, for the value
// history chart.
func (s *Store) BriefingHistory(n int) ([]models.Briefing, error) {
	rows, err := s.db.Query(`
		SELECT id, date, portfolio_value, daily_change_pct, suggestion_count, created_at
		FROM briefings ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Briefing
	for rows.Next() {
		var b models.Briefing
		var change sql.NullFloat64
		var created string
		if err := rows.Scan(&b.ID, &b.Date, &b.PortfolioValue, &change, &b.SuggestionCount, &created); err != nil {
			return nil, err
		}
		if change.Valid {
			c := change.Float64
			b.DailyChangePct = &c
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
