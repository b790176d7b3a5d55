// Package store mirrors price series into a SQLite database and serves them
// back as a catalog source.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"StockLens/internal/model"
	"StockLens/internal/series"
)

const dateLayout = "2006-01-02"

// SQLite persists daily price records keyed by (symbol, seq), where seq is
// the record's position at save time. Rows sharing a date are all kept and
// read back in that order. Prices are stored as decimal text so they
// round-trip exactly.
type SQLite struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens (or creates) the database and runs migrations.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLite{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", path).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prices (
			symbol TEXT    NOT NULL,
			seq    INTEGER NOT NULL,
			date   TEXT    NOT NULL,
			open   TEXT    NOT NULL,
			close  TEXT    NOT NULL,
			high   TEXT    NOT NULL,
			low    TEXT    NOT NULL,
			volume INTEGER NOT NULL,
			PRIMARY KEY (symbol, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS symbols (
			symbol      TEXT PRIMARY KEY,
			imported_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLite) Name() string { return "sqlite:" + s.path }

// Save replaces all stored records of one symbol. A symbol saved with no
// records is still listed by Symbols.
func (s *SQLite) Save(symbol string, records []model.PriceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM prices WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("clear %s: %w", symbol, err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO symbols (symbol, imported_at) VALUES (?, ?)`,
		symbol, time.Now().Unix()); err != nil {
		return fmt.Errorf("register %s: %w", symbol, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO prices
		(symbol, seq, date, open, close, high, low, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(symbol, i, r.Date.Format(dateLayout),
			r.Open.String(), r.Close.String(), r.High.String(), r.Low.String(), r.Volume); err != nil {
			return fmt.Errorf("insert %s %s: %w", symbol, r.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// Symbols lists stored symbols in lexical order.
func (s *SQLite) Symbols() ([]string, error) {
	rows, err := s.db.Query(`SELECT symbol FROM symbols ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// Load reads one symbol's records back into a series.
func (s *SQLite) Load(symbol string) (*series.Series, error) {
	rows, err := s.db.Query(`SELECT date, open, close, high, low, volume
		FROM prices WHERE symbol = ? ORDER BY date DESC, seq`, symbol)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", symbol, err)
	}
	defer rows.Close()

	var records []model.PriceRecord
	line := 0
	for rows.Next() {
		line++
		var date, open, closePrice, high, low string
		var rec model.PriceRecord
		if err := rows.Scan(&date, &open, &closePrice, &high, &low, &rec.Volume); err != nil {
			return nil, err
		}
		if rec.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, &series.ParseError{Symbol: symbol, Line: line, Field: series.ColDate, Value: date, Err: err}
		}
		for _, p := range []struct {
			col string
			raw string
			dst *decimal.Decimal
		}{
			{series.ColOpen, open, &rec.Open},
			{series.ColClose, closePrice, &rec.Close},
			{series.ColHigh, high, &rec.High},
			{series.ColLow, low, &rec.Low},
		} {
			if *p.dst, err = decimal.NewFromString(p.raw); err != nil {
				return nil, &series.ParseError{Symbol: symbol, Line: line, Field: p.col, Value: p.raw, Err: err}
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return series.New(symbol, records), nil
}

func (s *SQLite) Close() error {
	log.Info().Str("path", s.path).Msg("closing sqlite store")
	return s.db.Close()
}
