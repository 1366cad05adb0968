// Package store persists equity events, lots and sales in a local SQLite
// database and exposes them through the equitytax.Repository contract.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ghoyle/equitytax"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	type           TEXT NOT NULL,
	equity         TEXT NOT NULL,
	ticker         TEXT NOT NULL,
	name           TEXT NOT NULL DEFAULT '',
	date           TEXT NOT NULL,
	shares         TEXT NOT NULL,
	price          TEXT NOT NULL,
	source         TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS lots (
	id             TEXT PRIMARY KEY,
	equity         TEXT NOT NULL,
	ticker         TEXT NOT NULL,
	name           TEXT NOT NULL DEFAULT '',
	acquired       TEXT NOT NULL,
	shares         TEXT NOT NULL,
	cost_per_share TEXT NOT NULL,
	remaining      TEXT NOT NULL,
	event_id       TEXT,
	source         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_lots_ticker ON lots(ticker);
CREATE TABLE IF NOT EXISTS sales (
	id              TEXT PRIMARY KEY,
	lot_id          TEXT NOT NULL DEFAULT '',
	ticker          TEXT NOT NULL,
	name            TEXT NOT NULL DEFAULT '',
	equity          TEXT NOT NULL,
	acquired        TEXT NOT NULL DEFAULT '',
	sale_date       TEXT NOT NULL,
	sale_year       INTEGER NOT NULL,
	shares          TEXT NOT NULL,
	proceeds        TEXT NOT NULL,
	reported_basis  TEXT NOT NULL,
	basis_reported  INTEGER NOT NULL DEFAULT 0,
	form_3921       INTEGER NOT NULL DEFAULT 0,
	form_3922       INTEGER NOT NULL DEFAULT 0,
	source          TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sales_year ON sales(sale_year);
`

// Store is a SQLite-backed equitytax.Repository. Decimal amounts are
// stored as text to keep them exact.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
// The special path ":memory:" opens a throwaway in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, log: log.With().Str("component", "store").Logger()}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveEvent inserts an equity event and the lot it opens. Events are
// immutable: inserting the same id twice is a no-op by upstream contract
// (same id means same event).
func (s *Store) SaveEvent(ev *equitytax.EquityEvent) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO events (id, type, equity, ticker, name, date, shares, price, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, string(ev.Type), string(ev.Equity), ev.Security.Ticker, ev.Security.Name,
		ev.Date.String(), ev.Shares.String(), ev.Price.Decimal().String(), ev.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save event %s: %w", ev.ID, err)
	}
	if err := s.SaveLot(equitytax.NewLotFromEvent(ev)); err != nil {
		return err
	}
	s.log.Debug().Str("event", ev.ID).Str("ticker", ev.Security.Ticker).Msg("event saved")
	return nil
}

// LoadEvents returns all stored events, oldest first.
func (s *Store) LoadEvents() ([]*equitytax.EquityEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, type, equity, ticker, name, date, shares, price, source
		FROM events ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	var events []*equitytax.EquityEvent
	for rows.Next() {
		var id, typ, equity, ticker, name, date, shares, price, source string
		if err := rows.Scan(&id, &typ, &equity, &ticker, &name, &date, &shares, &price, &source); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev := &equitytax.EquityEvent{
			ID:       id,
			Type:     equitytax.EventType(typ),
			Equity:   equitytax.EquityType(equity),
			Security: equitytax.Security{Ticker: ticker, Name: name},
			Source:   source,
		}
		if ev.Date, err = equitytax.ParseDate(date); err != nil {
			return nil, fmt.Errorf("event %s: %w", id, err)
		}
		if ev.Shares, err = parseQuantity(shares); err != nil {
			return nil, fmt.Errorf("event %s: %w", id, err)
		}
		if ev.Price, err = parseMoney(price); err != nil {
			return nil, fmt.Errorf("event %s: %w", id, err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// SaveLot inserts or updates a lot.
func (s *Store) SaveLot(lot *equitytax.Lot) error {
	_, err := s.db.Exec(`
		INSERT INTO lots (id, equity, ticker, name, acquired, shares, cost_per_share, remaining, event_id, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET remaining = excluded.remaining`,
		lot.ID, string(lot.Equity), lot.Security.Ticker, lot.Security.Name,
		lot.Acquired.String(), lot.Shares.String(), lot.CostPerShare.Decimal().String(),
		lot.Remaining.String(), nullString(lot.EventID), lot.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save lot %s: %w", lot.ID, err)
	}
	return nil
}

// LoadLots returns every lot for a security, regardless of year.
func (s *Store) LoadLots(ticker string) ([]*equitytax.Lot, error) {
	rows, err := s.db.Query(`
		SELECT id, equity, ticker, name, acquired, shares, cost_per_share, remaining, event_id, source
		FROM lots WHERE ticker = ? ORDER BY acquired, id`, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load lots for %s: %w", ticker, err)
	}
	defer rows.Close()

	var lots []*equitytax.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// SaveSale inserts or updates a sale, in particular its resolved lot id.
func (s *Store) SaveSale(sale *equitytax.Sale) error {
	_, err := s.db.Exec(`
		INSERT INTO sales (id, lot_id, ticker, name, equity, acquired, sale_date, sale_year,
			shares, proceeds, reported_basis, basis_reported, form_3921, form_3922, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET lot_id = excluded.lot_id`,
		sale.ID, sale.LotID, sale.Security.Ticker, sale.Security.Name, string(sale.Equity),
		sale.Acquired.String(), sale.SaleDate.String(), sale.SaleDate.Year(),
		sale.Shares.String(), sale.ProceedsPerShare.Decimal().String(),
		sale.ReportedBasis.Decimal().String(),
		boolInt(sale.BasisReported), boolInt(sale.Form3921), boolInt(sale.Form3922), sale.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save sale %s: %w", sale.ID, err)
	}
	return nil
}

// LoadSales returns all sales with a sale date in the given tax year,
// ordered by sale date then id.
func (s *Store) LoadSales(year int) ([]*equitytax.Sale, error) {
	rows, err := s.db.Query(`
		SELECT id, lot_id, ticker, name, equity, acquired, sale_date,
			shares, proceeds, reported_basis, basis_reported, form_3921, form_3922, source
		FROM sales WHERE sale_year = ? ORDER BY sale_date, id`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for %d: %w", year, err)
	}
	defer rows.Close()

	var sales []*equitytax.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

var _ equitytax.Repository = (*Store)(nil)

func scanLot(rows *sql.Rows) (*equitytax.Lot, error) {
	var id, equity, ticker, name, acquired, shares, cost, remaining, source string
	var eventID sql.NullString
	if err := rows.Scan(&id, &equity, &ticker, &name, &acquired, &shares, &cost, &remaining, &eventID, &source); err != nil {
		return nil, fmt.Errorf("failed to scan lot: %w", err)
	}

	lot := &equitytax.Lot{
		ID:       id,
		Equity:   equitytax.EquityType(equity),
		Security: equitytax.Security{Ticker: ticker, Name: name},
		EventID:  eventID.String,
		Source:   source,
	}
	var err error
	if lot.Acquired, err = equitytax.ParseDate(acquired); err != nil {
		return nil, fmt.Errorf("lot %s: %w", id, err)
	}
	if lot.Shares, err = parseQuantity(shares); err != nil {
		return nil, fmt.Errorf("lot %s: %w", id, err)
	}
	if lot.CostPerShare, err = parseMoney(cost); err != nil {
		return nil, fmt.Errorf("lot %s: %w", id, err)
	}
	if lot.Remaining, err = parseQuantity(remaining); err != nil {
		return nil, fmt.Errorf("lot %s: %w", id, err)
	}
	return lot, nil
}

func scanSale(rows *sql.Rows) (*equitytax.Sale, error) {
	var id, lotID, ticker, name, equity, acquired, saleDate, shares, proceeds, basis, source string
	var basisReported, form3921, form3922 int
	if err := rows.Scan(&id, &lotID, &ticker, &name, &equity, &acquired, &saleDate,
		&shares, &proceeds, &basis, &basisReported, &form3921, &form3922, &source); err != nil {
		return nil, fmt.Errorf("failed to scan sale: %w", err)
	}

	sale := &equitytax.Sale{
		ID:            id,
		LotID:         lotID,
		Security:      equitytax.Security{Ticker: ticker, Name: name},
		Equity:        equitytax.EquityType(equity),
		BasisReported: basisReported != 0,
		Form3921:      form3921 != 0,
		Form3922:      form3922 != 0,
		Source:        source,
	}
	var err error
	if sale.Acquired, err = equitytax.ParseAcquisition(acquired); err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, err)
	}
	if sale.SaleDate, err = equitytax.ParseDate(saleDate); err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, err)
	}
	if sale.Shares, err = parseQuantity(shares); err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, err)
	}
	if sale.ProceedsPerShare, err = parseMoney(proceeds); err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, err)
	}
	if sale.ReportedBasis, err = parseMoney(basis); err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, err)
	}
	return sale, nil
}

func parseMoney(s string) (equitytax.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return equitytax.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return equitytax.USD(d), nil
}

func parseQuantity(s string) (equitytax.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return equitytax.Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return equitytax.Q(d), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
