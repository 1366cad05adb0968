package equitytax

import (
	"sort"
	"sync"
)

// Repository is the persistence collaborator of the reconciliation engine.
// The engine reads a year's sales and the lots of the affected securities
// through it, and writes back synthesized lots and resolved sale-to-lot
// assignments. Schema and transaction management belong to implementations.
type Repository interface {
	// LoadSales returns all sales with a sale date in the given tax year.
	LoadSales(year int) ([]*Sale, error)
	// LoadLots returns all known lots for a security, regardless of year:
	// lots may predate the tax year by many years.
	LoadLots(ticker string) ([]*Lot, error)
	// SaveLot persists a new or updated lot.
	SaveLot(lot *Lot) error
	// SaveSale persists a sale's resolved lot assignment.
	SaveSale(sale *Sale) error
}

// MemoryRepository is an in-memory Repository. A reconciliation run mutates
// lot consumption state, so concurrent runs should each operate on their
// own Snapshot.
type MemoryRepository struct {
	mu    sync.Mutex
	lots  map[string][]*Lot // by ticker
	sales map[string]*Sale  // by id
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		lots:  make(map[string][]*Lot),
		sales: make(map[string]*Sale),
	}
}

// LoadSales returns the repository's sales for one tax year, ordered by
// sale date then id.
func (r *MemoryRepository) LoadSales(year int) ([]*Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Sale
	for _, s := range r.sales {
		if s.SaleDate.Year() == year {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SaleDate == out[j].SaleDate {
			return out[i].ID < out[j].ID
		}
		return out[i].SaleDate.Before(out[j].SaleDate)
	})
	return out, nil
}

// LoadLots returns the repository's lots for one security.
func (r *MemoryRepository) LoadLots(ticker string) ([]*Lot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Lot, len(r.lots[ticker]))
	copy(out, r.lots[ticker])
	return out, nil
}

// SaveLot inserts or replaces a lot.
func (r *MemoryRepository) SaveLot(lot *Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticker := lot.Security.Ticker
	for i, existing := range r.lots[ticker] {
		if existing.ID == lot.ID {
			r.lots[ticker][i] = lot
			return nil
		}
	}
	r.lots[ticker] = append(r.lots[ticker], lot)
	return nil
}

// SaveSale inserts or replaces a sale.
func (r *MemoryRepository) SaveSale(sale *Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sales[sale.ID] = sale
	return nil
}

// Lots returns every lot in the repository, ordered by ticker then
// acquisition date.
func (r *MemoryRepository) Lots() []*Lot {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Lot
	for _, ls := range r.lots {
		out = append(out, ls...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Security.Ticker == out[j].Security.Ticker {
			if out[i].Acquired == out[j].Acquired {
				return out[i].ID < out[j].ID
			}
			return out[i].Acquired.Before(out[j].Acquired)
		}
		return out[i].Security.Ticker < out[j].Security.Ticker
	})
	return out
}

// Sales returns every sale in the repository, ordered by sale date then id.
func (r *MemoryRepository) Sales() []*Sale {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SaleDate == out[j].SaleDate {
			return out[i].ID < out[j].ID
		}
		return out[i].SaleDate.Before(out[j].SaleDate)
	})
	return out
}

// Snapshot deep-copies the repository so a reconciliation run can consume
// lot state without affecting other runs. Write-back to durable storage is
// an explicit step owned by the caller after the run completes.
func (r *MemoryRepository) Snapshot() *MemoryRepository {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := NewMemoryRepository()
	for ticker, ls := range r.lots {
		for _, l := range ls {
			c := *l
			snap.lots[ticker] = append(snap.lots[ticker], &c)
		}
	}
	for id, s := range r.sales {
		c := *s
		snap.sales[id] = &c
	}
	return snap
}
