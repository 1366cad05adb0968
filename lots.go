package equitytax

import (
	"fmt"
	"sort"
)

// SourceSynthesized tags lots created by the reconciliation engine itself
// when no acquisition record could be found for a sale.
const SourceSynthesized = "synthesized"

// Lot is a tax-basis acquisition record: a block of shares acquired on one
// date at one cost per share. Sales consume shares from lots; a lot is never
// deleted, only exhausted.
type Lot struct {
	ID           string     `json:"id"`
	Equity       EquityType `json:"equity"`
	Security     Security   `json:"security"`
	Acquired     Date       `json:"acquired"`
	Shares       Quantity   `json:"shares"`
	CostPerShare Money      `json:"costPerShare"`
	Remaining    Quantity   `json:"remaining"`
	EventID      string     `json:"eventId,omitempty"` // empty for synthesized lots
	Source       string     `json:"source,omitempty"`
}

// CostBasis returns the total acquisition cost of the lot.
func (l *Lot) CostBasis() Money { return l.CostPerShare.Mul(l.Shares) }

// Synthesized reports whether the lot was fabricated by reconciliation
// rather than derived from a real acquisition event.
func (l *Lot) Synthesized() bool { return l.Source == SourceSynthesized }

// consume removes up to want shares from the lot and returns the shares
// actually taken together with their cost.
func (l *Lot) consume(want Quantity) (taken Quantity, cost Money) {
	taken = minQuantity(want, l.Remaining)
	l.Remaining = l.Remaining.Sub(taken)
	return taken, l.CostPerShare.Mul(taken)
}

// validate checks the standing lot invariant 0 <= remaining <= shares.
func (l *Lot) validate() error {
	if l.Remaining.IsNegative() || l.Remaining.GreaterThan(l.Shares) {
		return fmt.Errorf("lot %s: remaining %s outside [0, %s]", l.ID, l.Remaining, l.Shares)
	}
	return nil
}

// lots is a working set of lots for one security during a reconciliation run.
type lots []*Lot

// sortFIFO orders lots earliest-acquired-first, the IRS default basis method
// absent a specific-identification election. Ties break on id so a run is
// deterministic.
func (l lots) sortFIFO() {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Acquired == l[j].Acquired {
			return l[i].ID < l[j].ID
		}
		return l[i].Acquired.Before(l[j].Acquired)
	})
}

// candidates returns the lots a sale on the given date may consume: open
// lots acquired on or before the sale date, in FIFO order.
func (l lots) candidates(saleDate Date) lots {
	var out lots
	for _, lot := range l {
		if lot.Remaining.IsZero() || lot.Acquired.After(saleDate) {
			continue
		}
		out = append(out, lot)
	}
	out.sortFIFO()
	return out
}
