package equitytax

import (
	"fmt"

	"github.com/google/uuid"
)

// LotConsumption records shares taken from one lot to satisfy a sale.
type LotConsumption struct {
	LotID    string
	Acquired Date
	Shares   Quantity
	Cost     Money
	LongTerm bool // held more than one year at the time of sale
}

// MatchedSale is a sale resolved against its funding lots, with the
// realized gain or loss that follows.
type MatchedSale struct {
	Sale      *Sale
	Consumed  []LotConsumption
	CostBasis Money
	Proceeds  Money
	GainLoss  Money
}

// ReconcileResult is what a reconciliation run produces: every sale of the
// year matched and priced, split gain totals ready for the tax engine, and
// the gap report describing every data deficiency encountered.
type ReconcileResult struct {
	Year          int
	Sales         []*MatchedSale
	Gaps          *DataGapReport
	ShortTermGain Money
	LongTermGain  Money
}

// RealizedGain returns the combined realized gain or loss for the year.
func (r *ReconcileResult) RealizedGain() Money {
	return r.ShortTermGain.Add(r.LongTermGain)
}

// Reconciler matches one tax year's sales against the known lots. A run is
// strictly sequential: it loads a snapshot of the lots once, consumes them
// in memory, and never blocks on I/O inside the matching loop.
type Reconciler struct {
	repo   Repository
	policy BasisPolicy
	prices map[string]*PriceHistory
}

// NewReconciler creates a reconciler over the given repository, with the
// default suspicious-basis policy and no price history.
func NewReconciler(repo Repository) *Reconciler {
	return &Reconciler{
		repo:   repo,
		policy: RangeBasisPolicy(0.5),
		prices: make(map[string]*PriceHistory),
	}
}

// WithBasisPolicy replaces the suspicious-basis heuristic.
func (r *Reconciler) WithBasisPolicy(policy BasisPolicy) *Reconciler {
	r.policy = policy
	return r
}

// WithPrices registers price history used by the suspicious-basis policy.
func (r *Reconciler) WithPrices(hists ...*PriceHistory) *Reconciler {
	for _, h := range hists {
		r.prices[h.Ticker] = h
	}
	return r
}

// Reconcile matches every sale of the tax year to an owning lot, computes
// realized gain/loss per sale, and reports every data deficiency found.
// All non-fatal conditions are recovered locally: the run always completes
// and returns a result, the report just says how much to trust it.
func (r *Reconciler) Reconcile(year int) (*ReconcileResult, error) {
	sales, err := r.repo.LoadSales(year)
	if err != nil {
		return nil, fmt.Errorf("could not load sales for %d: %w", year, err)
	}

	result := &ReconcileResult{Year: year, Sales: []*MatchedSale{}}
	analyzer := newGapAnalyzer()
	open := make(map[string]lots) // working lot set per ticker, loaded once

	for _, sale := range sales {
		if _, loaded := open[sale.Security.Ticker]; !loaded {
			ls, err := r.repo.LoadLots(sale.Security.Ticker)
			if err != nil {
				return nil, fmt.Errorf("could not load lots for %s: %w", sale.Security.Ticker, err)
			}
			open[sale.Security.Ticker] = ls
		}

		matched, err := r.match(sale, open, analyzer)
		if err != nil {
			return nil, err
		}

		r.classify(matched, analyzer)
		result.Sales = append(result.Sales, matched)

		for _, c := range matched.Consumed {
			gain := sale.ProceedsPerShare.Mul(c.Shares).Sub(c.Cost)
			if c.LongTerm {
				result.LongTermGain = result.LongTermGain.Add(gain)
			} else {
				result.ShortTermGain = result.ShortTermGain.Add(gain)
			}
		}
		if len(matched.Consumed) == 0 {
			// pass-through aggregates have no lot trail; their holding
			// period is unknown, so their gain counts as short-term
			result.ShortTermGain = result.ShortTermGain.Add(matched.GainLoss)
		}

		if err := r.repo.SaveSale(sale); err != nil {
			return nil, fmt.Errorf("could not save sale %s: %w", sale.ID, err)
		}
	}

	result.Gaps = analyzer.report()
	return result, nil
}

// match resolves one sale against the working lot set, synthesizing a lot
// for any shares no acquisition record covers.
func (r *Reconciler) match(sale *Sale, open map[string]lots, analyzer *gapAnalyzer) (*MatchedSale, error) {
	matched := &MatchedSale{Sale: sale, Proceeds: sale.Proceeds()}

	// Broker pass-through aggregate: there is no acquisition trail to match
	// against, the broker-reported basis is all there is.
	if sale.Acquired.IsVarious() {
		analyzer.add(gapSignal{
			category: GapPassthroughSale,
			severity: SeverityInfo,
			ticker:   sale.Security.Ticker,
		})
		matched.CostBasis = sale.ReportedBasis
		matched.GainLoss = matched.Proceeds.Sub(matched.CostBasis)
		return matched, nil
	}

	remaining := sale.Shares
	for _, lot := range open[sale.Security.Ticker].candidates(sale.SaleDate) {
		if remaining.IsZero() {
			break
		}
		taken, cost := lot.consume(remaining)
		if err := lot.validate(); err != nil {
			return nil, err
		}
		if err := r.repo.SaveLot(lot); err != nil {
			return nil, fmt.Errorf("could not save lot %s: %w", lot.ID, err)
		}
		remaining = remaining.Sub(taken)
		matched.CostBasis = matched.CostBasis.Add(cost)
		matched.Consumed = append(matched.Consumed, LotConsumption{
			LotID:    lot.ID,
			Acquired: lot.Acquired,
			Shares:   taken,
			Cost:     cost,
			LongTerm: longTerm(lot.Acquired, sale.SaleDate),
		})
	}

	// Shares no lot covers: synthesize a stand-in lot from the sale's own
	// reported acquisition date and basis, already fully consumed.
	if remaining.IsPositive() {
		lot := r.synthesize(sale, remaining)
		open[sale.Security.Ticker] = append(open[sale.Security.Ticker], lot)
		if err := r.repo.SaveLot(lot); err != nil {
			return nil, fmt.Errorf("could not save synthesized lot for sale %s: %w", sale.ID, err)
		}

		cost := lot.CostPerShare.Mul(remaining)
		matched.CostBasis = matched.CostBasis.Add(cost)
		matched.Consumed = append(matched.Consumed, LotConsumption{
			LotID:    lot.ID,
			Acquired: lot.Acquired,
			Shares:   remaining,
			Cost:     cost,
			LongTerm: longTerm(lot.Acquired, sale.SaleDate),
		})

		analyzer.add(gapSignal{
			category: GapAutoCreatedLot,
			severity: SeverityWarning,
			ticker:   sale.Security.Ticker,
			basis:    lot.CostBasis(),
			acquired: lot.Acquired,
			action:   "obtain the original acquisition confirmation from the broker",
		})
	}

	if len(matched.Consumed) > 0 {
		sale.LotID = matched.Consumed[0].LotID
	}
	matched.GainLoss = matched.Proceeds.Sub(matched.CostBasis)
	return matched, nil
}

// synthesize fabricates the best-effort lot standing in for a missing
// acquisition record.
func (r *Reconciler) synthesize(sale *Sale, shares Quantity) *Lot {
	acquired := sale.Acquired.Date()
	if acquired.IsZero() {
		// no reported acquisition date at all, fall back to the sale date
		acquired = sale.SaleDate
	}
	return &Lot{
		ID:           uuid.NewString(),
		Equity:       sale.Equity,
		Security:     sale.Security,
		Acquired:     acquired,
		Shares:       shares,
		CostPerShare: sale.ReportedBasisPerShare(),
		Remaining:    Q(0), // fully consumed by this sale
		Source:       SourceSynthesized,
	}
}

// classify runs the per-sale deficiency checks that do not depend on lot
// consumption: zero basis, missing form data, implausible broker basis.
func (r *Reconciler) classify(matched *MatchedSale, analyzer *gapAnalyzer) {
	sale := matched.Sale
	ticker := sale.Security.Ticker

	if matched.CostBasis.IsZero() && !matched.Proceeds.IsZero() {
		analyzer.add(gapSignal{
			category: GapZeroBasis,
			severity: SeverityWarning,
			ticker:   ticker,
			action:   "supply the acquisition cost for this sale",
		})
	}

	// Without the companion IRS form, the discount and FMV adjustments of
	// an ESPP or ISO disposition cannot be computed; the gain stands but
	// must not be filed as-is.
	switch {
	case sale.Equity == ESPP && !sale.Form3922:
		analyzer.add(gapSignal{
			category: GapMissingForm3922,
			severity: SeverityError,
			ticker:   ticker,
			document: "Form 3922",
			action:   "request Form 3922 from the employer's stock plan administrator",
		})
	case sale.Equity == ISO && !sale.Form3921:
		analyzer.add(gapSignal{
			category: GapMissingForm3921,
			severity: SeverityError,
			ticker:   ticker,
			document: "Form 3921",
			action:   "request Form 3921 from the employer's stock plan administrator",
		})
	}

	if r.policy != nil && !sale.Shares.IsZero() {
		// Both bases matter: the resolved one feeds the gain, the
		// broker-reported one is what the filer would copy from the 1099-B.
		hist := r.prices[ticker]
		if r.policy(sale, matched.CostBasis.Div(sale.Shares), hist) ||
			r.policy(sale, sale.ReportedBasisPerShare(), hist) {
			analyzer.add(gapSignal{
				category: GapSuspiciousBasis,
				severity: SeverityWarning,
				ticker:   ticker,
				action:   "verify the broker-reported basis against trade confirmations",
			})
		}
	}
}

// longTerm reports whether shares acquired on acquired and sold on sold
// qualify for long-term treatment (held more than one year).
func longTerm(acquired, sold Date) bool {
	return acquired.AddYears(1).Before(sold)
}
