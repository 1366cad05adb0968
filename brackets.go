package equitytax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one progressive rate step: income up to Upper is taxed at
// Rate. The final bracket of a schedule is unbounded and taxes everything
// above the last finite threshold.
type Bracket struct {
	Upper     Money
	Rate      decimal.Decimal
	Unbounded bool
}

// Schedule is an ordered list of brackets, strictly increasing in upper
// bound and ending with exactly one unbounded bracket. The invariant is
// validated at construction, never at computation time.
type Schedule []Bracket

// NewSchedule validates and builds a bracket schedule.
func NewSchedule(brackets ...Bracket) (Schedule, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("schedule must have at least one bracket")
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		if b.Unbounded != last {
			return nil, fmt.Errorf("bracket %d: exactly the final bracket must be unbounded", i)
		}
		if !last && i > 0 && !b.Upper.GreaterThan(brackets[i-1].Upper) {
			return nil, fmt.Errorf("bracket %d: upper bound %s not above previous %s", i, b.Upper, brackets[i-1].Upper)
		}
	}
	return Schedule(brackets), nil
}

// Tax walks the brackets in order and returns the progressive tax on the
// given income: the slice of income falling between the previous and the
// current upper bound is taxed at the current rate. Exact decimal
// arithmetic throughout.
func (s Schedule) Tax(income Money) Money {
	if !income.IsPositive() {
		return USD(0)
	}

	tax := USD(0)
	floor := USD(0) // income already taxed by lower brackets
	for _, b := range s {
		if b.Unbounded || income.LessThanOrEqual(b.Upper) {
			return tax.Add(income.Sub(floor).MulRate(b.Rate))
		}
		tax = tax.Add(b.Upper.Sub(floor).MulRate(b.Rate))
		floor = b.Upper
	}
	return tax // unreachable for a valid schedule
}

// StackedTax taxes a gain stacked on top of other income: the brackets are
// evaluated against income plus gain, but only the gain slice is taxed.
// This is how long-term gains ride the LTCG schedule above ordinary income.
func (s Schedule) StackedTax(income, gain Money) Money {
	if !gain.IsPositive() {
		return USD(0)
	}
	return s.Tax(income.Add(gain)).Sub(s.Tax(income))
}

// StatusTables holds every per-filing-status value for one tax year.
type StatusTables struct {
	Ordinary Schedule // federal ordinary income brackets
	LTCG     Schedule // federal long-term capital gains brackets
	State    Schedule // resident-state ordinary brackets

	StandardDeduction      Money
	StateStandardDeduction Money

	AMTExemption     Money // exemption subtracted from the AMT base
	AMTPhaseoutStart Money // base above which the exemption phases out
	NIITThreshold    Money // MAGI threshold for the investment income surtax
	CapitalLossCap   Money // max net capital loss deductible against ordinary income
}

// YearTables bundles the per-status tables of one tax year with the
// year-wide AMT and NIIT parameters.
type YearTables struct {
	Year     int
	Statuses map[FilingStatus]StatusTables

	AMTLowRate        decimal.Decimal // below the breakpoint
	AMTHighRate       decimal.Decimal // above the breakpoint
	AMTRateBreakpoint map[FilingStatus]Money
	AMTPhaseoutRate   decimal.Decimal // exemption reduction per dollar over the phaseout start
	NIITRate          decimal.Decimal
}

// MissingBracketDataError reports that no bracket table exists for a
// requested year and filing status. This is fatal for that computation:
// applying another year's rates would be silently incorrect.
type MissingBracketDataError struct {
	Year   int
	Status FilingStatus
}

func (e *MissingBracketDataError) Error() string {
	return fmt.Sprintf("no bracket tables for year %d filing status %s", e.Year, e.Status)
}

// TaxTables is the immutable set of bracket tables the tax engine computes
// from. It is constructed once at process start and injected; there is no
// process-wide mutable table state.
type TaxTables struct {
	years map[int]*YearTables
}

// NewTaxTables builds a table set from per-year tables.
func NewTaxTables(years ...*YearTables) *TaxTables {
	t := &TaxTables{years: make(map[int]*YearTables)}
	for _, y := range years {
		t.years[y.Year] = y
	}
	return t
}

// Year returns the year-wide parameters, or a MissingBracketDataError.
func (t *TaxTables) Year(year int) (*YearTables, error) {
	y, ok := t.years[year]
	if !ok {
		return nil, &MissingBracketDataError{Year: year}
	}
	return y, nil
}

// Lookup returns the tables for one year and filing status, or a
// MissingBracketDataError.
func (t *TaxTables) Lookup(year int, status FilingStatus) (*StatusTables, error) {
	y, ok := t.years[year]
	if !ok {
		return nil, &MissingBracketDataError{Year: year, Status: status}
	}
	st, ok := y.Statuses[status]
	if !ok {
		return nil, &MissingBracketDataError{Year: year, Status: status}
	}
	return &st, nil
}
