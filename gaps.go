package equitytax

import "fmt"

// GapCategory is a typed string identifying one kind of data deficiency
// found during reconciliation.
type GapCategory string

// Gap categories.
const (
	GapAutoCreatedLot  GapCategory = "auto-created-lot"
	GapZeroBasis       GapCategory = "zero-basis"
	GapMissingForm3922 GapCategory = "missing-form-3922"
	GapMissingForm3921 GapCategory = "missing-form-3921"
	GapSuspiciousBasis GapCategory = "suspicious-basis"
	GapPassthroughSale GapCategory = "passthrough-sale"
)

// Severity ranks how much a gap undermines the computed result.
type Severity int

const (
	// SeverityInfo marks expected broker behavior needing no remediation.
	SeverityInfo Severity = iota
	// SeverityWarning marks results computed from an explicit estimate.
	SeverityWarning
	// SeverityError marks results that cannot be trusted until the missing
	// data is supplied.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// DataGap is one grouped, human-actionable finding: all signals of one
// category for one ticker collapse into a single gap.
type DataGap struct {
	Category        GapCategory
	Severity        Severity
	Ticker          string
	Summary         string
	MissingDocument string // e.g. "Form 3922", empty when no document is missing
	SuggestedAction string
	LotCount        int   // lots involved, or occurrences for non-aggregating categories
	TotalBasis      Money // aggregated basis, only for auto-created lots
	DateRangeStart  Date  // earliest acquisition across grouped lots
	DateRangeEnd    Date  // latest acquisition across grouped lots
}

// DataGapReport is the ordered result of gap analysis for one
// reconciliation run, with running totals over all gaps.
type DataGapReport struct {
	Gaps            []DataGap
	AutoCreatedLots int
	ZeroBasisSales  int
	MissingForms    int
}

// HasBlockingGaps reports whether any gap is severe enough that the
// computed gains should not be filed as-is.
func (r *DataGapReport) HasBlockingGaps() bool {
	for _, g := range r.Gaps {
		if g.Severity == SeverityError {
			return true
		}
	}
	return false
}

// gapSignal is one raw per-sale anomaly recorded during matching, before
// grouping.
type gapSignal struct {
	category GapCategory
	severity Severity
	ticker   string
	basis    Money // synthesized lot basis, auto-created lots only
	acquired Date  // synthesized lot acquisition date, auto-created lots only
	document string
	action   string
}

// gapAnalyzer aggregates raw per-sale signals into grouped gaps. Grouping
// key is (category, ticker); groups keep first-seen order so two runs over
// the same snapshot produce identical reports.
type gapAnalyzer struct {
	order  []gapKey
	groups map[gapKey][]gapSignal
}

type gapKey struct {
	category GapCategory
	ticker   string
}

func newGapAnalyzer() *gapAnalyzer {
	return &gapAnalyzer{groups: make(map[gapKey][]gapSignal)}
}

func (a *gapAnalyzer) add(sig gapSignal) {
	key := gapKey{sig.category, sig.ticker}
	if _, seen := a.groups[key]; !seen {
		a.order = append(a.order, key)
	}
	a.groups[key] = append(a.groups[key], sig)
}

// report folds the collected signals into the final grouped report.
func (a *gapAnalyzer) report() *DataGapReport {
	report := &DataGapReport{Gaps: []DataGap{}}

	for _, key := range a.order {
		signals := a.groups[key]
		gap := DataGap{
			Category: key.category,
			Ticker:   key.ticker,
			LotCount: len(signals),
		}

		for _, sig := range signals {
			if sig.severity > gap.Severity {
				gap.Severity = sig.severity
			}
			if sig.document != "" {
				gap.MissingDocument = sig.document
			}
			if sig.action != "" {
				gap.SuggestedAction = sig.action
			}
			// Basis and date ranges aggregate only for auto-created lots;
			// the other categories stay simple occurrence counts.
			if key.category == GapAutoCreatedLot {
				gap.TotalBasis = gap.TotalBasis.Add(sig.basis)
				gap.DateRangeStart = minDate(gap.DateRangeStart, sig.acquired)
				gap.DateRangeEnd = maxDate(gap.DateRangeEnd, sig.acquired)
			}
		}

		gap.Summary = summarize(gap)
		report.Gaps = append(report.Gaps, gap)

		switch key.category {
		case GapAutoCreatedLot:
			report.AutoCreatedLots += gap.LotCount
		case GapZeroBasis:
			report.ZeroBasisSales += gap.LotCount
		case GapMissingForm3921, GapMissingForm3922:
			report.MissingForms += gap.LotCount
		}
	}
	return report
}

// summarize writes the one-line human summary of a grouped gap.
func summarize(g DataGap) string {
	switch g.Category {
	case GapAutoCreatedLot:
		return fmt.Sprintf("%d lot(s) for %s synthesized from broker-reported basis totaling %s", g.LotCount, g.Ticker, g.TotalBasis)
	case GapZeroBasis:
		return fmt.Sprintf("%d sale(s) of %s resolved with zero cost basis against nonzero proceeds", g.LotCount, g.Ticker)
	case GapMissingForm3922:
		return fmt.Sprintf("%d ESPP disposition(s) of %s without Form 3922 discount/FMV data", g.LotCount, g.Ticker)
	case GapMissingForm3921:
		return fmt.Sprintf("%d ISO disposition(s) of %s without Form 3921 exercise data", g.LotCount, g.Ticker)
	case GapSuspiciousBasis:
		return fmt.Sprintf("%d sale(s) of %s with broker basis outside the known price range", g.LotCount, g.Ticker)
	case GapPassthroughSale:
		return fmt.Sprintf("%d pass-through aggregate sale(s) of %s used broker basis as-is", g.LotCount, g.Ticker)
	default:
		return fmt.Sprintf("%d finding(s) for %s", g.LotCount, g.Ticker)
	}
}
