package equitytax

import "testing"

func TestGapGrouping(t *testing.T) {
	a := newGapAnalyzer()
	a.add(gapSignal{category: GapAutoCreatedLot, severity: SeverityWarning, ticker: "ACME",
		basis: USD(100), acquired: MustParseDate("2024-03-01")})
	a.add(gapSignal{category: GapAutoCreatedLot, severity: SeverityWarning, ticker: "ACME",
		basis: USD(250), acquired: MustParseDate("2024-01-15")})
	a.add(gapSignal{category: GapAutoCreatedLot, severity: SeverityWarning, ticker: "ACME",
		basis: USD(50), acquired: MustParseDate("2024-06-30")})

	report := a.report()
	if len(report.Gaps) != 1 {
		t.Fatalf("got %d gaps, want 1 grouped gap", len(report.Gaps))
	}

	gap := report.Gaps[0]
	if gap.LotCount != 3 {
		t.Errorf("LotCount = %d, want 3", gap.LotCount)
	}
	if !gap.TotalBasis.Equal(USD(400)) {
		t.Errorf("TotalBasis = %s, want $400.00", gap.TotalBasis)
	}
	if gap.DateRangeStart != MustParseDate("2024-01-15") {
		t.Errorf("DateRangeStart = %s, want 2024-01-15", gap.DateRangeStart)
	}
	if gap.DateRangeEnd != MustParseDate("2024-06-30") {
		t.Errorf("DateRangeEnd = %s, want 2024-06-30", gap.DateRangeEnd)
	}
	if report.AutoCreatedLots != 3 {
		t.Errorf("AutoCreatedLots = %d, want 3", report.AutoCreatedLots)
	}
}

func TestGapGroupingByTicker(t *testing.T) {
	a := newGapAnalyzer()
	a.add(gapSignal{category: GapZeroBasis, severity: SeverityWarning, ticker: "ACME"})
	a.add(gapSignal{category: GapZeroBasis, severity: SeverityWarning, ticker: "GLOB"})
	a.add(gapSignal{category: GapZeroBasis, severity: SeverityWarning, ticker: "ACME"})

	report := a.report()
	if len(report.Gaps) != 2 {
		t.Fatalf("got %d gaps, want one per ticker", len(report.Gaps))
	}
	// first-seen order
	if report.Gaps[0].Ticker != "ACME" || report.Gaps[1].Ticker != "GLOB" {
		t.Errorf("gap order = [%s %s], want [ACME GLOB]", report.Gaps[0].Ticker, report.Gaps[1].Ticker)
	}
	if report.Gaps[0].LotCount != 2 || report.Gaps[1].LotCount != 1 {
		t.Errorf("counts = [%d %d], want [2 1]", report.Gaps[0].LotCount, report.Gaps[1].LotCount)
	}
	if report.ZeroBasisSales != 3 {
		t.Errorf("ZeroBasisSales = %d, want 3", report.ZeroBasisSales)
	}
}

func TestGapMaxSeverity(t *testing.T) {
	a := newGapAnalyzer()
	a.add(gapSignal{category: GapMissingForm3922, severity: SeverityWarning, ticker: "ACME"})
	a.add(gapSignal{category: GapMissingForm3922, severity: SeverityError, ticker: "ACME", document: "Form 3922"})

	report := a.report()
	if len(report.Gaps) != 1 {
		t.Fatalf("got %d gaps, want 1", len(report.Gaps))
	}
	if report.Gaps[0].Severity != SeverityError {
		t.Errorf("Severity = %s, want error (max of group)", report.Gaps[0].Severity)
	}
	if report.Gaps[0].MissingDocument != "Form 3922" {
		t.Errorf("MissingDocument = %q, want Form 3922", report.Gaps[0].MissingDocument)
	}
	if !report.HasBlockingGaps() {
		t.Error("report with an error gap is not blocking")
	}
	if report.MissingForms != 2 {
		t.Errorf("MissingForms = %d, want 2", report.MissingForms)
	}
}

func TestEmptyReportNotBlocking(t *testing.T) {
	report := newGapAnalyzer().report()
	if len(report.Gaps) != 0 || report.HasBlockingGaps() {
		t.Errorf("empty analyzer produced %d gaps, blocking=%v", len(report.Gaps), report.HasBlockingGaps())
	}
}
