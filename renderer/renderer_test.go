package renderer

import (
	"strings"
	"testing"

	"github.com/ghoyle/equitytax"
)

func reconciled(t *testing.T) *equitytax.ReconcileResult {
	t.Helper()

	lot := &equitytax.Lot{
		ID:           "l1",
		Equity:       equitytax.RSU,
		Security:     equitytax.Security{Ticker: "ACME"},
		Acquired:     equitytax.MustParseDate("2023-01-10"),
		Shares:       equitytax.Q(100),
		CostPerShare: equitytax.USD(10),
		Remaining:    equitytax.Q(100),
	}
	sale := &equitytax.Sale{
		ID:               "s1",
		Security:         equitytax.Security{Ticker: "ACME"},
		Equity:           equitytax.ESPP,
		SaleDate:         equitytax.MustParseDate("2024-09-01"),
		Shares:           equitytax.Q(40),
		ProceedsPerShare: equitytax.USD(15),
	}
	repo := equitytax.NewMemoryRepository()
	if err := repo.SaveLot(lot); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveSale(sale); err != nil {
		t.Fatal(err)
	}

	result, err := equitytax.NewReconciler(repo).Reconcile(2024)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	return result
}

func TestReconcileMarkdown(t *testing.T) {
	md := ReconcileMarkdown(reconciled(t))

	for _, want := range []string{"# Reconciliation 2024", "ACME", "2024-09-01", "Long-term"} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestReconcileMarkdownEmpty(t *testing.T) {
	md := ReconcileMarkdown(&equitytax.ReconcileResult{Year: 2024, Gaps: &equitytax.DataGapReport{}})
	if !strings.Contains(md, "No sales in this tax year.") {
		t.Errorf("empty report unexpected:\n%s", md)
	}
}

func TestGapsMarkdown(t *testing.T) {
	result := reconciled(t)
	md := GapsMarkdown(result.Gaps)

	// the fixture sells ESPP shares without Form 3922, which blocks filing
	for _, want := range []string{"# Data Gap Report", "missing-form-3922", "Blocking gaps present"} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestGapsMarkdownClean(t *testing.T) {
	md := GapsMarkdown(&equitytax.DataGapReport{})
	if !strings.Contains(md, "No data gaps found.") {
		t.Errorf("clean report unexpected:\n%s", md)
	}
}

func TestTaxMarkdown(t *testing.T) {
	engine := equitytax.NewTaxEngine(equitytax.DefaultTaxTables())
	result, err := engine.Compute(equitytax.TaxInput{
		Year:         2024,
		Status:       equitytax.Single,
		Ordinary:     equitytax.USD(100000),
		LongTermGain: equitytax.USD(50000),
	})
	if err != nil {
		t.Fatal(err)
	}

	md := TaxMarkdown(result)
	for _, want := range []string{"2024", "single", "$13,841.00", "$7,500.00"} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestLotsMarkdown(t *testing.T) {
	lot := &equitytax.Lot{
		ID:           "l1",
		Equity:       equitytax.RSU,
		Security:     equitytax.Security{Ticker: "ACME"},
		Acquired:     equitytax.MustParseDate("2023-01-10"),
		Shares:       equitytax.Q(100),
		CostPerShare: equitytax.USD(10),
		Remaining:    equitytax.Q(60),
	}

	md := LotsMarkdown([]*equitytax.Lot{lot})
	for _, want := range []string{"# Lots", "ACME", "2023-01-10", "60"} {
		if !strings.Contains(md, want) {
			t.Errorf("listing missing %q:\n%s", want, md)
		}
	}
	if !strings.Contains(LotsMarkdown(nil), "No lots.") {
		t.Error("empty listing unexpected")
	}
}
