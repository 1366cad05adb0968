package equitytax

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	lot := lotOn("l1", "2024-01-10", 100, 10.5)
	sale := saleOn("s1", "2024-09-01", 40, 15)
	sale.ReportedBasis = USD(420)
	sale.BasisReported = true

	var buf bytes.Buffer
	if err := EncodeLots(&buf, []*Lot{lot}); err != nil {
		t.Fatalf("EncodeLots failed: %v", err)
	}
	if err := EncodeSales(&buf, []*Sale{sale}); err != nil {
		t.Fatalf("EncodeSales failed: %v", err)
	}

	repo, err := DecodeRecords(&buf)
	if err != nil {
		t.Fatalf("DecodeRecords failed: %v", err)
	}

	lots, err := repo.LoadLots("ACME")
	if err != nil {
		t.Fatal(err)
	}
	if len(lots) != 1 {
		t.Fatalf("decoded %d lots, want 1", len(lots))
	}
	if !lots[0].CostPerShare.Equal(USD(10.5)) || !lots[0].Remaining.Equal(Q(100)) {
		t.Errorf("decoded lot = %+v, want cost $10.50 remaining 100", lots[0])
	}

	sales, err := repo.LoadSales(2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 1 {
		t.Fatalf("decoded %d sales, want 1", len(sales))
	}
	if !sales[0].ReportedBasis.Equal(USD(420)) || !sales[0].BasisReported {
		t.Errorf("decoded sale = %+v, want basis $420.00 reported", sales[0])
	}
}

func TestEncodeBareDecimals(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeLots(&buf, []*Lot{lotOn("l1", "2024-01-10", 100, 10.5)}); err != nil {
		t.Fatal(err)
	}
	line := buf.String()
	// decimals persist as bare JSON numbers, not strings
	if !strings.Contains(line, `"shares":100`) || strings.Contains(line, `"shares":"100"`) {
		t.Errorf("shares not encoded as a bare number: %s", line)
	}
	if !strings.Contains(line, `"costPerShare":10.5`) {
		t.Errorf("cost not encoded as a bare number: %s", line)
	}
}

func TestDecodeEventOpensLot(t *testing.T) {
	ev := &EquityEvent{
		ID:       "v1",
		Type:     EventVest,
		Equity:   RSU,
		Security: ACME,
		Date:     MustParseDate("2024-03-15"),
		Shares:   Q(25),
		Price:    USD(80),
	}

	var buf bytes.Buffer
	if err := EncodeEvents(&buf, []*EquityEvent{ev}); err != nil {
		t.Fatalf("EncodeEvents failed: %v", err)
	}

	repo, err := DecodeRecords(&buf)
	if err != nil {
		t.Fatalf("DecodeRecords failed: %v", err)
	}
	lots, err := repo.LoadLots("ACME")
	if err != nil {
		t.Fatal(err)
	}
	if len(lots) != 1 {
		t.Fatalf("event opened %d lots, want 1", len(lots))
	}
	lot := lots[0]
	if lot.ID != "v1-lot" || lot.EventID != "v1" {
		t.Errorf("lot ids = (%s, %s), want (v1-lot, v1)", lot.ID, lot.EventID)
	}
	if !lot.CostPerShare.Equal(USD(80)) || !lot.Remaining.Equal(Q(25)) {
		t.Errorf("lot = %+v, want cost $80.00 remaining 25", lot)
	}
}

func TestDecodeRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown type", `{"record":"dividend","id":"x"}`},
		{"not json", `not json at all`},
		{"invalid lot", `{"record":"lot","id":"l1","security":{"ticker":"ACME"},"acquired":"2024-01-10","shares":10,"costPerShare":1,"remaining":20}`},
		{"invalid sale", `{"record":"sale","id":"s1","security":{"ticker":"ACME"},"saleDate":"2024-09-01","shares":0,"proceedsPerShare":10,"reportedBasis":0}`},
	}

	for _, tc := range tests {
		if _, err := DecodeRecords(strings.NewReader(tc.input)); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestDecodeSkipsEmptyLines(t *testing.T) {
	input := `{"record":"lot","id":"l1","equity":"rsu","security":{"ticker":"ACME"},"acquired":"2024-01-10","shares":10,"costPerShare":1,"remaining":10}

{"record":"sale","id":"s1","equity":"rsu","security":{"ticker":"ACME"},"acquired":"Various","saleDate":"2024-09-01","shares":5,"proceedsPerShare":10,"reportedBasis":40}
`
	repo, err := DecodeRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRecords failed: %v", err)
	}
	sales, err := repo.LoadSales(2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 1 || !sales[0].Acquired.IsVarious() {
		t.Errorf("decoded sales = %+v, want one Various sale", sales)
	}
}

func TestEncodeRepositoryCanonical(t *testing.T) {
	repo := repoWith(
		[]*Lot{lotOn("l2", "2024-06-01", 10, 2), lotOn("l1", "2024-01-10", 10, 1)},
		[]*Sale{saleOn("s2", "2024-09-02", 1, 10), saleOn("s1", "2024-09-01", 1, 10)},
	)

	var a, b bytes.Buffer
	if err := EncodeRepository(&a, repo); err != nil {
		t.Fatal(err)
	}
	if err := EncodeRepository(&b, repo); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("two encodings of the same repository differ")
	}
	// lots come first, in acquisition order
	lines := strings.Split(strings.TrimSpace(a.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("encoded %d lines, want 4", len(lines))
	}
	if !strings.Contains(lines[0], `"id":"l1"`) || !strings.Contains(lines[3], `"id":"s2"`) {
		t.Errorf("canonical order broken:\n%s", a.String())
	}
}
