package equitytax

import (
	"errors"
	"testing"
)

func TestNewScheduleValidation(t *testing.T) {
	tests := []struct {
		name     string
		brackets []Bracket
		err      bool
	}{
		{"valid", []Bracket{bracket(10000, "0.10"), bracket(40000, "0.20"), top("0.30")}, false},
		{"single unbounded", []Bracket{top("0.10")}, false},
		{"empty", nil, true},
		{"no unbounded top", []Bracket{bracket(10000, "0.10"), bracket(40000, "0.20")}, true},
		{"unbounded not last", []Bracket{top("0.30"), bracket(10000, "0.10")}, true},
		{"two unbounded", []Bracket{top("0.10"), top("0.20")}, true},
		{"non increasing", []Bracket{bracket(40000, "0.10"), bracket(10000, "0.20"), top("0.30")}, true},
		{"duplicate upper", []Bracket{bracket(10000, "0.10"), bracket(10000, "0.20"), top("0.30")}, true},
	}

	for _, tc := range tests {
		_, err := NewSchedule(tc.brackets...)
		if tc.err && err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
		if !tc.err && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestScheduleTax(t *testing.T) {
	s := mustSchedule(bracket(10000, "0.10"), bracket(40000, "0.20"), top("0.30"))

	tests := []struct {
		income float64
		want   float64
	}{
		{0, 0},
		{5000, 500},
		{10000, 1000},              // exactly at the boundary
		{10001, 1000.20},           // first dollar of the next bracket
		{40000, 1000 + 6000},       // 10000*0.10 + 30000*0.20
		{100000, 7000 + 18000},     // + 60000*0.30
	}

	for _, tc := range tests {
		if got := s.Tax(USD(tc.income)); !got.Equal(USD(tc.want)) {
			t.Errorf("Tax(%v) = %s, want %v", tc.income, got, tc.want)
		}
	}
}

func TestScheduleTaxNegativeIncome(t *testing.T) {
	s := mustSchedule(bracket(10000, "0.10"), top("0.20"))
	if got := s.Tax(USD(-500)); !got.IsZero() {
		t.Errorf("Tax(-500) = %s, want zero", got)
	}
}

func TestStackedTax(t *testing.T) {
	// the 2024 single LTCG schedule: 0% to 47025, 15% to 518900, 20% above
	s := mustSchedule(bracket(47025, "0"), bracket(518900, "0.15"), top("0.20"))

	// gain stacks on ordinary income: with 40000 ordinary, the first 7025
	// of gain is still in the 0% bracket, the rest at 15%
	got := s.StackedTax(USD(40000), USD(20000))
	if want := USD(12975 * 0.15); !got.Equal(want) {
		t.Errorf("StackedTax(40000, 20000) = %s, want %s", got, want)
	}

	// same gain with no other income stays in the 0% bracket entirely
	if got := s.StackedTax(USD(0), USD(20000)); !got.IsZero() {
		t.Errorf("StackedTax(0, 20000) = %s, want zero", got)
	}
}

func TestTaxTablesLookup(t *testing.T) {
	tables := DefaultTaxTables()

	for _, year := range []int{2024, 2025} {
		for _, status := range []FilingStatus{Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold} {
			st, err := tables.Lookup(year, status)
			if err != nil {
				t.Errorf("Lookup(%d, %s) failed: %v", year, status, err)
				continue
			}
			if st.StandardDeduction.IsZero() || st.CapitalLossCap.IsZero() {
				t.Errorf("Lookup(%d, %s) returned incomplete tables", year, status)
			}
		}
	}
}

func TestTaxTablesMissingYear(t *testing.T) {
	tables := DefaultTaxTables()

	_, err := tables.Lookup(1999, Single)
	if err == nil {
		t.Fatal("Lookup(1999) succeeded, want MissingBracketDataError")
	}
	var missing *MissingBracketDataError
	if !errors.As(err, &missing) {
		t.Fatalf("error type = %T, want MissingBracketDataError", err)
	}
	if missing.Year != 1999 {
		t.Errorf("missing.Year = %d, want 1999", missing.Year)
	}
}

func TestMFSHalvedCaps(t *testing.T) {
	tables := DefaultTaxTables()

	mfs, err := tables.Lookup(2024, MarriedFilingSeparately)
	if err != nil {
		t.Fatal(err)
	}
	if !mfs.CapitalLossCap.Equal(USD(1500)) {
		t.Errorf("MFS loss cap = %s, want $1,500.00", mfs.CapitalLossCap)
	}
	single, err := tables.Lookup(2024, Single)
	if err != nil {
		t.Fatal(err)
	}
	if !single.CapitalLossCap.Equal(USD(3000)) {
		t.Errorf("single loss cap = %s, want $3,000.00", single.CapitalLossCap)
	}
}
