package equitytax

import (
	"encoding/json"
	"fmt"
)

// VariousAcquired is the literal marker brokers report in the "date
// acquired" column of a 1099-B for aggregate pass-through sales, typically
// automated sell-to-cover batches spanning several vest dates.
const VariousAcquired = "Various"

// Acquisition is a sale's reported acquisition date: an explicit date, the
// "Various" pass-through marker, or absent entirely.
type Acquisition struct {
	date    Date
	various bool
}

// AcquiredOn builds an explicit acquisition date.
func AcquiredOn(d Date) Acquisition { return Acquisition{date: d} }

// AcquiredVarious builds the pass-through marker.
func AcquiredVarious() Acquisition { return Acquisition{various: true} }

// ParseAcquisition parses a broker-reported date-acquired cell.
func ParseAcquisition(s string) (Acquisition, error) {
	if s == "" {
		return Acquisition{}, nil
	}
	if s == VariousAcquired {
		return AcquiredVarious(), nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return Acquisition{}, fmt.Errorf("invalid date acquired: %w", err)
	}
	return AcquiredOn(d), nil
}

// IsVarious reports whether the sale is a broker pass-through aggregate.
func (a Acquisition) IsVarious() bool { return a.various }

// IsAbsent reports whether no acquisition date was reported at all.
func (a Acquisition) IsAbsent() bool { return !a.various && a.date.IsZero() }

// Date returns the explicit acquisition date, zero when absent or Various.
func (a Acquisition) Date() Date { return a.date }

func (a Acquisition) String() string {
	if a.various {
		return VariousAcquired
	}
	if a.date.IsZero() {
		return ""
	}
	return a.date.String()
}

// MarshalJSON persists the acquisition as the broker-reported string.
func (a Acquisition) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Acquisition) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAcquisition(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Sale is a broker-reported disposition of shares. LotID is empty until the
// reconciliation engine resolves the sale to the first lot it consumes.
type Sale struct {
	ID               string      `json:"id"`
	LotID            string      `json:"lotId,omitempty"`
	Security         Security    `json:"security"`
	Equity           EquityType  `json:"equity"`
	Acquired         Acquisition `json:"acquired"`
	SaleDate         Date        `json:"saleDate"`
	Shares           Quantity    `json:"shares"`
	ProceedsPerShare Money       `json:"proceedsPerShare"`
	ReportedBasis    Money       `json:"reportedBasis"` // total basis the broker reported
	BasisReported    bool        `json:"basisReported"` // true when the basis was reported to the IRS
	Form3921         bool        `json:"form3921,omitempty"` // ISO exercise data supplied for this disposition
	Form3922         bool        `json:"form3922,omitempty"` // ESPP purchase data supplied for this disposition
	Source           string      `json:"source,omitempty"`
}

// Proceeds returns the total sale proceeds.
func (s *Sale) Proceeds() Money { return s.ProceedsPerShare.Mul(s.Shares) }

// ReportedBasisPerShare splits the broker-reported basis over the shares sold.
func (s *Sale) ReportedBasisPerShare() Money {
	if s.Shares.IsZero() {
		return Money{}
	}
	return s.ReportedBasis.Div(s.Shares)
}

// validate checks the standing sale invariant shares > 0.
func (s *Sale) validate() error {
	if !s.Shares.IsPositive() {
		return fmt.Errorf("sale %s: shares sold must be positive, got %s", s.ID, s.Shares)
	}
	return nil
}
