package equitytax

import "fmt"

// FilingStatus identifies the federal filing status a return is computed for.
type FilingStatus int

const (
	// Single is the default status for an unmarried filer.
	Single FilingStatus = iota
	// MarriedFilingJointly combines both spouses' income on one return.
	MarriedFilingJointly
	// MarriedFilingSeparately splits a married couple into two returns, with
	// halved thresholds and a halved capital-loss cap.
	MarriedFilingSeparately
	// HeadOfHousehold is an unmarried filer maintaining a home for a dependent.
	HeadOfHousehold
)

func (s FilingStatus) String() string {
	switch s {
	case Single:
		return "single"
	case MarriedFilingJointly:
		return "married-joint"
	case MarriedFilingSeparately:
		return "married-separate"
	case HeadOfHousehold:
		return "head-of-household"
	default:
		return "unknown"
	}
}

// ParseFilingStatus parses a string into a FilingStatus.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch s {
	case "single":
		return Single, nil
	case "married-joint", "mfj":
		return MarriedFilingJointly, nil
	case "married-separate", "mfs":
		return MarriedFilingSeparately, nil
	case "head-of-household", "hoh":
		return HeadOfHousehold, nil
	default:
		return 0, fmt.Errorf("unknown filing status: %q", s)
	}
}
