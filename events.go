package equitytax

import "fmt"

// Security identifies a traded security by its ticker symbol.
type Security struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name,omitempty"`
}

func (s Security) String() string { return s.Ticker }

// EventType is a typed string identifying the kind of compensation event.
type EventType string

// Event types produced by document ingestion.
const (
	EventGrant    EventType = "grant"
	EventVest     EventType = "vest"
	EventExercise EventType = "exercise"
	EventPurchase EventType = "purchase"
)

// ParseEventType parses a string into an EventType.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventGrant, EventVest, EventExercise, EventPurchase:
		return t, nil
	default:
		return "", fmt.Errorf("unknown event type: %q", s)
	}
}

// EquityType is a typed string identifying the compensation instrument.
type EquityType string

// Equity types covered by the engine.
const (
	RSU  EquityType = "rsu"
	ISO  EquityType = "iso"
	NSO  EquityType = "nso"
	ESPP EquityType = "espp"
)

// ParseEquityType parses a string into an EquityType.
func ParseEquityType(s string) (EquityType, error) {
	switch t := EquityType(s); t {
	case RSU, ISO, NSO, ESPP:
		return t, nil
	default:
		return "", fmt.Errorf("unknown equity type: %q", s)
	}
}

// EquityEvent is a single compensation event: a vest, an exercise or a
// purchase of shares. Events come from upstream ingestion already
// deduplicated and structurally valid, and are immutable once persisted.
type EquityEvent struct {
	ID       string     `json:"id"`
	Type     EventType  `json:"type"`
	Equity   EquityType `json:"equity"`
	Security Security   `json:"security"`
	Date     Date       `json:"date"`
	Shares   Quantity   `json:"shares"`
	Price    Money      `json:"price"` // fair market value per share on the event date
	Source   string     `json:"source,omitempty"`
}

// NewLotFromEvent creates the tax-basis lot that an acquisition event opens.
// The event's per-share fair market value becomes the lot's cost per share,
// which is correct for RSU vests and NSO exercises; ISO and ESPP lots keep
// the price actually paid, supplied by ingestion in the event's Price.
func NewLotFromEvent(ev *EquityEvent) *Lot {
	return &Lot{
		ID:           ev.ID + "-lot",
		Equity:       ev.Equity,
		Security:     ev.Security,
		Acquired:     ev.Date,
		Shares:       ev.Shares,
		CostPerShare: ev.Price,
		Remaining:    ev.Shares,
		EventID:      ev.ID,
		Source:       ev.Source,
	}
}
