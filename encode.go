package equitytax

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RecordType is a typed string identifying the kind of a JSONL line.
type RecordType string

// Record types used in data files.
const (
	RecordEvent RecordType = "event"
	RecordLot   RecordType = "lot"
	RecordSale  RecordType = "sale"
)

// One envelope type per record kind: the record tag plus the payload
// fields inlined.
type eventRecord struct {
	Record RecordType `json:"record"`
	*EquityEvent
}

type lotRecord struct {
	Record RecordType `json:"record"`
	*Lot
}

type saleRecord struct {
	Record RecordType `json:"record"`
	*Sale
}

// DecodeRecords reads a stream of JSONL records and returns a repository
// loaded with the events (converted to the lots they open), lots and sales
// it contains.
func DecodeRecords(r io.Reader) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Record RecordType `json:"record"`
		}
		if err := json.Unmarshal(raw, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record on line %d: %w", line, err)
		}

		switch identifier.Record {
		case RecordEvent:
			var ev EquityEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				return nil, fmt.Errorf("invalid event on line %d: %w", line, err)
			}
			if err := repo.SaveLot(NewLotFromEvent(&ev)); err != nil {
				return nil, err
			}
		case RecordLot:
			var lot Lot
			if err := json.Unmarshal(raw, &lot); err != nil {
				return nil, fmt.Errorf("invalid lot on line %d: %w", line, err)
			}
			if err := lot.validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := repo.SaveLot(&lot); err != nil {
				return nil, err
			}
		case RecordSale:
			var sale Sale
			if err := json.Unmarshal(raw, &sale); err != nil {
				return nil, fmt.Errorf("invalid sale on line %d: %w", line, err)
			}
			if err := sale.validate(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := repo.SaveSale(&sale); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown record type %q on line %d", identifier.Record, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read records: %w", err)
	}
	return repo, nil
}

// EncodeRepository writes the whole repository, lots first then sales, in a
// canonical order so two encodings of the same state are byte-identical.
func EncodeRepository(w io.Writer, repo *MemoryRepository) error {
	if err := EncodeLots(w, repo.Lots()); err != nil {
		return err
	}
	return EncodeSales(w, repo.Sales())
}

// EncodeLots writes lots as JSONL records.
func EncodeLots(w io.Writer, lots []*Lot) error {
	enc := json.NewEncoder(w)
	for _, lot := range lots {
		if err := enc.Encode(lotRecord{Record: RecordLot, Lot: lot}); err != nil {
			return fmt.Errorf("could not encode lot %s: %w", lot.ID, err)
		}
	}
	return nil
}

// EncodeSales writes sales as JSONL records.
func EncodeSales(w io.Writer, sales []*Sale) error {
	enc := json.NewEncoder(w)
	for _, sale := range sales {
		if err := enc.Encode(saleRecord{Record: RecordSale, Sale: sale}); err != nil {
			return fmt.Errorf("could not encode sale %s: %w", sale.ID, err)
		}
	}
	return nil
}

// EncodeEvents writes equity events as JSONL records.
func EncodeEvents(w io.Writer, events []*EquityEvent) error {
	enc := json.NewEncoder(w)
	for _, ev := range events {
		if err := enc.Encode(eventRecord{Record: RecordEvent, EquityEvent: ev}); err != nil {
			return fmt.Errorf("could not encode event %s: %w", ev.ID, err)
		}
	}
	return nil
}
