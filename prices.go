package equitytax

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// PriceHistory is the observed trading range of a security, used to decide
// whether a broker-reported basis is plausible. It is loaded up front and
// handed to the reconciler; the matching algorithm itself never does I/O.
type PriceHistory struct {
	Ticker       string
	Low, High    Money
	Observations int
}

// Observe folds one closing price into the range.
func (h *PriceHistory) Observe(close Money) {
	if h.Observations == 0 {
		h.Low, h.High = close, close
	} else {
		if close.LessThan(h.Low) {
			h.Low = close
		}
		if close.GreaterThan(h.High) {
			h.High = close
		}
	}
	h.Observations++
}

// BasisPolicy decides whether a sale's resolved per-share basis is
// implausible given the security's known price history. The exact heuristic
// is deliberately pluggable; hist is nil when no history is known.
type BasisPolicy func(sale *Sale, basisPerShare Money, hist *PriceHistory) bool

// RangeBasisPolicy flags a basis that falls outside the observed trading
// range widened by the tolerance ratio (0.5 widens by 50% on both sides).
// A zero basis is never suspicious here: that is the zero-basis gap's job.
// Without price history nothing can be judged, so nothing is flagged.
func RangeBasisPolicy(tolerance float64) BasisPolicy {
	tol := decimal.NewFromFloat(tolerance)
	one := decimal.NewFromInt(1)
	return func(sale *Sale, basisPerShare Money, hist *PriceHistory) bool {
		if hist == nil || hist.Observations == 0 || basisPerShare.IsZero() {
			return false
		}
		floor := hist.Low.MulRate(one.Sub(tol))
		ceil := hist.High.MulRate(one.Add(tol))
		return basisPerShare.LessThan(floor) || basisPerShare.GreaterThan(ceil)
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// FetchPriceHistory retrieves a security's closing prices from a quote
// endpoint returning JSON with a $.prices[*].close series, and folds them
// into a PriceHistory.
func FetchPriceHistory(client *http.Client, addr, ticker string) (*PriceHistory, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving prices for %q: %w", ticker, err)
	}
	return parsePriceHistory(jobj, ticker)
}

func parsePriceHistory(jobj any, ticker string) (*PriceHistory, error) {
	path := "$.prices[*].close"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing prices for %q: %q %w", ticker, path, err)
	}
	closes, ok := jval.([]any)
	if !ok {
		// a single-entry series can come back unwrapped
		closes = []any{jval}
	}

	hist := &PriceHistory{Ticker: ticker}
	for _, c := range closes {
		val, ok := c.(float64)
		if !ok {
			return nil, fmt.Errorf("error parsing prices for %q: close %v is not a number", ticker, c)
		}
		hist.Observe(USD(val))
	}
	return hist, nil
}
