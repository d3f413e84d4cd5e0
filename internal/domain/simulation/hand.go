// Package simulation contains the raw per-hand records produced by the
// offline blackjack simulator.
package simulation

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ctxCheckEvery controls how often Decode looks at ctx while streaming.
const ctxCheckEvery = 4096

// HandRecord is one simulated hand. Net is the signed monetary result of the
// hand; Bet is the amount wagered, zero when the simulator did not record it.
type HandRecord struct {
	Net         float64 `json:"net"`
	Bet         float64 `json:"bet,omitempty"`
	PlayerTotal int     `json:"playerTotal,omitempty"`
	DealerTotal int     `json:"dealerTotal,omitempty"`
	Outcome     string  `json:"outcome,omitempty"`
}

// rawHand mirrors the simulator output. Older result files name the net
// result "profit".
type rawHand struct {
	Net         json.RawMessage `json:"net"`
	Profit      json.RawMessage `json:"profit"`
	Bet         json.RawMessage `json:"bet"`
	PlayerTotal int             `json:"playerTotal"`
	DealerTotal int             `json:"dealerTotal"`
	Outcome     string          `json:"outcome"`
}

// Validate checks a record that did not come through Decode.
func (h HandRecord) Validate(index int) error {
	if math.IsNaN(h.Net) || math.IsInf(h.Net, 0) {
		return &MalformedRecordError{Index: index, Field: "net", Err: ErrNonFinite}
	}
	if math.IsNaN(h.Bet) || math.IsInf(h.Bet, 0) {
		return &MalformedRecordError{Index: index, Field: "bet", Err: ErrNonFinite}
	}
	if h.Bet < 0 {
		return &MalformedRecordError{Index: index, Field: "bet", Err: ErrNonPositiveBet}
	}
	return nil
}

// Decode streams a JSON array of hand records from r. Any malformed record
// aborts decoding with a *MalformedRecordError.
func Decode(ctx context.Context, r io.Reader) ([]HandRecord, error) {
	dec := json.NewDecoder(bufio.NewReader(r))

	tok, err := dec.Token()
	if err != nil {
		return nil, &MalformedRecordError{Index: -1, Err: fmt.Errorf("read opening token: %w", err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, &MalformedRecordError{Index: -1, Err: ErrNotArray}
	}

	var hands []HandRecord
	for i := 0; dec.More(); i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("decode hands: %w", err)
			}
		}
		var raw rawHand
		if err := dec.Decode(&raw); err != nil {
			return nil, &MalformedRecordError{Index: i, Err: err}
		}
		h, err := raw.toRecord(i)
		if err != nil {
			return nil, err
		}
		hands = append(hands, h)
	}

	if _, err := dec.Token(); err != nil {
		return nil, &MalformedRecordError{Index: len(hands), Err: fmt.Errorf("read closing token: %w", err)}
	}
	return hands, nil
}

func (r rawHand) toRecord(index int) (HandRecord, error) {
	field := "net"
	netRaw := r.Net
	if isAbsent(netRaw) {
		field = "profit"
		netRaw = r.Profit
	}
	if isAbsent(netRaw) {
		return HandRecord{}, &MalformedRecordError{Index: index, Field: "net", Err: ErrMissingNet}
	}
	net, err := parseNumber(netRaw)
	if err != nil {
		return HandRecord{}, &MalformedRecordError{Index: index, Field: field, Err: err}
	}

	var bet float64
	if !isAbsent(r.Bet) {
		bet, err = parseNumber(r.Bet)
		if err != nil {
			return HandRecord{}, &MalformedRecordError{Index: index, Field: "bet", Err: err}
		}
		if bet <= 0 {
			return HandRecord{}, &MalformedRecordError{Index: index, Field: "bet", Err: ErrNonPositiveBet}
		}
	}

	return HandRecord{
		Net:         net,
		Bet:         bet,
		PlayerTotal: r.PlayerTotal,
		DealerTotal: r.DealerTotal,
		Outcome:     r.Outcome,
	}, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseNumber(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return 0, fmt.Errorf("%w: got %s", ErrNotNumeric, typeErr.Value)
		}
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNonFinite
	}
	return f, nil
}

// Nets extracts the net result of every hand, preserving order.
func Nets(hands []HandRecord) []float64 {
	out := make([]float64, len(hands))
	for i, h := range hands {
		out[i] = h.Net
	}
	return out
}
