package stress

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Report summarises one Run.
type Report struct {
	Pushers int
	Poppers int
	// Pushed counts successful pushes, Popped successful pops by the
	// poppers, Drained the values popped after the workers finished.
	Pushed  int
	Popped  int
	Drained int
	// EmptyPops counts pops that found the stack empty.
	EmptyPops int
	// Duplicates counts values popped more than once, Lost pushed values
	// never popped, Foreign popped values that were never pushed.
	Duplicates int
	Lost       int
	Foreign    int
	// OrderViolations counts drained values that came out above a newer
	// value from the same pusher.
	OrderViolations int
	Elapsed         time.Duration
}

// OK reports whether every pushed value came back exactly once and in
// per-pusher LIFO order.
func (r Report) OK() bool {
	return r.Duplicates == 0 && r.Lost == 0 && r.Foreign == 0 &&
		r.OrderViolations == 0 && r.Popped+r.Drained == r.Pushed
}

func (r Report) String() string {
	return fmt.Sprintf(
		"pushers=%d poppers=%d pushed=%d popped=%d drained=%d empty_pops=%d duplicates=%d lost=%d foreign=%d order_violations=%d elapsed=%s ok=%t",
		r.Pushers, r.Poppers, r.Pushed, r.Popped, r.Drained, r.EmptyPops,
		r.Duplicates, r.Lost, r.Foreign, r.OrderViolations, r.Elapsed, r.OK(),
	)
}

type reportJSON struct {
	Pushers         int   `json:"pushers"`
	Poppers         int   `json:"poppers"`
	Pushed          int   `json:"pushed"`
	Popped          int   `json:"popped"`
	Drained         int   `json:"drained"`
	EmptyPops       int   `json:"empty_pops"`
	Duplicates      int   `json:"duplicates"`
	Lost            int   `json:"lost"`
	Foreign         int   `json:"foreign"`
	OrderViolations int   `json:"order_violations"`
	ElapsedNs       int64 `json:"elapsed_ns"`
	OK              bool  `json:"ok"`
}

func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		Pushers:         r.Pushers,
		Poppers:         r.Poppers,
		Pushed:          r.Pushed,
		Popped:          r.Popped,
		Drained:         r.Drained,
		EmptyPops:       r.EmptyPops,
		Duplicates:      r.Duplicates,
		Lost:            r.Lost,
		Foreign:         r.Foreign,
		OrderViolations: r.OrderViolations,
		ElapsedNs:       r.Elapsed.Nanoseconds(),
		OK:              r.OK(),
	})
}

func (r *Report) UnmarshalJSON(b []byte) error {
	var v reportJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Report{
		Pushers:         v.Pushers,
		Poppers:         v.Poppers,
		Pushed:          v.Pushed,
		Popped:          v.Popped,
		Drained:         v.Drained,
		EmptyPops:       v.EmptyPops,
		Duplicates:      v.Duplicates,
		Lost:            v.Lost,
		Foreign:         v.Foreign,
		OrderViolations: v.OrderViolations,
		Elapsed:         time.Duration(v.ElapsedNs),
	}
	return nil
}
