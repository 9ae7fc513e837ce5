package drip

import (
	"fmt"
	"log"
	"strings"
)

// SanitizePolicy tells how observations without a positive close are handled
// before simulating.
type SanitizePolicy int

const (
	// KeepInvalid leaves the series untouched, Simulate will report them.
	KeepInvalid SanitizePolicy = iota
	// DropInvalid removes observations without a positive close.
	DropInvalid
	// ForwardFill replaces a non-positive close with the previous valid one.
	// Leading invalid observations have no previous close and are dropped.
	ForwardFill
)

func (p SanitizePolicy) String() string {
	switch p {
	case KeepInvalid:
		return "none"
	case DropInvalid:
		return "drop"
	case ForwardFill:
		return "ffill"
	default:
		return fmt.Sprintf("SanitizePolicy(%d)", int(p))
	}
}

// ParseSanitizePolicy parses "none", "drop" or "ffill".
func ParseSanitizePolicy(s string) (SanitizePolicy, error) {
	switch strings.ToLower(s) {
	case "none", "keep":
		return KeepInvalid, nil
	case "drop":
		return DropInvalid, nil
	case "ffill", "forward-fill":
		return ForwardFill, nil
	default:
		return KeepInvalid, fmt.Errorf("unknown sanitize policy %q, want none, drop or ffill", s)
	}
}

// Set implements flag.Value.
func (p *SanitizePolicy) Set(s string) error {
	v, err := ParseSanitizePolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// UnmarshalText lets config decoders read a policy by name.
func (p *SanitizePolicy) UnmarshalText(text []byte) error { return p.Set(string(text)) }

// Sanitize returns a new series where observations without a positive close are handled
// according to policy, and the number of observations that were dropped or filled.
//
// A dropped observation takes its dividend with it.
func Sanitize(s *PriceSeries, policy SanitizePolicy) (*PriceSeries, int, error) {
	if policy == KeepInvalid || s.Len() == 0 {
		return s, 0, nil
	}
	obs := make([]Observation, 0, s.Len())
	fixed := 0
	for _, o := range s.All() {
		if o.Close.IsPositive() {
			obs = append(obs, o)
			continue
		}
		fixed++
		if policy == ForwardFill && len(obs) > 0 {
			log.Printf("%s: close on %s is %s, forward filled with %s", s.ticker, o.Date, o.Close, obs[len(obs)-1].Close)
			o.Close = obs[len(obs)-1].Close
			obs = append(obs, o)
			continue
		}
		log.Printf("%s: close on %s is %s, dropped", s.ticker, o.Date, o.Close)
	}
	if fixed == 0 {
		return s, 0, nil
	}
	res, err := NewPriceSeries(s.ticker, s.currency, obs)
	return res, fixed, err
}
