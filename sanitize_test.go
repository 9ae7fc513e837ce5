package drip

import (
	"errors"
	"testing"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name       string
		policy     SanitizePolicy
		closes     []string
		dividends  []string
		wantCloses []string
		wantFixed  int
	}{
		{
			name:       "keep",
			policy:     KeepInvalid,
			closes:     []string{"10", "0", "12"},
			dividends:  []string{"0", "1", "0"},
			wantCloses: []string{"10", "0", "12"},
		},
		{
			name:       "drop",
			policy:     DropInvalid,
			closes:     []string{"10", "0", "12", "-1"},
			dividends:  []string{"0", "1", "0", "0"},
			wantCloses: []string{"10", "12"},
			wantFixed:  2,
		},
		{
			name:       "forward fill",
			policy:     ForwardFill,
			closes:     []string{"10", "0", "12", "-1"},
			dividends:  []string{"0", "1", "0", "0"},
			wantCloses: []string{"10", "10", "12", "12"},
			wantFixed:  2,
		},
		{
			name:       "forward fill drops leading",
			policy:     ForwardFill,
			closes:     []string{"0", "11", "0"},
			dividends:  []string{"0", "0", "0"},
			wantCloses: []string{"11", "11"},
			wantFixed:  2,
		},
		{
			name:       "nothing to fix",
			policy:     DropInvalid,
			closes:     []string{"10", "11"},
			dividends:  []string{"0", "0"},
			wantCloses: []string{"10", "11"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, fixed, err := Sanitize(newSeries(t, tc.closes, tc.dividends), tc.policy)
			if err != nil {
				t.Fatalf("Sanitize() unexpected error = %v", err)
			}
			if fixed != tc.wantFixed {
				t.Errorf("Sanitize() fixed = %d, want %d", fixed, tc.wantFixed)
			}
			closes := make([]string, got.Len())
			for i, o := range got.All() {
				closes[i] = o.Close.String()
			}
			if !equalDecimals(decimals(closes...), decimals(tc.wantCloses...)) {
				t.Errorf("Sanitize() closes = %v, want %v", closes, tc.wantCloses)
			}
		})
	}
}

func TestSanitize_ThenSimulate(t *testing.T) {
	// A dividend paid on a day without close is degenerate, once filled it is reinvested at the previous close.
	s := newSeries(t, []string{"100", "0", "110"}, []string{"0", "2", "0"})
	if _, err := Simulate(s, one); !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("Simulate() error = %v, want ErrDegenerateInput", err)
	}
	filled, _, err := Sanitize(s, ForwardFill)
	if err != nil {
		t.Fatalf("Sanitize() unexpected error = %v", err)
	}
	sim, err := Simulate(filled, one)
	if err != nil {
		t.Fatalf("Simulate() unexpected error = %v", err)
	}
	if got := sim.Last().Value; !got.Equal(d("112.2")) {
		t.Errorf("Last().Value = %v, want 112.2", got)
	}
}

func TestParseSanitizePolicy(t *testing.T) {
	for in, want := range map[string]SanitizePolicy{"none": KeepInvalid, "drop": DropInvalid, "FFILL": ForwardFill} {
		got, err := ParseSanitizePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseSanitizePolicy(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParseSanitizePolicy("interpolate"); err == nil {
		t.Error("ParseSanitizePolicy(interpolate) expected an error")
	}
}
