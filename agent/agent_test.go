package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// provider returns a three days series for any ticker, and records the last range asked.
func provider(t *testing.T, asked *date.Range) drip.Provider {
	t.Helper()
	return drip.ProviderFunc(func(ctx context.Context, ticker string, r date.Range) (*drip.PriceSeries, error) {
		*asked = r
		if ticker == "NONE" {
			return nil, drip.ErrNotFound
		}
		start := date.New(2024, 1, 1)
		return drip.NewPriceSeries(ticker, "USD", []drip.Observation{
			{Date: start, Close: decimal.RequireFromString("100")},
			{Date: start.Add(1), Close: decimal.RequireFromString("100"), Dividend: decimal.RequireFromString("2")},
			{Date: start.Add(2), Close: decimal.RequireFromString("110")},
		})
	})
}

func TestSimulate(t *testing.T) {
	var asked date.Range
	f := Simulate(provider(t, &asked), drip.Options{Sanitize: drip.DropInvalid})

	resp := f.Call(context.Background(), "1", map[string]any{"ticker": "test", "start": "2024-01-01", "end": "2024-01-03"})
	if resp.ID != "1" || resp.Name != "simulate" {
		t.Errorf("Call() = %q %q, want 1 simulate", resp.ID, resp.Name)
	}
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("Call() response = %v, want an output", resp.Response)
	}
	for _, want := range []string{"# TEST dividend reinvestment", "$112.20"} {
		if !strings.Contains(out, want) {
			t.Errorf("Call() output does not contain %q:\n%s", want, out)
		}
	}
	if want := date.Between(date.New(2024, 1, 1), date.New(2024, 1, 3)); asked != want {
		t.Errorf("Call() fetched %v, want %v", asked, want)
	}
}

func TestSimulate_Defaults(t *testing.T) {
	var asked date.Range
	f := Simulate(provider(t, &asked), drip.Options{})

	resp := f.Call(context.Background(), "1", map[string]any{"ticker": "KO", "initial_shares": "10"})
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("Call() response = %v, want an output", resp.Response)
	}
	if !strings.Contains(out, "starting with 10 share(s)") {
		t.Errorf("Call() output does not start with 10 shares:\n%s", out)
	}
	if want := date.Between(drip.DefaultStart, drip.DefaultEnd); asked != want {
		t.Errorf("Call() fetched %v, want %v", asked, want)
	}
}

func TestSimulate_Errors(t *testing.T) {
	var asked date.Range
	f := Simulate(provider(t, &asked), drip.Options{})

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no ticker", map[string]any{}, drip.ErrEmptyTicker.Error()},
		{"ticker type", map[string]any{"ticker": 42}, `argument "ticker" is not a string`},
		{"bad start", map[string]any{"ticker": "KO", "start": "yesterday"}, `argument "start" must be a valid date`},
		{"bad shares", map[string]any{"ticker": "KO", "initial_shares": "many"}, "must be a decimal"},
		{"negative shares", map[string]any{"ticker": "KO", "initial_shares": "-1"}, "must be positive"},
		{"inverted range", map[string]any{"ticker": "KO", "start": "2024-01-03", "end": "2024-01-01"}, drip.ErrInvalidRange.Error()},
		{"unknown ticker", map[string]any{"ticker": "NONE"}, drip.ErrNoData.Error()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.Call(context.Background(), "id", tc.args)
			got, ok := resp.Response["error"].(string)
			if !ok {
				t.Fatalf("Call() response = %v, want an error", resp.Response)
			}
			if !strings.Contains(got, tc.want) {
				t.Errorf("Call() error = %q, want it to contain %q", got, tc.want)
			}
		})
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary([]Function{Documentation})

	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "documentation", Args: map[string]any{"topic": "dates"}})
	if out, _ := resp.Response["output"].(string); !strings.Contains(out, "YYYY-MM-DD") {
		t.Errorf("documentation(dates) = %v, want the dates topic", resp.Response)
	}

	resp = lib(context.Background(), &genai.FunctionCall{ID: "2", Name: "unknown"})
	if resp.ID != "2" || resp.Name != "unknown" {
		t.Errorf("unknown() = %q %q, want 2 unknown", resp.ID, resp.Name)
	}
	if got, _ := resp.Response["error"].(string); got != "unknown function unknown" {
		t.Errorf("unknown() error = %q, want %q", got, "unknown function unknown")
	}
}

func TestNewDeclaration(t *testing.T) {
	analyst := NewAnalyst("", drip.ProviderFunc(nil), drip.Options{})
	trader := NewTrader("gemini-2.5-pro")
	if analyst.ModelName != DefaultModel || trader.ModelName != "gemini-2.5-pro" {
		t.Errorf("models = %q %q, want %q gemini-2.5-pro", analyst.ModelName, trader.ModelName, DefaultModel)
	}

	decls := NewDeclaration([]*Expert{analyst, trader})
	if len(decls) != 2 || decls[0].Name != "Analyst" || decls[1].Name != "Trader" {
		t.Fatalf("NewDeclaration() = %v, want Analyst and Trader", decls)
	}
	if got := decls[0].Parameters.Required; len(got) != 1 || got[0] != "question" {
		t.Errorf("Required = %v, want [question]", got)
	}

	a := New(nil, strings.NewReader(""), "", analyst, trader)
	tools := a.Facilitator.Config.Tools[0].FunctionDeclarations
	if len(tools) != 2 {
		t.Errorf("facilitator tools = %d, want 2", len(tools))
	}
}

func TestText(t *testing.T) {
	got := text(&genai.Content{Parts: []*genai.Part{{Text: "a"}, {FunctionCall: &genai.FunctionCall{}}, {Text: "b"}}})
	if got != "ab" {
		t.Errorf("text() = %q, want %q", got, "ab")
	}
}
