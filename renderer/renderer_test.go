package renderer

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var fixGolden = flag.Bool("fix-golden", false, "if true, update failing golden files in testdata with the received output")

func TestFixGoldenIsOff(t *testing.T) {
	if *fixGolden {
		t.Fatal("-fix-golden is enabled. This flag should only be used for updating test fixtures and must be disabled for regular tests.")
	}
}

// summary simulates one share on consecutive days from 2024-01-01.
func summary(t *testing.T, closes, dividends []string) *drip.Summary {
	t.Helper()
	obs := make([]drip.Observation, len(closes))
	for i := range closes {
		obs[i] = drip.Observation{
			Date:     date.New(2024, 1, 1).Add(i),
			Close:    decimal.RequireFromString(closes[i]),
			Dividend: decimal.RequireFromString(dividends[i]),
		}
	}
	s, err := drip.NewPriceSeries("TEST", "USD", obs)
	if err != nil {
		t.Fatalf("NewPriceSeries() unexpected error = %v", err)
	}
	sim, err := drip.Simulate(s, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Simulate() unexpected error = %v", err)
	}
	status := drip.StatusOK
	if !s.HasDividends() {
		status = drip.StatusNoDividends
	}
	sum := drip.Summarize(&drip.Analysis{Series: s, Simulation: sim, Status: status})
	return &sum
}

func TestRenderSummary(t *testing.T) {
	testCases := []struct {
		name       string
		closes     []string
		dividends  []string
		goldenFile string
	}{
		{"ok", []string{"100", "100", "110"}, []string{"0", "2", "0"}, "testdata/summary_ok.md"},
		{"no dividends", []string{"10", "11", "12"}, []string{"0", "0", "0"}, "testdata/summary_no_dividends.md"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderSummary(summary(t, tc.closes, tc.dividends), SummaryRenderOptions{})
			want, err := os.ReadFile(tc.goldenFile)
			if err != nil {
				t.Fatalf("cannot read golden file: %v", err)
			}
			if got == string(want) {
				return
			}
			if *fixGolden {
				if err := os.WriteFile(tc.goldenFile, []byte(got), 0o644); err != nil {
					t.Fatalf("cannot fix golden file: %v", err)
				}
				t.Logf("fixed golden file %s", tc.goldenFile)
				return
			}
			t.Errorf("RenderSummary() mismatch for %s:\n%s", tc.goldenFile, createDiff(string(want), got))
		})
	}
}

func TestRenderSummary_Rows(t *testing.T) {
	got := RenderSummary(summary(t, []string{"100", "100", "110", "100"}, []string{"0", "2", "0", "1.02"}), SummaryRenderOptions{Rows: true})

	if !strings.Contains(got, "## Dividend events") {
		t.Fatalf("RenderSummary() has no events section:\n%s", got)
	}
	for _, want := range []string{"2024-01-02", "$2.00", "1.02", "$102.00", "2024-01-04", "1.0302"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderSummary() events do not contain %q", want)
		}
	}

	// The report must parse as three GFM tables: performance, annual dividends and events.
	source := []byte(got)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	tables := 0
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == extast.KindTable {
			tables++
		}
		return ast.WalkContinue, nil
	})
	if tables != 3 {
		t.Errorf("RenderSummary() has %d tables, want 3", tables)
	}
}

func TestRenderSummary_RoundsShares(t *testing.T) {
	got := RenderSummary(summary(t, []string{"3", "3"}, []string{"0", "1"}), SummaryRenderOptions{Rows: true})

	if !strings.Contains(got, "| Shares | 1 | 1.333333 | |") {
		t.Errorf("RenderSummary() shares are not rounded:\n%s", got)
	}
	if strings.Contains(got, "1.3333333") {
		t.Errorf("RenderSummary() prints more than 6 digits of shares:\n%s", got)
	}
}

// TestTemplatesAreUsed checks that every template file is referenced by a renderer.
func TestTemplatesAreUsed(t *testing.T) {
	used := map[string]bool{
		"summary.md":           true,
		"summary_title.md":     true,
		"summary_figures.md":   true,
		"summary_dividends.md": true,
		"summary_events.md":    true,
	}
	files, err := fs.ReadDir(templates, ".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	for _, f := range files {
		if !used[f.Name()] {
			t.Errorf("unused template %s", filepath.Join("templates", f.Name()))
		}
	}
}

func createDiff(want, got string) string {
	// A simple diff-like representation for clearer test failures.
	return fmt.Sprintf("-%s\n+%s", strings.ReplaceAll(want, "\n", "\n-"), strings.ReplaceAll(got, "\n", "\n+"))
}
