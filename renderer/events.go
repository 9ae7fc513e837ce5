package renderer

import (
	"bytes"

	"github.com/etnz/drip"
	md "github.com/nao1215/markdown"
)

// EventsMarkdown renders one row per dividend event: the dividend paid, the shares it bought
// and the position right after.
func EventsMarkdown(events []drip.Point, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Close", "Dividend", "Bought", "Shares", "Value"},
		Rows:   [][]string{},
	}
	for _, p := range events {
		table.Rows = append(table.Rows, []string{
			p.Date.String(),
			drip.M(p.Close, currency).String(),
			drip.M(p.Dividend, currency).String(),
			shares(p.Bought),
			shares(p.Shares),
			drip.M(p.Value, currency).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
