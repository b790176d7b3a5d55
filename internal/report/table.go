package report

import (
	"fmt"
	"io"
	"strings"

	"StockLens/internal/model"
)

const (
	symbolWidth = 6
	wideColumn  = 8 // max and 5yr
	narrowWidth = 7
)

func columnWidth(i int) int {
	if i < 2 {
		return wideColumn
	}
	return narrowWidth
}

// Format writes rows as a fixed-width table with a header row of window names.
func Format(w io.Writer, rows []model.PerformanceRow) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%-*s", symbolWidth, "name"))
	for i, name := range model.WindowNames() {
		if name == "max" {
			name = "Max"
		}
		b.WriteString(fmt.Sprintf(" %*s", columnWidth(i), name))
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-*s", symbolWidth, row.Symbol))
		for i, name := range model.WindowNames() {
			v := row.Changes[name]
			if v.Valid {
				b.WriteString(fmt.Sprintf(" %*.2f", columnWidth(i), v.Float64))
			} else {
				b.WriteString(fmt.Sprintf(" %*s", columnWidth(i), "n/a"))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
