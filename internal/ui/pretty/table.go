package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableFormatter formats rows of text as an aligned table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable renders headers and rows. The last column absorbs any width
// the terminal cannot fit.
func (t *TableFormatter) FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(headers, rows)

	var builder strings.Builder
	builder.WriteString(t.styles.Bold.Render(formatCells(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(formatCells(row, widths))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = max(minColumnWidth, len(header))
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if total := totalWidth(widths); total > t.termWidth {
		last := len(widths) - 1
		widths[last] = max(minColumnWidth, widths[last]-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) formatSeparator(widths []int) string {
	return t.styles.Dim.Render(strings.Repeat(heavySeparator, totalWidth(widths)))
}

func formatCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = truncateString(cells[i], width)
		}
		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}
	return strings.TrimRight(" "+strings.Join(parts, strings.Repeat(" ", tablePadding)), " ")
}

func totalWidth(widths []int) int {
	total := 1
	for _, width := range widths {
		total += width
	}
	return total + tablePadding*(len(widths)-1)
}

// truncateString shortens str to maxLen, marking the cut with an ellipsis.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}
