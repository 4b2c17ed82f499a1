package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Section prints a blank line, then title underlined to its width.
func (p *Printer) Section(title string) {
	p.line(p.w, "")
	p.line(p.w, p.theme.heading.Render(title))
	p.line(p.w, p.theme.rule.Render(strings.Repeat("─", lipgloss.Width(title))))
}

// KeyValue prints "key: value".
func (p *Printer) KeyValue(key string, value string) {
	p.line(p.w, p.theme.key.Render(key+":")+" "+value)
}

// Bullets prints items as a "- " list, or the dimmed empty text when there
// are no items.
func (p *Printer) Bullets(items []string, empty string) {
	if len(items) == 0 {
		p.line(p.w, p.theme.dim.Render(empty))
		return
	}
	for _, item := range items {
		p.line(p.w, p.theme.bullet.Render("-")+" "+item)
	}
}

// Table prints rows under bold headers with columns padded to their widest
// cell. Cells beyond the header count are dropped.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	p.tableRow(headers, widths, p.theme.header)
	for _, row := range rows {
		p.tableRow(row, widths, lipgloss.NewStyle())
	}
}

func (p *Printer) tableRow(cells []string, widths []int, style lipgloss.Style) {
	var b strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(style.Render(cell))
		if i < len(cells)-1 && i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
	}
	p.line(p.w, b.String())
}

// Box prints content under an optional title, inside a rounded border when
// output is styled.
func (p *Printer) Box(title string, content string) {
	if !p.color {
		if title != "" {
			p.line(p.w, title)
			p.line(p.w, "")
		}
		p.line(p.w, content)
		return
	}

	body := content
	if title != "" {
		body = p.theme.heading.Render(title) + "\n\n" + content
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.border).
		Padding(0, 1)
	p.line(p.w, style.Render(body))
}

// FormatBytes renders a byte count with a binary unit, e.g. "1.5 KiB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
