package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/kcal/pkg/app"
	"tableflip.dev/kcal/pkg/store"
)

const (
	chartWidth = 40
	legend     = "Rainbow bars = net calories per tracked day"
	noBars     = "No tracked calorie data in the last 7 days."
)

// rainbow is cycled through by bar index.
var rainbow = []colorful.Color{
	{R: 0.90, G: 0.20, B: 0.20},
	{R: 0.95, G: 0.50, B: 0.15},
	{R: 0.95, G: 0.82, B: 0.20},
	{R: 0.20, G: 0.78, B: 0.28},
	{R: 0.20, G: 0.62, B: 0.95},
	{R: 0.46, G: 0.36, B: 0.88},
	{R: 0.88, G: 0.35, B: 0.75},
}

// Weekly prints the active session line, the bar chart with its legend and
// the per-day summary.
func (pp *PrettyPrint) Weekly(w *app.WeeklySummary, snap store.Snapshot) {
	pp.Title("Last 7 Days")
	_, _ = fmt.Fprintf(pp.out(), "Active session: %d kcal (started %s)\n\n",
		snap.Calories, snap.SessionStart.Local().Format(stampLayout))

	_, _ = fmt.Fprintln(pp.out(), Chart(w.Bars))
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintln(pp.out(), legend)
	pp.NewLine()

	_, _ = fmt.Fprintln(pp.out(), w.Text())
}

// Chart renders one horizontal bar per day. Bars are scaled to the largest
// absolute net; negative days grow with a lighter shade.
func Chart(bars []app.DayBar) string {
	if len(bars) == 0 {
		return noBars
	}

	peak := 1
	for _, b := range bars {
		peak = max(peak, abs(b.Net))
	}

	rows := make([]string, 0, len(bars))
	for i, b := range bars {
		cells := abs(b.Net) * chartWidth / peak
		if b.Net != 0 && cells == 0 {
			cells = 1
		}
		glyph := "█"
		if b.Net < 0 {
			glyph = "▒"
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(rainbow[i%len(rainbow)].Hex())).
			Width(chartWidth)
		rows = append(rows, fmt.Sprintf("%s %s %+d", b.Label, style.Render(strings.Repeat(glyph, cells)), b.Net))
	}
	return strings.Join(rows, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
