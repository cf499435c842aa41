package templates

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"vibe-insights/display"
)

// num formats a display parameter exactly as computed.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// widthMin and widthMax are the ends of the viewport span the page was laid
// out for. widthMax is -1 when the span is open.
func widthMin(m display.LayoutMode) string {
	lo, _ := m.WidthRange()
	return strconv.Itoa(lo)
}

func widthMax(m display.LayoutMode) string {
	_, hi := m.WidthRange()
	return strconv.Itoa(hi)
}

func widthStyle(pct float64) string {
	return fmt.Sprintf("width: %s%%", num(pct))
}

func needleStyle(angle float64) string {
	return fmt.Sprintf("transform: translateX(-50%%) rotate(%sdeg)", num(angle))
}

// fillStyle sizes a bar fill and paints it. Colors come from team data, so
// they go through the CSS sanitizer.
func fillStyle(pct float64, color string) []any {
	return []any{widthStyle(pct), templ.KV("background-color", color)}
}

// markerStyle puts the KPI marker on the fill edge.
func markerStyle(pct float64) string {
	return fmt.Sprintf("left: %s%%; margin-left: -5px", num(pct))
}

func dotStyle(d display.HistoryDot) string {
	return fmt.Sprintf("left: %s%%; top: %s%%", num(d.Left), num(d.Top))
}

// historyFlex is the flex class of the history card. Stacked cards share
// the width evenly.
func historyFlex(l display.Layout) string {
	if !l.SideBySide {
		return "flex-1"
	}
	return fmt.Sprintf("flex-[%d]", l.HistoryWeight)
}
