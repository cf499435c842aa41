package display

import "fmt"

// LayoutMode is the column arrangement chosen for a viewport.
type LayoutMode int

const (
	SingleColumn LayoutMode = iota
	TwoColumn
)

// SingleColumnMaxWidth is the widest viewport, in px, that still gets a single
// column. Two columns start strictly above it.
const SingleColumnMaxWidth = 800

func (m LayoutMode) String() string {
	switch m {
	case SingleColumn:
		return "SINGLE_COLUMN"
	case TwoColumn:
		return "TWO_COLUMN"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name for JSON payloads.
func (m LayoutMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts the names written by MarshalText.
func (m *LayoutMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SINGLE_COLUMN":
		*m = SingleColumn
	case "TWO_COLUMN":
		*m = TwoColumn
	default:
		return fmt.Errorf("unknown layout mode %q", text)
	}
	return nil
}

// LayoutModeFor picks the layout for a viewport width. It holds no state;
// shells call it again whenever the viewport changes.
func LayoutModeFor(viewportWidthPx int) LayoutMode {
	if viewportWidthPx > SingleColumnMaxWidth {
		return TwoColumn
	}
	return SingleColumn
}

// WidthRange is the inclusive span of viewport widths that produce m. hi is
// -1 when the span is unbounded. Shells that cannot call LayoutModeFor on
// every resize compare against this span instead.
func (m LayoutMode) WidthRange() (lo, hi int) {
	if m == TwoColumn {
		return SingleColumnMaxWidth + 1, -1
	}
	return 0, SingleColumnMaxWidth
}

// Layout carries the concrete sizing decisions derived from a LayoutMode.
type Layout struct {
	Mode LayoutMode `json:"mode"`
	// KPIWidthPercent is the width of one KPI grid item.
	KPIWidthPercent float64 `json:"kpi_width_percent"`
	// SideBySide places the gauge and history cards in one row.
	SideBySide bool `json:"side_by_side"`
	// GaugeWeight and HistoryWeight are flex weights of the two top cards.
	GaugeWeight   int `json:"gauge_weight"`
	HistoryWeight int `json:"history_weight"`
}

// LayoutFor resolves the mode for a width and the sizing that goes with it.
func LayoutFor(viewportWidthPx int) Layout {
	mode := LayoutModeFor(viewportWidthPx)
	if mode == TwoColumn {
		return Layout{Mode: mode, KPIWidthPercent: 48, SideBySide: true, GaugeWeight: 1, HistoryWeight: 2}
	}
	return Layout{Mode: mode, KPIWidthPercent: 100, SideBySide: false, GaugeWeight: 1, HistoryWeight: 1}
}

// KPIsPerRow is how many KPI items fit on one row.
func (l Layout) KPIsPerRow() int {
	if l.Mode == TwoColumn {
		return 2
	}
	return 1
}
