package templates

import (
	"vibe-insights/action"
	"vibe-insights/display"
)

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

type TeamOption struct {
	Name     string
	Href     string
	Selected bool
}

// PickerData is the team dropdown with every link already pointing at the
// state its click leads to.
type PickerData struct {
	Selected   string
	Open       bool
	ToggleHref string
	CloseHref  string
	Options    []TeamOption
}

type TabLink struct {
	Label  string
	Href   string
	Active bool
}

type MediaLink struct {
	Icon   string
	Label  string
	Href   string
	Active bool
}

type ModalData struct {
	Visible     bool
	Form        action.Form
	Tabs        []TabLink
	Media       []MediaLink
	CloseHref   string
	SubmitURL   string
	SubmitLabel string
	// ReturnTo is where the browser goes after submitting.
	ReturnTo string
}

// PageData is the frame around every screen.
type PageData struct {
	Title  string
	Nav    []NavLink
	Layout display.Layout
}

type DashboardPageData struct {
	Page       PageData
	Picker     PickerData
	View       display.Dashboard
	ActionHref string
	Modal      ModalData
}

type FactorPageData struct {
	Page   PageData
	Picker PickerData
	Grid   display.FactorGrid
}
