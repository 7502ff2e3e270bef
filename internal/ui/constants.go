// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of rows kept visible above and below the cursor.
	ScrollMargin = 2

	BorderHeight = 2

	// HeaderHeight is the panel title plus its separator.
	HeaderHeight = 2

	PanelOverhead = BorderHeight + HeaderHeight

	// SidePanelWidth is the width of the playlists and history column.
	SidePanelWidth = 34

	// CellWidth is the width of one shloka cell in the grid.
	CellWidth = 6

	// GroupLabelWidth is the width of the group column left of the grid.
	GroupLabelWidth = 14

	MinProgressBarWidth = 5
)
