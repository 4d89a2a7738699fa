// Package ui provides shared layout constants and component helpers.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead (border + header + separator).
	// Used to calculate available list height: listHeight = panelHeight - PanelOverhead
	PanelOverhead = BorderHeight + HeaderHeight
)
