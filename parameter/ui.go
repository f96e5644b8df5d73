package parameter

// Terminal cell geometry, a cell maps to CellWidth x CellHeight world pixels
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Reset button
const (
	// ResetButtonLabel is drawn top-right, clicking it resets the game
	ResetButtonLabel = "[ Reset ]"

	// HUDMargin is the cell margin of score readout and reset button
	HUDMargin = 1
)

// Glyphs
const (
	GlyphBox        = '█'
	GlyphBoxEdge    = '▓'
	GlyphProjectile = '●'
	GlyphGround     = '▀'
	GlyphSlingshot  = '║'
	GlyphBand       = '·'
)
