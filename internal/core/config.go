package core

// RuntimeConfig describes the logical display and loop cadence.
// Everything is measured in display pixels, not terminal cells.
type RuntimeConfig struct {
	GameW      int // Display width in pixels
	GameH      int // Display height in pixels
	SpriteSize int // Edge length of sprites and map tiles in pixels
	TickRate   int // Ticks per second

	// FramesToWaitAfterPause is the number of ticks input is discarded
	// after the loop resumes from a pause.
	FramesToWaitAfterPause int
}

// DefaultConfig returns the handheld display defaults: 160x128 at 12 fps.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		GameW:                  160,
		GameH:                  128,
		SpriteSize:             16,
		TickRate:               12,
		FramesToWaitAfterPause: 2,
	}
}

// TilesX returns how many whole tiles fit horizontally.
func (c RuntimeConfig) TilesX() int {
	return c.GameW / c.SpriteSize
}

// TilesY returns how many whole tiles fit vertically.
func (c RuntimeConfig) TilesY() int {
	return c.GameH / c.SpriteSize
}

// BounceX is the largest x a sprite can take without leaving the display.
func (c RuntimeConfig) BounceX() int {
	return c.GameW - c.SpriteSize
}

// BounceY is the largest y a sprite can take without leaving the display.
func (c RuntimeConfig) BounceY() int {
	return c.GameH - c.SpriteSize
}

// Bounds returns the whole display as a rectangle.
func (c RuntimeConfig) Bounds() Rectangle {
	return NewRectangle(0, 0, c.GameW, c.GameH)
}
