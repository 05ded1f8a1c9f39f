package core

// Layer is one visual element the renderer composes, front to back.
type Layer interface {
	// Bounds returns the pixel area the layer currently covers.
	Bounds() Rectangle
	// Draw paints the layer into the viewport (clipped by the viewport).
	Draw(v *Viewport)
}

// Rotation is the mirror/rotation flag applied when drawing a sprite frame.
type Rotation int

const (
	RotateNone   Rotation = 0
	Rotate90CW   Rotation = 1
	Rotate90CCW  Rotation = 2
	RotateMirror Rotation = 4
)

// Sprite is a sprite-sheet backed square drawn from one frame at a time.
// Frames maps a frame index to the glyph used to draw it.
type Sprite struct {
	X, Y   int
	Size   int
	Frame  int
	Rotate Rotation
	Frames []rune
	Color  Color
}

// NewSprite creates a sprite at (x, y) showing frame 0.
func NewSprite(frames []rune, size, x, y int, c Color) *Sprite {
	return &Sprite{X: x, Y: y, Size: size, Frames: frames, Color: c}
}

// SetFrame selects the frame to show and its rotation.
func (s *Sprite) SetFrame(frame int, rotate Rotation) {
	s.Frame = frame
	s.Rotate = rotate
}

// Move places the sprite at (x, y).
func (s *Sprite) Move(x, y int) {
	s.X = x
	s.Y = y
}

// Bounds implements Layer.
func (s *Sprite) Bounds() Rectangle {
	return NewRectangle(s.X, s.Y, s.Size, s.Size)
}

// Glyph returns the rune for the current frame, mirrored if requested.
func (s *Sprite) Glyph() rune {
	g := '?'
	if s.Frame >= 0 && s.Frame < len(s.Frames) {
		g = s.Frames[s.Frame]
	}
	if s.Rotate&RotateMirror != 0 {
		if m, ok := mirrored[g]; ok {
			g = m
		}
	}
	return g
}

var mirrored = map[rune]rune{
	'>': '<', '<': '>',
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'd': 'b', 'b': 'd',
	'p': 'q', 'q': 'p',
}

// Draw implements Layer.
func (s *Sprite) Draw(v *Viewport) {
	v.Fill(s.Bounds(), s.Glyph(), s.Color)
}

// Text is a single line of text drawn at a pixel position.
type Text struct {
	X, Y  int
	Value string
	Color Color
}

// NewText creates a text layer at the origin.
func NewText(value string, c Color) *Text {
	return &Text{Value: value, Color: c}
}

// Move places the text at (x, y).
func (t *Text) Move(x, y int) {
	t.X = x
	t.Y = y
}

// Bounds implements Layer. Text takes one default-sized cell per rune.
func (t *Text) Bounds() Rectangle {
	return NewRectangle(t.X, t.Y, len([]rune(t.Value))*DefaultCellW, DefaultCellH)
}

// Draw implements Layer.
func (t *Text) Draw(v *Viewport) {
	v.Text(t.X, t.Y, t.Value, t.Color)
}
