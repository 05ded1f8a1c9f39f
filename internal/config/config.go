// Package config provides YAML-based scene configuration: display settings,
// the tile map and its palette, the player, and the scene's dialog.
package config

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

// SceneConfig contains everything needed to build one scene.
type SceneConfig struct {
	Title   string        `yaml:"title"`
	Display DisplayConfig `yaml:"display"`
	Map     MapConfig     `yaml:"map"`
	Player  PlayerConfig  `yaml:"player"`
	Dialog  DialogConfig  `yaml:"dialog"`
}

// DisplayConfig defines the logical display. Zero fields take the defaults.
type DisplayConfig struct {
	Width                  int `yaml:"width"`
	Height                 int `yaml:"height"`
	SpriteSize             int `yaml:"sprite_size"`
	FPS                    int `yaml:"fps"`
	FramesToWaitAfterPause int `yaml:"frames_to_wait_after_pause"`
}

// MapConfig defines the level's tile map. Rows use one hex digit per tile.
type MapConfig struct {
	Rows        []string    `yaml:"rows"`
	Solid       []int       `yaml:"solid"`
	Triggers    []int       `yaml:"triggers"`
	ShakeAmount int         `yaml:"shake_amount"` // shake applied when a trigger tile is entered
	Palette     []TileStyle `yaml:"palette"`
}

// TileStyle maps a tile code to a glyph and a color name.
type TileStyle struct {
	Code  int    `yaml:"code"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// PlayerConfig defines the player entity.
type PlayerConfig struct {
	X        int            `yaml:"x"`
	Y        int            `yaml:"y"`
	Speed    int            `yaml:"speed"`
	Frames   string         `yaml:"frames"` // one glyph per sprite-sheet frame
	Color    string         `yaml:"color"`
	Collider ColliderConfig `yaml:"collider"`
}

// ColliderConfig is a collider offset and size relative to the sprite.
type ColliderConfig struct {
	DX     int `yaml:"dx"`
	DY     int `yaml:"dy"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DialogConfig defines the scene's text dialog.
type DialogConfig struct {
	Text1           string      `yaml:"text1"`
	Text2           string      `yaml:"text2"`
	TextColor       string      `yaml:"text_color"`
	Rows            []string    `yaml:"rows"`
	Palette         []TileStyle `yaml:"palette"`
	Decoration      string      `yaml:"decoration"`
	DecorationColor string      `yaml:"decoration_color"`
	FramesToWait    int         `yaml:"frames_to_wait"`
}

// Runtime returns the display settings as a core.RuntimeConfig,
// taking defaults for unset fields.
func (c SceneConfig) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	d := c.Display
	if d.Width > 0 {
		rc.GameW = d.Width
	}
	if d.Height > 0 {
		rc.GameH = d.Height
	}
	if d.SpriteSize > 0 {
		rc.SpriteSize = d.SpriteSize
	}
	if d.FPS > 0 {
		rc.TickRate = d.FPS
	}
	if d.FramesToWaitAfterPause > 0 {
		rc.FramesToWaitAfterPause = d.FramesToWaitAfterPause
	}
	return rc
}

// Validate checks the fields the scene cannot be built without.
// Row dimensions are checked when the map is loaded.
func (c SceneConfig) Validate() error {
	if len(c.Map.Rows) == 0 {
		return fmt.Errorf("config: map has no rows: %w", core.ErrConfiguration)
	}
	if c.Player.Frames == "" {
		return fmt.Errorf("config: player has no frames: %w", core.ErrConfiguration)
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("config: player speed %d must be positive: %w", c.Player.Speed, core.ErrConfiguration)
	}
	col := c.Player.Collider
	if col.Width <= 0 || col.Height <= 0 {
		return fmt.Errorf("config: player collider %dx%d must have area: %w", col.Width, col.Height, core.ErrConfiguration)
	}
	return nil
}

// BuildPalette converts tile styles into a tilemap palette.
func BuildPalette(styles []TileStyle) (tilemap.Palette, error) {
	p := make(tilemap.Palette, len(styles))
	for _, s := range styles {
		if s.Code < 0 || s.Code > 15 {
			return nil, fmt.Errorf("config: palette code %d out of range 0-15: %w", s.Code, core.ErrConfiguration)
		}
		glyph, err := Glyph(s.Glyph)
		if err != nil {
			return nil, err
		}
		color, err := Color(s.Color)
		if err != nil {
			return nil, err
		}
		p[s.Code] = tilemap.Tile{Glyph: glyph, Color: color}
	}
	return p, nil
}

// Glyph returns the single rune of s. An empty string is a blank.
func Glyph(s string) (rune, error) {
	r := []rune(s)
	switch len(r) {
	case 0:
		return ' ', nil
	case 1:
		return r[0], nil
	default:
		return 0, fmt.Errorf("config: glyph %q must be a single character: %w", s, core.ErrConfiguration)
	}
}

// Color resolves a color name. An empty name is the terminal default.
func Color(name string) (core.Color, error) {
	if name == "" {
		return core.ColorDefault, nil
	}
	c, ok := core.ParseColor(name)
	if !ok {
		return 0, fmt.Errorf("config: unknown color %q: %w", name, core.ErrConfiguration)
	}
	return c, nil
}
