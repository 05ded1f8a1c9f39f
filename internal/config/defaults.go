package config

import (
	_ "embed"
)

//go:embed defaults/town.yaml
var defaultTownYAML []byte

// DefaultTownConfig returns the hardcoded town scene, used when even the
// embedded YAML cannot be parsed.
func DefaultTownConfig() SceneConfig {
	return SceneConfig{
		Title: "Town",
		Display: DisplayConfig{
			Width:                  160,
			Height:                 128,
			SpriteSize:             16,
			FPS:                    12,
			FramesToWaitAfterPause: 2,
		},
		Map: MapConfig{
			Rows: []string{
				"0000ee0fff",
				"5555540ff8",
				"0000060088",
				"9abc060080",
				"73370600d0",
				"7727060fef",
				"0080045555",
				"008d88d000",
			},
			Solid:       []int{2, 3, 7, 9, 10, 11, 12, 13, 14, 15},
			Triggers:    []int{8},
			ShakeAmount: 4,
			Palette: []TileStyle{
				{Code: 0, Glyph: ".", Color: "green"},
				{Code: 2, Glyph: "#", Color: "gray"},
				{Code: 3, Glyph: "=", Color: "orange"},
				{Code: 4, Glyph: "+", Color: "yellow"},
				{Code: 5, Glyph: ":", Color: "yellow"},
				{Code: 6, Glyph: ":", Color: "yellow"},
				{Code: 7, Glyph: "#", Color: "red"},
				{Code: 8, Glyph: "*", Color: "bright_magenta"},
				{Code: 9, Glyph: "/", Color: "bright_red"},
				{Code: 10, Glyph: "^", Color: "bright_red"},
				{Code: 11, Glyph: "^", Color: "bright_red"},
				{Code: 12, Glyph: `\`, Color: "bright_red"},
				{Code: 13, Glyph: "&", Color: "bright_green"},
				{Code: 14, Glyph: "T", Color: "bright_green"},
				{Code: 15, Glyph: "Y", Color: "green"},
			},
		},
		Player: PlayerConfig{
			X:        8,
			Y:        8,
			Speed:    4,
			Frames:   `>dp/-\|`,
			Color:    "bright_white",
			Collider: ColliderConfig{DX: 2, DY: 1, Width: 12, Height: 14},
		},
		Dialog: DialogConfig{
			Text1:     "Meow Mix",
			Text2:     "Delivers!",
			TextColor: "bright_white",
			Rows: []string{
				"0111111112",
				"3444444445",
			},
			Palette: []TileStyle{
				{Code: 0, Glyph: "+", Color: "white"},
				{Code: 1, Glyph: "-", Color: "white"},
				{Code: 2, Glyph: "+", Color: "white"},
				{Code: 3, Glyph: "|", Color: "white"},
				{Code: 4, Glyph: " "},
				{Code: 5, Glyph: "|", Color: "white"},
			},
			Decoration:      "@",
			DecorationColor: "bright_yellow",
			FramesToWait:    2,
		},
	}
}

// DefaultYAML returns the embedded default YAML for a scene, or nil.
func DefaultYAML(sceneID string) []byte {
	switch sceneID {
	case "town":
		return defaultTownYAML
	default:
		return nil
	}
}
