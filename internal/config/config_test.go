package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/tilemap"
)

func TestEmbeddedTownMatchesHardcoded(t *testing.T) {
	cfg, err := Load("town", "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	def := DefaultTownConfig()

	if cfg.Title != def.Title {
		t.Errorf("Title = %q, expected %q", cfg.Title, def.Title)
	}
	if len(cfg.Map.Rows) != len(def.Map.Rows) {
		t.Fatalf("got %d rows, expected %d", len(cfg.Map.Rows), len(def.Map.Rows))
	}
	for i := range def.Map.Rows {
		if cfg.Map.Rows[i] != def.Map.Rows[i] {
			t.Errorf("row %d = %q, expected %q", i, cfg.Map.Rows[i], def.Map.Rows[i])
		}
	}
	if cfg.Player != def.Player {
		t.Errorf("Player = %+v, expected %+v", cfg.Player, def.Player)
	}
	if len(cfg.Map.Palette) != len(def.Map.Palette) {
		t.Errorf("palette has %d entries, expected %d", len(cfg.Map.Palette), len(def.Map.Palette))
	}
	if cfg.Dialog.Text1 != "Meow Mix" || cfg.Dialog.Text2 != "Delivers!" {
		t.Errorf("dialog text = %q / %q", cfg.Dialog.Text1, cfg.Dialog.Text2)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	data := []byte(`title: Cave
display:
  fps: 20
map:
  rows: ["00", "12"]
player:
  speed: 2
  frames: "@"
  collider: { dx: 1, dy: 1, width: 14, height: 14 }
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("cave", path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Title != "Cave" || len(cfg.Map.Rows) != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	rc := cfg.Runtime()
	if rc.TickRate != 20 {
		t.Errorf("TickRate = %d, expected 20", rc.TickRate)
	}
	if rc.GameW != 160 || rc.GameH != 128 || rc.SpriteSize != 16 || rc.FramesToWaitAfterPause != 2 {
		t.Errorf("unset display fields should take defaults: %+v", rc)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load("town", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("map: [unclosed"), 0o644)
	if _, err := Load("town", bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	if _, err := Load("no-such-scene", ""); err == nil {
		t.Error("unknown scene without files should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SceneConfig)
	}{
		{"no rows", func(c *SceneConfig) { c.Map.Rows = nil }},
		{"no frames", func(c *SceneConfig) { c.Player.Frames = "" }},
		{"zero speed", func(c *SceneConfig) { c.Player.Speed = 0 }},
		{"flat collider", func(c *SceneConfig) { c.Player.Collider.Height = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTownConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, core.ErrConfiguration) {
				t.Errorf("Validate() = %v, expected configuration error", err)
			}
		})
	}
}

func TestBuildPalette(t *testing.T) {
	p, err := BuildPalette([]TileStyle{
		{Code: 14, Glyph: "T", Color: "bright_green"},
		{Code: 4, Glyph: ""},
	})
	if err != nil {
		t.Fatalf("BuildPalette() failed: %v", err)
	}
	if p[14] != (tilemap.Tile{Glyph: 'T', Color: core.ColorBrightGreen}) {
		t.Errorf("code 14 = %+v", p[14])
	}
	if p[4] != (tilemap.Tile{Glyph: ' ', Color: core.ColorDefault}) {
		t.Errorf("code 4 = %+v", p[4])
	}

	bad := []struct {
		name  string
		style TileStyle
	}{
		{"code out of range", TileStyle{Code: 16, Glyph: "x"}},
		{"long glyph", TileStyle{Code: 1, Glyph: "xx"}},
		{"unknown color", TileStyle{Code: 1, Glyph: "x", Color: "plaid"}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildPalette([]TileStyle{tc.style}); !errors.Is(err, core.ErrConfiguration) {
				t.Errorf("BuildPalette() = %v, expected configuration error", err)
			}
		})
	}
}

func TestPace(t *testing.T) {
	tests := []struct {
		preset PacePreset
		fps    int
	}{
		{PaceSlow, 8},
		{PaceNormal, 12},
		{PaceFast, 18},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTownConfig()
			ApplyPace(&cfg, tc.preset)
			if got := cfg.Runtime().TickRate; got != tc.fps {
				t.Errorf("TickRate = %d, expected %d", got, tc.fps)
			}
		})
	}

	if p, err := ParsePace(""); err != nil || p != PaceNormal {
		t.Errorf("ParsePace(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePace("ludicrous"); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("ParsePace(ludicrous) = %v", err)
	}
}

func TestTune(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		pace string
		want int
	}{
		{"scene default", 0, "", 12},
		{"fps only", 20, "normal", 20},
		{"pace only", 0, "fast", 18},
		{"fps then slow", 30, "slow", 20},
		{"fps then fast", 20, "fast", 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTownConfig()
			if err := Tune(&cfg, tc.fps, tc.pace); err != nil {
				t.Fatalf("Tune() failed: %v", err)
			}
			if got := cfg.Runtime().TickRate; got != tc.want {
				t.Errorf("TickRate = %d, expected %d", got, tc.want)
			}
		})
	}

	cfg := DefaultTownConfig()
	if err := Tune(&cfg, 20, "warp"); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("Tune(warp) = %v, expected configuration error", err)
	}
}
