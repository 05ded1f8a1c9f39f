package config

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
)

// PacePreset represents a named game speed.
type PacePreset string

const (
	PaceSlow   PacePreset = "slow"
	PaceNormal PacePreset = "normal"
	PaceFast   PacePreset = "fast"
)

// ParsePace validates a preset name. An empty name is PaceNormal.
func ParsePace(s string) (PacePreset, error) {
	switch p := PacePreset(s); p {
	case "":
		return PaceNormal, nil
	case PaceSlow, PaceNormal, PaceFast:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown pace %q (want slow, normal or fast): %w", s, core.ErrConfiguration)
	}
}

// ApplyPace scales the scene's tick rate for a preset.
// Movement per tick is unchanged, so the whole game runs slower or faster.
func ApplyPace(cfg *SceneConfig, preset PacePreset) {
	fps := cfg.Runtime().TickRate
	switch preset {
	case PaceSlow:
		fps = max(1, fps*2/3)
	case PaceFast:
		fps = fps * 3 / 2
	}
	cfg.Display.FPS = fps
}

// Tune sets the scene's base frame rate (fps <= 0 keeps the scene's own)
// and then scales it by the named pace.
func Tune(cfg *SceneConfig, fps int, pace string) error {
	preset, err := ParsePace(pace)
	if err != nil {
		return err
	}
	if fps > 0 {
		cfg.Display.FPS = fps
	}
	ApplyPace(cfg, preset)
	return nil
}
