package registry

import (
	"testing"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/session"
)

type stubScene struct{ id, title string }

func (s stubScene) ID() string    { return s.id }
func (s stubScene) Title() string { return s.title }

func (s stubScene) Setup(*session.Session, config.SceneConfig) error { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("test-b", func() Scene { return stubScene{"test-b", "Bravo"} })
	Register("test-a", func() Scene { return stubScene{"test-a", "Alpha"} })

	if !Exists("test-a") || Exists("test-missing") {
		t.Error("Exists() reported wrong membership")
	}

	sc, err := Create("test-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if sc.Title() != "Bravo" {
		t.Errorf("Title() = %q, expected Bravo", sc.Title())
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create() of unknown scene should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "test-a" || info.ID == "test-b" {
			ids = append(ids, info.ID+"="+info.Title)
		}
	}
	if len(ids) != 2 || ids[0] != "test-a=Alpha" || ids[1] != "test-b=Bravo" {
		t.Errorf("List() = %v, expected sorted test scenes", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Scene { return stubScene{"test-dup", "Dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test-dup", func() Scene { return stubScene{"test-dup", "Dup"} })
}
