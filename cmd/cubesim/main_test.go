package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/cubesim/internal/config"
	"github.com/san-kum/cubesim/internal/interact"
)

func TestWriteCubeSVG(t *testing.T) {
	cfg := config.DefaultConfig()
	session, err := interact.NewSession(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	session.Resize(320, 240)

	path := filepath.Join(t.TempDir(), "cube.svg")
	if err := writeCubeSVG(path, cfg, session); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("not an svg document: %.60s", data)
	}
}

func TestWriteCubeSVGBadBackground(t *testing.T) {
	cfg := config.DefaultConfig()
	session, err := interact.NewSession(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Render.Background = "teal"

	path := filepath.Join(t.TempDir(), "cube.svg")
	if err := writeCubeSVG(path, cfg, session); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("svg written despite invalid background")
	}
}

func TestApplyActionsUnknown(t *testing.T) {
	session, err := interact.NewSession(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := applyActions(session, []string{"turn_front", "juggle"}); !errors.Is(err, interact.ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}
