package stage

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestInitErrorMatching(t *testing.T) {
	err := error(&InitError{Stage: StageFont, Err: os.ErrNotExist})

	if !errors.Is(err, ErrInit) {
		t.Error("InitError should match ErrInit")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("InitError should unwrap to the cause")
	}
	if errors.Is(err, ErrLoad) {
		t.Error("InitError should not match ErrLoad")
	}
	if !strings.Contains(err.Error(), "font") {
		t.Errorf("Error() = %q, want stage name", err.Error())
	}
}

func TestLoadErrorMatching(t *testing.T) {
	err := error(&LoadError{Path: "a.png", Stage: StageDecode, Err: os.ErrNotExist})

	if !errors.Is(err, ErrLoad) {
		t.Error("LoadError should match ErrLoad")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("LoadError should unwrap to the cause")
	}

	var le *LoadError
	if !errors.As(err, &le) || le.Path != "a.png" {
		t.Errorf("errors.As() = %v, want LoadError for a.png", le)
	}
}
