package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionLog summarises one run of the game.
type SessionLog struct {
	Started       time.Time     `json:"started"`
	Duration      time.Duration `json:"duration"`
	Frames        uint64        `json:"frames"`
	Contacts      int           `json:"contacts"`
	AsteroidsLeft int           `json:"asteroids_left"`
}

// saveSessionLog appends the session as a single JSON line to
// sessions.jsonl.
func saveSessionLog(s SessionLog) error {
	dir, err := sessionLogDir()
	if err != nil {
		return fmt.Errorf("session log dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session log: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "sessions.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}
	return nil
}

// sessionLogDir follows the XDG base directory layout:
// $XDG_DATA_HOME/boulder-smash, defaulting to ~/.local/share/boulder-smash.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "boulder-smash"), nil
}
