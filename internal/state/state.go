package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
)

// DefaultPath returns the state file location. Overridable for tests.
var DefaultPath = func() string {
	return filepath.Join(xdg.DataHome, "orgsocial", "state.json")
}

// State holds display state that survives between runs: which blocks are
// collapsed, per source document.
type State struct {
	// Collapsed maps source -> block start line -> collapsed flag. JSON
	// object keys are strings, so line numbers are stored as strings.
	Collapsed map[string]map[string]bool `json:"collapsed"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Collapsed: make(map[string]map[string]bool),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	if state.Collapsed == nil {
		state.Collapsed = make(map[string]map[string]bool)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// SetCollapsed records the collapse flag for a block, identified by its
// source document and begin-line index.
func (s *State) SetCollapsed(source string, startLine int, collapsed bool) {
	if s.Collapsed[source] == nil {
		s.Collapsed[source] = make(map[string]bool)
	}
	s.Collapsed[source][strconv.Itoa(startLine)] = collapsed
}

// Toggle flips the collapse flag for a block and returns the new value.
// Blocks start expanded, so the first toggle collapses.
func (s *State) Toggle(source string, startLine int) bool {
	next := !s.IsCollapsed(source, startLine)
	s.SetCollapsed(source, startLine, next)
	return next
}

// IsCollapsed reports the stored collapse flag for a block.
func (s *State) IsCollapsed(source string, startLine int) bool {
	return s.Collapsed[source][strconv.Itoa(startLine)]
}

// Overlay returns the collapse overlay for one source as a line-indexed map,
// ready to hand to the block renderer.
func (s *State) Overlay(source string) map[int]bool {
	stored := s.Collapsed[source]
	if len(stored) == 0 {
		return nil
	}

	overlay := make(map[int]bool, len(stored))
	for key, collapsed := range stored {
		line, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		overlay[line] = collapsed
	}
	return overlay
}

// ClearSource drops all stored flags for one source document.
func (s *State) ClearSource(source string) {
	delete(s.Collapsed, source)
}
