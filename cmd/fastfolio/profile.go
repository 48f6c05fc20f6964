package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/fastfolio/internal/types"
)

// loadProfile reads a StudentProfile JSON file. Unknown fields are rejected
// so typos in hand-written profiles surface early.
func loadProfile(path string) (*types.StudentProfile, error) {
	if path == "" {
		return nil, fmt.Errorf("--profile is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile types.StudentProfile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &profile, nil
}
