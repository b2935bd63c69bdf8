// Package utils provides common utility functions for the wavemode daemon.
//
// This file implements unified ID generation used across the daemon for
// creating unique identifiers. Interface managers and other orchestrator
// resources share the same 12-character hexadecimal handle format so log
// lines stay correlatable across subsystems.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateID creates a unique 12-character hex identifier. Uses crypto/rand
// so handles never collide within one process lifetime and stay unique
// across daemon restarts.
//
// Returns format: "a1b2c3d4e5f6" (12 hex characters, similar to Docker short IDs)
func GenerateID() (string, error) {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
