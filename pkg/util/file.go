package util

import (
	"os"
	"strings"
)

// ReadTrimmed reads a small file and strips surrounding whitespace.
func ReadTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
