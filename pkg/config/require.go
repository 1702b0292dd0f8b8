package config

import (
	"log"
	"strings"
)

// MustNonEmpty exits when a required setting is missing.
func MustNonEmpty(value, envName string) {
	if strings.TrimSpace(value) == "" {
		log.Fatalf("config: %s is required", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("config: %s is required", envName)
	}
}
