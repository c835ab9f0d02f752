package constants

import (
	"os"

	"github.com/sirupsen/logrus"
)

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GetMediaDir is where report looks for MIDI files when no dir is given.
func GetMediaDir() string {
	return getenv("MEDIA_PATH", ".")
}

// GetPairingPolicy is the raw PAIRING_POLICY value, "strict" or "skip".
func GetPairingPolicy() string {
	return getenv("PAIRING_POLICY", "strict")
}

func GetListenAddr() string {
	return getenv("LISTEN_ADDR", ":8080")
}

// GetLogLevel falls back to info when LOG_LEVEL is unset or unparsable.
func GetLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// MaxQueryWindow caps the width in ticks of an HTTP window query.
const MaxQueryWindow = 1 << 24
