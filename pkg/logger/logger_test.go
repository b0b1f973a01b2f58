package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupParsesLevel(t *testing.T) {
	l := Setup("debug")
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())
}

func TestSetupFallsBackToInfo(t *testing.T) {
	for _, level := range []string{"", "verbose", "LOUD"} {
		l := Setup(level)
		assert.Equal(t, zerolog.InfoLevel, l.GetLevel(), "level %q", level)
	}
}
