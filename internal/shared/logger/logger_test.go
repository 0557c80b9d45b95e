package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New(true, "DEBUG").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, New(false, "warn").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(false, "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(false, "loud").GetLevel())
}
