package logger

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
}

func TestDefaultIsShared(t *testing.T) {
	a := Default()
	b := Default()
	assert.Same(t, a, b)

	SetDefaultLevel("debug")
	assert.Equal(t, log.DebugLevel, a.GetLevel())
	SetDefaultLevel("info")
}
