package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		"WARN":   zerolog.WarnLevel,
		" info ": zerolog.InfoLevel,
		"bogus":  zerolog.InfoLevel,
		"off":    zerolog.Disabled,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := For(New(Options{Level: "debug", Format: "json", Out: &buf}), "combat")
	log.Debug().Str("target", "3v1").Msg("hit credited")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "combat", line["component"])
	assert.Equal(t, "hit credited", line["message"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Out: &buf})
	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())
}
