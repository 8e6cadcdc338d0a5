package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatarra-market/internal/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"unknown": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, logger.ParseLevel(in), "level %q", in)
	}
}

func TestNewWithWriter_ProdWritesJSONAndReplacesGlobal(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(logger.Config{Mode: "prod", Level: "info"}, &buf)

	log.Info().Str("email", "ana@test.com").Msg("usuario registrado")
	log.Debug().Msg("filtered out")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "usuario registrado", entry["message"])
	assert.Equal(t, "ana@test.com", entry["email"])
}
