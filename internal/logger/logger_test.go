package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_FileAndConsole(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "main.log")

	closer, err := Init(Config{Level: "info", Format: "json", File: path, MaxSizeMB: 1, Console: &console})
	require.NoError(t, err)

	log.Info().Str("symbol", "AAPL").Msg("hello")
	log.Debug().Msg("suppressed")
	require.NoError(t, closer.Close())

	assert.Contains(t, console.String(), `"symbol":"AAPL"`)
	assert.NotContains(t, console.String(), "suppressed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestInit_BadLevel(t *testing.T) {
	_, err := Init(Config{Level: "loud"})
	assert.Error(t, err)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
