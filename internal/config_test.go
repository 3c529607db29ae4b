package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", "/tmp/chat")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	req.NoError(err)
	req.Equal("/tmp/chat", config.BadgerFilepath)
	req.Equal(8080, config.HTTPPort)
	req.Equal(200*time.Millisecond, config.SinkTimeout)
	req.Equal("log", config.PushProvider)
	req.Nil(config.LimitMessages)
}

func TestLoadConfig_FromDotEnv(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), ".env")
	req.NoError(os.WriteFile(path, []byte("BADGER_FILEPATH=/data/chat\nLIMIT_MESSAGES=20\nHTTP_PORT=9000\n"), 0o600))
	t.Setenv("HTTP_PORT", "7000")
	t.Cleanup(func() {
		_ = os.Unsetenv("BADGER_FILEPATH")
		_ = os.Unsetenv("LIMIT_MESSAGES")
	})

	config, err := LoadConfig(path)

	req.NoError(err)
	req.Equal("/data/chat", config.BadgerFilepath)
	req.NotNil(config.LimitMessages)
	req.Equal(20, *config.LimitMessages)
	// The environment wins over the file
	req.Equal(7000, config.HTTPPort)
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)
	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)

	_, err = CharacterRune("**")
	req.Error(err)
}
