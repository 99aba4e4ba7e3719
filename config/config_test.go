package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("MAX_FILE_SIZE", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
}

func TestLoadConfigMaxFileSizeFromEnv(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "2097152")

	cfg := LoadConfig()

	assert.Equal(t, int64(2097152), cfg.MaxFileSize)
}

func TestLoadConfigMaxFileSizeRejectsGarbage(t *testing.T) {
	for _, v := range []string{"not-a-number", "-5", "0"} {
		t.Setenv("MAX_FILE_SIZE", v)
		assert.Equal(t, int64(10*1024*1024), LoadConfig().MaxFileSize, v)
	}
}
