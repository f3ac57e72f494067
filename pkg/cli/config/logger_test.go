package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/archops-lab/dispatchboard/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	t.Run("console format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "console", "stderr", "", "")
		closer, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Value(t, closer).NotNil()
		closer()
	})

	t.Run("json format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("debug", "json", "stderr", "", "")
		closer, err := cfg.Configure()
		gt.NoError(t, err)
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.NewLoggerForTest("loud", "console", "stderr", "", "")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "stderr", "", "")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("sentry DSN is accepted", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "json", "stderr", "https://public@sentry.example.com/1", "test")
		closer, err := cfg.Configure()
		gt.NoError(t, err)
		closer()
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewLoggerForTest("", "", "", "", "")
		gt.Value(t, len(cfg.Flags())).Equal(5)
	})
}

func TestGemini_Configure(t *testing.T) {
	t.Run("returns nil client when project ID is empty", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1")
		client, err := cfg.Configure(t.Context())
		gt.NoError(t, err)
		gt.Value(t, client).Nil()
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}
