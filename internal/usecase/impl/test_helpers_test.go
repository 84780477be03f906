package impl

import (
	"io"
	"log/slog"

	"accounts/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:      4,
			HashConcurrency: 2,
			DefaultPassword: "123456",
		},
	}
}

func intPtr(v int) *int { return &v }
