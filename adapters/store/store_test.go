package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	var cfg config.Config
	cfg.DB.Driver = config.DriverMemory

	s, err := Open(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.Profiles)
}

func TestOpen_UnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.DB.Driver = "sqlite"

	_, err := Open(context.Background(), cfg, logger.NewNop())
	assert.ErrorContains(t, err, "unknown db driver")
}
