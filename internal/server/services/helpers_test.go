package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/auth"
	"github.com/dmitrijs2005/fileledger/internal/server/clock"
	"github.com/dmitrijs2005/fileledger/internal/server/config"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/kv"
	"github.com/stretchr/testify/require"
)

const (
	alice models.Identity = "alice"
	bob   models.Identity = "bob"
	carol models.Identity = "carol"
)

func as(id models.Identity) context.Context {
	return auth.WithIdentity(context.Background(), id)
}

func testConfig(enforce bool) *config.Config {
	return &config.Config{
		RetentionMinTTL:    24 * time.Hour,
		RetentionTargetTTL: 48 * time.Hour,
		EnforceOwnership:   enforce,
	}
}

func newFileSync(t *testing.T, enforce bool) (*FileSyncService, *kv.MemoryHost, *clock.Manual) {
	t.Helper()
	host := kv.NewMemoryHost()
	clk := clock.NewManual(1_000)
	return NewFileSyncService(host, auth.ContextAuthenticator{}, clk, testConfig(enforce), logging.Nop{}), host, clk
}

func points(t *testing.T, s string) models.Points {
	t.Helper()
	p, err := models.ParsePoints(s)
	require.NoError(t, err)
	return p
}
