package config

import (
	"os"
	"path/filepath"
	"testing"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  port: 9000
admins:
  - admin
markets:
  - symbol: USDC
    asset_id: usdc
    decimals: 6
    rest_period: 3600
`

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(sample), 0o600))

	var cfg core.Config
	require.NoError(t, Load(filename, &cfg))

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "UTC", cfg.App.Location)
	assert.Equal(t, "moneymarket", cfg.App.Name)
	assert.True(t, cfg.IsAdmin("admin"))
	require.Len(t, cfg.Markets, 1)
	assert.Equal(t, "USDC", cfg.Markets[0].Symbol)
	assert.Equal(t, int32(6), cfg.Markets[0].Decimals)
	assert.Equal(t, int64(3600), cfg.Markets[0].RestPeriod)
}
