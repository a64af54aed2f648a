package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/errors"
	"github.com/askdb/askdb/internal/translate"
)

func writeTestSchema(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schema.yaml")
	doc := `tables:
  - name: users
    columns:
      - name: id
        type: integer
      - name: email
        type: varchar
  - name: orders
    columns:
      - name: id
        type: integer
      - name: user_id
        type: integer
relationships:
  users_orders:
    from_column: id
    to_column: user_id
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{QueryTimeout: "30s", MaxRows: 100},
		Session:  config.SessionConfig{RecentTables: 5, HistorySize: 50},
		Safety:   config.SafetyConfig{ConfirmTier: "high"},
		Logging:  config.LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
	}
}

func TestResolveSchema_FromFile(t *testing.T) {
	cfg := testConfig()
	cfg.Schema.Path = writeTestSchema(t)

	sch, rels, err := resolveSchema(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"users", "orders"}, sch.TableNames())

	rel, reversed, ok := rels.Between("users", "orders")
	require.True(t, ok)
	assert.False(t, reversed)
	assert.Equal(t, "id", rel.FromColumn)
	assert.Equal(t, "user_id", rel.ToColumn)
}

func TestResolveSchema_NoSource(t *testing.T) {
	_, _, err := resolveSchema(testConfig(), nil)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestNewSession_SchemaFileOnly(t *testing.T) {
	cfg := testConfig()
	cfg.Schema.Path = writeTestSchema(t)

	sess, err := newSession(cfg)
	require.NoError(t, err)
	defer sess.Close()

	assert.Nil(t, sess.executor)

	result := sess.translator.Translate("how many users do we have?")
	assert.Equal(t, "SELECT COUNT(*) FROM users;", result.SQL)
}

func TestNewSession_InvalidTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Database.QueryTimeout = "soon"
	cfg.Schema.Path = writeTestSchema(t)

	_, err := newSession(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}

func TestNeedsConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		tier    translate.RiskTier
		risk    translate.RiskTier
		yes     bool
		confirm bool
	}{
		{name: "below threshold", tier: translate.RiskHigh, risk: translate.RiskMedium, confirm: false},
		{name: "at threshold", tier: translate.RiskHigh, risk: translate.RiskHigh, confirm: true},
		{name: "above threshold", tier: translate.RiskHigh, risk: translate.RiskCritical, confirm: true},
		{name: "stricter threshold", tier: translate.RiskLow, risk: translate.RiskLow, confirm: true},
		{name: "yes bypasses prompt", tier: translate.RiskHigh, risk: translate.RiskCritical, yes: true, confirm: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			askYes = tt.yes
			defer func() { askYes = false }()

			sess := &session{confirmTier: tt.tier}
			assert.Equal(t, tt.confirm, sess.needsConfirmation(tt.risk))
		})
	}
}

func TestRiskIcons_CoverAllTiers(t *testing.T) {
	for _, tier := range []translate.RiskTier{
		translate.RiskNone, translate.RiskLow, translate.RiskMedium,
		translate.RiskHigh, translate.RiskCritical,
	} {
		assert.Contains(t, riskIcons, tier)
	}
}
