package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing server listen", modify: func(c *Config) { c.Server.Listen = "" }, errMsg: "server.listen is required"},
		{name: "missing server timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, errMsg: "server.timeout is required"},
		{name: "missing feed interval", modify: func(c *Config) { c.Feed.Interval = 0 }, errMsg: "feed.interval is required"},
		{name: "missing max size", modify: func(c *Config) { c.Feed.MaxSize = 0 }, errMsg: "feed.max_size is required"},
		{name: "no identities", modify: func(c *Config) { c.Feed.Identities = nil }, errMsg: "feed.identities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tt.modify(cfg)

			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"feed"`)
	assert.Contains(t, string(data), `"identities"`)
	assert.Contains(t, string(data), "Live lead feed configuration")
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	props := schemaProperties(schema)
	for _, key := range []string{"server", "database", "feed"} {
		assert.Contains(t, props, key)
	}
}
