package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr0stylo/msgsink/pkg/webhookclient"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(writeConfig(t, "base_url: http://localhost:8000\nsecret: s3cret\nfrom: \"+111\"\nto: \"+222\"\nenvelope: cloudevents-binary\n"))
	require.NoError(t, err)
	assert.Equal(t, "1s", cfg.Interval)
	assert.Equal(t, "generated message", cfg.Text)

	envelope, err := cfg.envelope()
	require.NoError(t, err)
	assert.Equal(t, webhookclient.EnvelopeCloudEventBinary, envelope)
}

func TestLoadConfigRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing secret":   "base_url: http://x\nfrom: \"+1\"\nto: \"+2\"\n",
		"bad interval":     "base_url: http://x\nsecret: s\nfrom: \"+1\"\nto: \"+2\"\ninterval: soon\n",
		"zero interval":    "base_url: http://x\nsecret: s\nfrom: \"+1\"\nto: \"+2\"\ninterval: 0s\n",
		"unknown envelope": "base_url: http://x\nsecret: s\nfrom: \"+1\"\nto: \"+2\"\nenvelope: soap\n",
		"negative count":   "base_url: http://x\nsecret: s\nfrom: \"+1\"\nto: \"+2\"\ncount: -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := loadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := loadConfig("")
	assert.Error(t, err)
}
