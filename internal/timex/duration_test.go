package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1500ms"`), &d))
	assert.Equal(t, 1500*time.Millisecond, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`2000000000`), &d))
	assert.Equal(t, 2*time.Second, d.Duration)

	require.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))

	b, err := json.Marshal(Duration{3 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"3s"`, string(b))
}

func TestDuration_YAML(t *testing.T) {
	var cfg struct {
		Delay Duration `yaml:"delay"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("delay: 250ms\n"), &cfg))
	assert.Equal(t, 250*time.Millisecond, cfg.Delay.Duration)

	require.NoError(t, yaml.Unmarshal([]byte("delay: 1000\n"), &cfg))
	assert.Equal(t, time.Duration(1000), cfg.Delay.Duration)
}
