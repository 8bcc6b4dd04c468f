package config

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecret_Redaction(t *testing.T) {
	s := Secret("super-secret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "Secret([REDACTED])", fmt.Sprintf("%#v", s))
	assert.Equal(t, "super-secret", s.Value())
	assert.True(t, s.IsSet())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"[REDACTED]"`, string(data))
}

func TestSecret_Empty(t *testing.T) {
	var s Secret

	assert.Equal(t, "", s.String())
	assert.False(t, s.IsSet())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}

func TestSecret_UnmarshalJSON(t *testing.T) {
	var s Secret
	require.NoError(t, json.Unmarshal([]byte(`"raw-value"`), &s))
	assert.Equal(t, "raw-value", s.Value())
}

func TestDuration_Unmarshal(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	require.NoError(t, json.Unmarshal([]byte(`"250ms"`), &d))
	assert.Equal(t, 250*time.Millisecond, d.Duration())
}

func TestDuration_RejectsNegative(t *testing.T) {
	var d Duration
	err := d.UnmarshalText([]byte("-5s"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestDuration_RejectsGarbage(t *testing.T) {
	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration(2 * time.Second)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(data))
}
