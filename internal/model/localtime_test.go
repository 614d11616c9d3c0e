package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTimeJSON(t *testing.T) {
	ts := NewLocalTime(time.Date(2026, 5, 1, 9, 30, 0, 0, time.Local))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-05-01T09:30:00"`, string(b))

	var in struct {
		Start *LocalTime `json:"start"`
		End   *LocalTime `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2026-05-01T09:30:00.123","end":null}`), &in))
	require.NotNil(t, in.Start)
	assert.Equal(t, 9, in.Start.Hour())
	assert.Equal(t, time.Local, in.Start.Location())
	assert.Nil(t, in.End)

	var bad LocalTime
	assert.Error(t, json.Unmarshal([]byte(`"01/05/2026"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}
