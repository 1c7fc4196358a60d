package core_test

import (
	"encoding/json"
	"testing"
	"time"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := core.ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, "20240229", d.Compact())

	_, err = core.ParseDate("29.02.2024")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("TRT", 3*60*60)
	d := core.DateOf(time.Date(2024, time.May, 1, 23, 59, 0, 0, loc))
	assert.True(t, d.Equal(core.NewDate(2024, time.May, 1)))
	assert.True(t, d.Before(d.AddDays(1)))
}

func TestDate_JSON(t *testing.T) {
	var v struct {
		D core.Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-01-02"}`), &v))
	assert.Equal(t, "2024-01-02", v.D.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-01-02"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &v))
	assert.True(t, v.D.IsZero())
	out, err = json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"d":"02/01/2024"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"d":20240102}`), &v))
}
