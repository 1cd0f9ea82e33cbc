package tdms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdms-go/tdms"
)

func TestPropertyAccessors(t *testing.T) {
	p := tdms.NewProperty("Temperature", float64(21.5))
	assert.Equal(t, tdms.DataTypeDoubleFloat, p.Value.Type())

	v, err := p.Value.AsFloat64()
	require.NoError(t, err)
	assert.Equal(t, 21.5, v)

	_, err = p.Value.AsInt32()
	assert.ErrorIs(t, err, tdms.ErrIncorrectType)
}

func TestPropertyString(t *testing.T) {
	p := tdms.NewProperty("Author", "Ada")
	assert.Equal(t, "Author: Ada", p.String())

	v, err := p.Value.AsString()
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)
}

func TestPropertyTimestamp(t *testing.T) {
	ts := tdms.Timestamp{Seconds: 100, Remainder: 0}
	p := tdms.NewProperty("CreatedAt", ts)

	got, err := p.Value.AsTimestamp()
	require.NoError(t, err)
	assert.Equal(t, ts, got)

	asTime, err := p.Value.AsTime()
	require.NoError(t, err)
	assert.Equal(t, ts.AsTime(), asTime)
}
