package tdms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdms-go/tdms"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantGroup   string
		wantChannel string
	}{
		{"root", "/", "", ""},
		{"group", "/'measurements'", "measurements", ""},
		{"channel", "/'measurements'/'temperature'", "measurements", "temperature"},
		{"escaped quote", "/'it''s a group'/'ch'", "it's a group", "ch"},
		{"slash inside quotes", "/'a/b'/'c'", "a/b", "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, channel, err := tdms.ParsePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGroup, group)
			assert.Equal(t, tt.wantChannel, channel)
		})
	}
}

func TestParsePathInvalid(t *testing.T) {
	tests := []string{
		"",
		"no-leading-slash",
		"/unquoted",
		"/'unterminated",
		"/'a'/'b'/'c'",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, _, err := tdms.ParsePath(path)
			assert.ErrorIs(t, err, tdms.ErrInvalidPath)
		})
	}
}

func TestFormatPathRoundTrip(t *testing.T) {
	tests := []struct {
		group, channel string
	}{
		{"", ""},
		{"measurements", ""},
		{"measurements", "temperature"},
		{"it's a group", "a'b"},
	}

	for _, tt := range tests {
		path := tdms.FormatPath(tt.group, tt.channel)
		group, channel, err := tdms.ParsePath(path)
		require.NoError(t, err)
		assert.Equal(t, tt.group, group)
		assert.Equal(t, tt.channel, channel)
	}
}

func TestPathPredicates(t *testing.T) {
	assert.True(t, tdms.IsRootPath("/"))
	assert.True(t, tdms.IsGroupPath("/'g'"))
	assert.True(t, tdms.IsChannelPath("/'g'/'c'"))
	assert.False(t, tdms.IsChannelPath("/'g'"))
	assert.False(t, tdms.IsGroupPath("/"))
}
