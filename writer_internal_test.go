package tdms

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteChannelsMatchPreviousOnRepeat verifies the write-path planner:
// writing the same channel twice with an unchanged shape should emit a
// MatchPrevious raw-data index and leave the new-object-list ToC bit clear
// on the second segment, while still accumulating ChannelLength across
// both writes.
func TestWriteChannelsMatchPreviousOnRepeat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repeat.tdms")

	f, err := Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := f.Writer()
	require.NoError(t, err)

	channel := "/'group'/'voltage'"

	_, err = w.WriteChannels(false, LayoutContiguous, []ChannelData{
		{Path: channel, Values: []float64{1, 2, 3}},
	})
	require.NoError(t, err)

	seg2, err := w.WriteChannels(false, LayoutContiguous, []ChannelData{
		{Path: channel, Values: []float64{4, 5, 6}},
	})
	require.NoError(t, err)

	assert.False(t, seg2.HasNewObjectList(), "second segment with an unchanged channel set should not reset the active list")
	require.Len(t, seg2.objects, 1)
	assert.Equal(t, rawIndexKindMatchPrevious, seg2.objects[0].index.kind)

	n, err := f.ChannelLength(channel)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), n)

	var out [6]float64
	read, err := ReadChannel(f, channel, out[:])
	require.NoError(t, err)
	assert.Equal(t, 6, read)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, out[:])
}

// TestWriteChannelsExplicitOnShapeChange verifies that a changed value
// count defeats MatchPrevious even though the channel set is unchanged.
func TestWriteChannelsExplicitOnShapeChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reshape.tdms")

	f, err := Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := f.Writer()
	require.NoError(t, err)

	channel := "/'group'/'voltage'"

	_, err = w.WriteChannels(false, LayoutContiguous, []ChannelData{
		{Path: channel, Values: []float64{1, 2, 3}},
	})
	require.NoError(t, err)

	seg2, err := w.WriteChannels(false, LayoutContiguous, []ChannelData{
		{Path: channel, Values: []float64{4, 5}},
	})
	require.NoError(t, err)

	require.Len(t, seg2.objects, 1)
	assert.Equal(t, rawIndexKindExplicit, seg2.objects[0].index.kind)
}
