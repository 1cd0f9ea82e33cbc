package tdms_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdms-go/tdms"
)

func TestWriteAndReadContiguousChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contiguous.tdms")

	file, err := tdms.Create(path)
	require.NoError(t, err)

	w, err := file.Writer()
	require.NoError(t, err)

	want := []float64{1.5, 2.5, 3.5, 4.5}
	_, err = w.WriteChannels(false, tdms.LayoutContiguous, []tdms.ChannelData{
		{
			Path:   "/'group'/'channel'",
			Values: want,
			Properties: []tdms.Property{
				tdms.NewProperty("unit_string", "V"),
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	reopened, err := tdms.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.ChannelLength("/'group'/'channel'")
	require.NoError(t, err)
	assert.Equal(t, uint64(len(want)), n)

	got := make([]float64, n)
	read, err := tdms.ReadChannel(reopened, "/'group'/'channel'", got)
	require.NoError(t, err)
	assert.Equal(t, len(want), read)
	assert.Equal(t, want, got)

	prop, err := reopened.ReadProperty("/'group'/'channel'", "unit_string")
	require.NoError(t, err)
	unit, err := prop.AsString()
	require.NoError(t, err)
	assert.Equal(t, "V", unit)
}

func TestWriteAndReadInterleavedChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interleaved.tdms")

	file, err := tdms.Create(path)
	require.NoError(t, err)

	w, err := file.Writer()
	require.NoError(t, err)

	temps := []float64{10, 11, 12}
	counts := []int32{100, 200, 300}

	_, err = w.WriteChannels(false, tdms.LayoutInterleaved, []tdms.ChannelData{
		{Path: "/'g'/'temp'", Values: temps},
		{Path: "/'g'/'count'", Values: counts},
	})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	reopened, err := tdms.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	gotTemps := make([]float64, 3)
	_, err = tdms.ReadChannel(reopened, "/'g'/'temp'", gotTemps)
	require.NoError(t, err)
	assert.Equal(t, temps, gotTemps)

	gotCounts := make([]int32, 3)
	_, err = tdms.ReadChannel(reopened, "/'g'/'count'", gotCounts)
	require.NoError(t, err)
	assert.Equal(t, counts, gotCounts)
}

func TestReadChannelsMultiplexed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.tdms")

	file, err := tdms.Create(path)
	require.NoError(t, err)
	w, err := file.Writer()
	require.NoError(t, err)

	_, err = w.WriteChannels(false, tdms.LayoutInterleaved, []tdms.ChannelData{
		{Path: "/'g'/'a'", Values: []float64{1, 2, 3}},
		{Path: "/'g'/'b'", Values: []int32{4, 5, 6}},
	})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	reopened, err := tdms.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	a := make([]float64, 3)
	b := make([]int32, 3)
	err = reopened.ReadChannels([]tdms.ReadRequest{
		{Path: "/'g'/'a'", Destination: tdms.Into(a)},
		{Path: "/'g'/'b'", Destination: tdms.Into(b)},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, a)
	assert.Equal(t, []int32{4, 5, 6}, b)
}

func TestListGroupsAndChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.tdms")

	file, err := tdms.Create(path)
	require.NoError(t, err)
	w, err := file.Writer()
	require.NoError(t, err)

	_, err = w.WriteChannels(false, tdms.LayoutContiguous, []tdms.ChannelData{
		{Path: "/'sensors'/'temp'", Values: []float64{1}},
		{Path: "/'sensors'/'pressure'", Values: []float64{2}},
	})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	reopened, err := tdms.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	groups := reopened.ListGroups()
	assert.Equal(t, []string{"/'sensors'"}, groups)

	channels := reopened.ListChannelsInGroup("/'sensors'")
	assert.ElementsMatch(t, []string{"/'sensors'/'temp'", "/'sensors'/'pressure'"}, channels)
}

func TestReadChannelWrongTypeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatch.tdms")

	file, err := tdms.Create(path)
	require.NoError(t, err)
	w, err := file.Writer()
	require.NoError(t, err)

	_, err = w.WriteChannels(false, tdms.LayoutContiguous, []tdms.ChannelData{
		{Path: "/'g'/'c'", Values: []float64{1, 2, 3}},
	})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	reopened, err := tdms.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	out := make([]int32, 3)
	_, err = tdms.ReadChannel(reopened, "/'g'/'c'", out)
	assert.ErrorIs(t, err, tdms.ErrDataTypeMismatch)
}

func TestWriteThenAppendProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append-props.tdms")

	file, err := tdms.Create(path)
	require.NoError(t, err)
	w, err := file.Writer()
	require.NoError(t, err)

	_, err = w.WriteChannels(false, tdms.LayoutContiguous, []tdms.ChannelData{
		{Path: "/'g'/'c'", Values: []float64{1, 2}},
	})
	require.NoError(t, err)

	_, err = w.WriteProperties("/'g'/'c'", []tdms.Property{
		tdms.NewProperty("calibration_date", "2024-01-01"),
	})
	require.NoError(t, err)
	require.NoError(t, file.Close())

	reopened, err := tdms.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	props, err := reopened.ReadAllProperties("/'g'/'c'")
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "calibration_date", props[0].Name)

	n, err := reopened.ChannelLength("/'g'/'c'")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}
