package tdms

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadInRoundTrip(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "leadin-*.bin")
	require.NoError(t, err)
	defer f.Close()

	want := leadIn{
		toc:               tocContainsMetadata | tocContainsNewObjectList | tocContainsRawData,
		versionNumber:     4713,
		nextSegmentOffset: 128,
		rawDataOffset:     64,
	}

	require.NoError(t, writeLeadIn(f, want))
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	got, err := readLeadIn(f)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadLeadInBadMagic(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "leadin-*.bin")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write(make([]byte, leadInSize))
	require.NoError(t, err)
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	_, err = readLeadIn(f)
	assert.ErrorIs(t, err, ErrHeaderPatternNotMatched)
}

func TestReadLeadInEmptyStream(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "leadin-*.bin")
	require.NoError(t, err)
	defer f.Close()

	_, err = readLeadIn(f)
	assert.ErrorIs(t, err, ErrEndOfFile)
}

func TestWriteSegmentThenReadSegment(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "segment-*.bin")
	require.NoError(t, err)
	defer f.Close()

	records := []objectRecord{
		{
			path: "/'group'/'channel'",
			index: rawDataIndex{
				kind:      rawIndexKindExplicit,
				dataType:  DataTypeDoubleFloat,
				dimension: 1,
				numValues: 3,
			},
			properties: []Property{
				{Name: "unit_string", Value: PropertyValue{typ: DataTypeString, data: "V"}},
			},
		},
	}

	order := ByteOrder(LittleEndian)
	raw := make([]byte, 24)
	for i, v := range []float64{1.5, 2.5, 3.5} {
		encodeNumeric(raw[i*8:(i+1)*8], order, v)
	}

	seg, err := writeSegment(f, 0, records, raw, false, false, true)
	require.NoError(t, err)
	assert.Equal(t, int64(24), seg.RawDataSize())

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	readBack, err := readSegment(f, 0, 0)
	require.NoError(t, err)
	require.Len(t, readBack.objects, 1)
	assert.Equal(t, "/'group'/'channel'", readBack.objects[0].path)
	assert.Equal(t, DataTypeDoubleFloat, readBack.objects[0].index.dataType)
	assert.Equal(t, uint64(3), readBack.objects[0].index.numValues)
	require.Len(t, readBack.objects[0].properties, 1)
	unit, err := readBack.objects[0].properties[0].Value.AsString()
	require.NoError(t, err)
	assert.Equal(t, "V", unit)
}
