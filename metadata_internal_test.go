package tdms

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSegmentMetadataRoundTrip(t *testing.T) {
	order := ByteOrder(LittleEndian)

	records := []objectRecord{
		{
			path: "/'group'",
			properties: []Property{
				{Name: "description", Value: PropertyValue{typ: DataTypeString, data: "a group"}},
			},
		},
		{
			path: "/'group'/'voltage'",
			index: rawDataIndex{
				kind:      rawIndexKindExplicit,
				dataType:  DataTypeDoubleFloat,
				dimension: 1,
				numValues: 5,
			},
			properties: []Property{
				{Name: "unit_string", Value: PropertyValue{typ: DataTypeString, data: "V"}},
				{Name: "gain", Value: PropertyValue{typ: DataTypeSingleFloat, data: float32(2.5)}},
			},
		},
		{
			path: "/'group'/'flag'",
			index: rawDataIndex{
				kind: rawIndexKindMatchPrevious,
			},
			properties: []Property{},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSegmentMetadata(&buf, order, records))

	got, err := readSegmentMetadata(&buf, order)
	require.NoError(t, err)

	if diff := cmp.Diff(records, got, cmp.AllowUnexported(objectRecord{}, rawDataIndex{}, Property{}, PropertyValue{})); diff != "" {
		t.Fatalf("metadata round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPropertyValueTypes(t *testing.T) {
	order := ByteOrder(LittleEndian)

	cases := []Property{
		{Name: "i32", Value: PropertyValue{typ: DataTypeI32, data: int32(-7)}},
		{Name: "u64", Value: PropertyValue{typ: DataTypeU64, data: uint64(42)}},
		{Name: "flag", Value: PropertyValue{typ: DataTypeBoolean, data: true}},
		{Name: "name", Value: PropertyValue{typ: DataTypeString, data: "hello"}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeProperties(&buf, order, cases))

	got, err := readProperties(&buf, order)
	require.NoError(t, err)

	if diff := cmp.Diff(cases, got, cmp.AllowUnexported(Property{}, PropertyValue{})); diff != "" {
		t.Fatalf("property round trip mismatch (-want +got):\n%s", diff)
	}
}
