package tdms

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// DataLocation points at one contiguous run of a channel's raw values
// within a single segment's raw data block.
// A channel accumulates one DataLocation per segment that carries its raw
// data; reading a range of values walks only the locations that overlap
// the requested range instead of rescanning the whole file.
type DataLocation struct {
	SegmentIndex int
	StartValue   uint64 // first global value index this location covers
	NumValues    uint64 // total values across all chunks in this location

	rawDataStart  int64
	chunkValues   uint64 // values per chunk for this object
	chunkByteSize int    // total bytes per chunk, across all objects in the segment
	numChunks     uint64
	valueSize     int
	offset        int // byte offset of this object's first value within a chunk/row
	stride        int // byte stride between successive values of this object
	interleaved   bool
	order         ByteOrder
	dataType      LogicalType
}

// ObjectData is everything the index knows about one object path: its
// merged properties and, for channels, its accumulated raw-data
// locations and total value count.
type ObjectData struct {
	Path       string
	DataType   LogicalType
	TotalValues uint64

	properties     []Property
	propertyIndex  map[string]int
	locations      []DataLocation
}

// Properties returns the object's current properties, later segments'
// values for the same name having overwritten earlier ones, in the order
// each name was first seen.
func (o *ObjectData) Properties() []Property {
	out := make([]Property, len(o.properties))
	copy(out, o.properties)
	return out
}

func (o *ObjectData) setProperty(p Property) {
	if o.propertyIndex == nil {
		o.propertyIndex = make(map[string]int)
	}
	if i, ok := o.propertyIndex[p.Name]; ok {
		o.properties[i] = p
		return
	}
	o.propertyIndex[p.Name] = len(o.properties)
	o.properties = append(o.properties, p)
}

// index is the file façade's in-memory scan result: every object seen
// across every segment, keyed by path, plus the group/channel hierarchy
// derived from path grammar. It is rebuilt by a single sequential scan on
// Open and extended incrementally as segments are appended by a Writer.
type index struct {
	objects  map[string]*ObjectData
	groups   []string
	channels map[string][]string // group path -> ordered channel paths

	segments []Segment

	activeList   []string                // ordered active object paths
	lastExplicit map[string]rawDataIndex // path -> most recent explicit raw index

	fingerprint uint64 // xxhash of the current active list, for fast write-path comparison
}

func newIndex() *index {
	return &index{
		objects:      make(map[string]*ObjectData),
		channels:     make(map[string][]string),
		lastExplicit: make(map[string]rawDataIndex),
	}
}

func (ix *index) objectFor(path string) *ObjectData {
	obj, ok := ix.objects[path]
	if !ok {
		obj = &ObjectData{Path: path}
		ix.objects[path] = obj
		ix.registerPath(path)
	}
	return obj
}

func (ix *index) registerPath(path string) {
	groupName, channelName, err := ParsePath(path)
	if err != nil || groupName == "" {
		return
	}
	groupPath := FormatPath(groupName, "")
	if _, ok := ix.channels[groupPath]; !ok {
		ix.groups = append(ix.groups, groupPath)
		sort.Strings(ix.groups)
	}
	if channelName == "" {
		return
	}
	for _, existing := range ix.channels[groupPath] {
		if existing == path {
			return
		}
	}
	ix.channels[groupPath] = append(ix.channels[groupPath], path)
}

// addSegment folds one parsed segment into the index: resolves its active
// object list (applying new-object-list / match-previous / explicit
// rules), computes each active channel's chunk geometry, and appends a
// DataLocation to every channel that carries raw data in this segment
//.
func (ix *index) addSegment(seg Segment) error {
	seg.Index = len(ix.segments)

	resolved, err := ix.resolveActiveList(seg)
	if err != nil {
		return err
	}
	ix.activeList = resolved
	ix.fingerprint = fingerprintActiveList(resolved)

	for _, rec := range seg.objects {
		obj := ix.objectFor(rec.path)
		for _, p := range rec.properties {
			obj.setProperty(p)
		}
		if rec.index.kind == rawIndexKindExplicit || rec.index.kind == rawIndexKindDAQmx {
			obj.DataType = rec.index.dataType
		}
	}

	if seg.leadIn.hasRawData() {
		if err := ix.recordChunks(seg); err != nil {
			return err
		}
	}

	ix.segments = append(ix.segments, seg)
	return nil
}

// resolveActiveList computes the ordered list of object paths active for
// seg, applying the new-object-list reset and match-previous rules. It
// returns the resolved raw-data index for each still-active path by
// updating ix.lastExplicit as a side effect.
func (ix *index) resolveActiveList(seg Segment) ([]string, error) {
	var base []string
	if !seg.HasNewObjectList() {
		base = append(base, ix.activeList...)
	}

	order := make([]string, 0, len(base)+len(seg.objects))
	seen := make(map[string]bool, len(base)+len(seg.objects))
	order = append(order, base...)
	for _, p := range base {
		seen[p] = true
	}

	for _, rec := range seg.objects {
		resolvedKind := rec.index.kind

		switch resolvedKind {
		case rawIndexKindExplicit, rawIndexKindDAQmx:
			ix.lastExplicit[rec.path] = rec.index
		case rawIndexKindMatchPrevious:
			prev, ok := ix.lastExplicit[rec.path]
			if !ok {
				return nil, ErrNoPreviousType
			}
			_ = prev // resolution confirms existence; geometry is looked up again in recordChunks
		}

		if resolvedKind == rawIndexKindNone {
			continue
		}
		if !seen[rec.path] {
			seen[rec.path] = true
			order = append(order, rec.path)
		}
	}

	return order, nil
}

// recordChunks computes this segment's chunk geometry for every raw-data
// contributing object in the active list and appends one DataLocation per
// object.
func (ix *index) recordChunks(seg Segment) error {
	type contributor struct {
		path      string
		dataType  LogicalType
		numValues uint64
		valueSize int
	}

	var contributors []contributor
	for _, path := range ix.activeList {
		idx, ok := ix.lastExplicit[path]
		if !ok {
			continue
		}
		if idx.dataType == DataTypeDAQmxRawData || idx.dataType == DataTypeFixedPoint || idx.dataType == DataTypeString {
			// None of these types' on-disk byte footprint is something this
			// library interprets. Computing layout
			// offsets for sibling channels in the same segment would
			// require knowing that footprint, so instead of guessing
			// and silently corrupting every other channel's geometry,
			// refuse the whole segment's raw data layout outright.
			return fmt.Errorf("%w: object %s uses %s raw data", ErrUnsupportedType, path, idx.dataType.Name())
		}
		if idx.numValues == 0 {
			continue
		}
		contributors = append(contributors, contributor{
			path:      path,
			dataType:  idx.dataType,
			numValues: idx.numValues,
			valueSize: idx.dataType.Size(),
		})
	}

	if len(contributors) == 0 {
		if seg.RawDataSize() > 0 {
			return ErrSegmentTocDataBlockWithoutDataChannels
		}
		return nil
	}

	interleaved := seg.leadIn.isInterleaved()
	order := seg.ByteOrder()

	var chunkSize int
	if interleaved {
		for _, c := range contributors {
			if c.numValues != contributors[0].numValues {
				return ErrBadDataBlockLength
			}
			chunkSize += c.valueSize
		}
		chunkSize *= int(contributors[0].numValues)
	} else {
		for _, c := range contributors {
			chunkSize += c.valueSize * int(c.numValues)
		}
	}
	if chunkSize == 0 {
		return ErrChunkSizeOverflow
	}

	rawSize := seg.RawDataSize()
	if rawSize%int64(chunkSize) != 0 {
		return ErrBadDataBlockLength
	}
	numChunks := uint64(rawSize / int64(chunkSize))

	offset := 0
	rowSize := 0
	for _, c := range contributors {
		rowSize += c.valueSize
	}

	for _, c := range contributors {
		var stride int
		if interleaved {
			stride = rowSize
		} else {
			stride = c.valueSize
		}

		obj := ix.objectFor(c.path)
		loc := DataLocation{
			SegmentIndex:  seg.Index,
			StartValue:    obj.TotalValues,
			NumValues:     c.numValues * numChunks,
			rawDataStart:  seg.rawDataStart,
			chunkValues:   c.numValues,
			chunkByteSize: chunkSize,
			numChunks:     numChunks,
			valueSize:     c.valueSize,
			offset:        offset,
			stride:        stride,
			interleaved:   interleaved,
			order:         order,
			dataType:      c.dataType,
		}
		obj.locations = append(obj.locations, loc)
		obj.TotalValues += loc.NumValues
		obj.DataType = c.dataType

		if interleaved {
			offset += c.valueSize
		} else {
			offset += c.valueSize * int(c.numValues)
		}
	}

	return nil
}

// fingerprintActiveList hashes an ordered path list so the writer can
// cheaply check "does this segment's active list match the previous
// one" before doing a full slice comparison.
func fingerprintActiveList(paths []string) uint64 {
	h := xxhash.New()
	for _, p := range paths {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// planWrite reports what a writer needs to know about an upcoming write of
// paths (in the order they'll be written, each paired with the format
// formats[i] describes): whether the sequence exactly matches the current
// active list, and, for each path, whether its requested format matches the
// format last recorded for it (so the writer can emit MatchPrevious instead
// of a full index). Neither decision depends on the other — a path can
// resolve MatchPrevious even when the active list as a whole has changed.
func (ix *index) planWrite(paths []string, formats []rawDataIndex) (sameActiveList bool, matchesPrevious []bool) {
	sameActiveList = len(paths) == len(ix.activeList) && fingerprintActiveList(paths) == ix.fingerprint
	for i := 0; sameActiveList && i < len(paths); i++ {
		sameActiveList = paths[i] == ix.activeList[i]
	}

	matchesPrevious = make([]bool, len(paths))
	for i, p := range paths {
		prev, ok := ix.lastExplicit[p]
		matchesPrevious[i] = ok && formatsEqual(prev, formats[i])
	}
	return sameActiveList, matchesPrevious
}

func formatsEqual(a, b rawDataIndex) bool {
	return a.dataType == b.dataType && a.dimension == b.dimension &&
		a.numValues == b.numValues && a.byteSize == b.byteSize
}
