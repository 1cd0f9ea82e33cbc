package tdms

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// tagBytes is the 4-byte magic that must begin every segment.
var tagBytes = [4]byte{'T', 'D', 'S', 'm'}

// leadInSize is the fixed on-disk size of a segment lead-in.
const leadInSize = 28

// tocFlag is a single bit in the segment Table-of-Contents bitfield.
type tocFlag uint32

const (
	tocContainsMetadata      tocFlag = 1 << 1
	tocContainsNewObjectList tocFlag = 1 << 2
	tocContainsRawData       tocFlag = 1 << 3
	tocContainsDAQMXRawData  tocFlag = 1 << 7
	tocDataIsInterleaved     tocFlag = 1 << 5
	tocIsBigEndian           tocFlag = 1 << 6
)

// segmentIncomplete marks next_segment_offset as unresolved, written by
// writers that haven't yet flushed a segment's true size.
const segmentIncomplete uint64 = 0xFFFFFFFFFFFFFFFF

// leadIn is the fixed 28-byte header at the start of every segment: the
// magic tag, ToC bitfield, format version, and the two offsets that bound
// the segment's metadata and raw data.
type leadIn struct {
	toc               tocFlag
	versionNumber     uint32
	nextSegmentOffset uint64 // relative to the end of the lead-in
	rawDataOffset     uint64 // relative to the end of the lead-in
}

func (t tocFlag) has(bit tocFlag) bool { return t&bit != 0 }

func (l leadIn) byteOrder() ByteOrder {
	if l.toc.has(tocIsBigEndian) {
		return BigEndian
	}
	return LittleEndian
}

func (l leadIn) hasMetadata() bool { return l.toc.has(tocContainsMetadata) }
func (l leadIn) hasNewObjectList() bool { return l.toc.has(tocContainsNewObjectList) }
func (l leadIn) hasRawData() bool { return l.toc.has(tocContainsRawData) }
func (l leadIn) hasDAQmxRawData() bool { return l.toc.has(tocContainsDAQMXRawData) }
func (l leadIn) isInterleaved() bool { return l.toc.has(tocDataIsInterleaved) }

// readLeadIn reads and validates the 28-byte segment lead-in starting at
// the reader's current position. Returns ErrEndOfFile if the stream ends
// cleanly before any bytes of a new lead-in are read (a normal scan
// terminator), or ErrHeaderPatternNotMatched if a partial or corrupt
// lead-in is found.
func readLeadIn(r io.Reader) (leadIn, error) {
	var buf [leadInSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return leadIn{}, ErrEndOfFile
		}
		return leadIn{}, errors.Join(ErrHeaderPatternNotMatched, err)
	}

	if !bytes.Equal(buf[0:4], tagBytes[:]) {
		return leadIn{}, ErrHeaderPatternNotMatched
	}

	// The ToC and version fields are always little-endian; the two
	// offsets below, and the metadata and raw data that follow the
	// lead-in, use the byte order the ToC's big-endian bit selects.
	toc := tocFlag(binary.LittleEndian.Uint32(buf[4:8]))
	version := binary.LittleEndian.Uint32(buf[8:12])

	if version != 4712 && version != 4713 {
		return leadIn{}, ErrUnsupportedVersion
	}

	order := ByteOrder(LittleEndian)
	if toc.has(tocIsBigEndian) {
		order = BigEndian
	}

	nextSegmentOffset := order.Uint64(buf[12:20])
	rawDataOffset := order.Uint64(buf[20:28])

	return leadIn{
		toc:               toc,
		versionNumber:     version,
		nextSegmentOffset: nextSegmentOffset,
		rawDataOffset:     rawDataOffset,
	}, nil
}

// writeLeadIn serializes a lead-in. The offsets must already hold their
// final values: writeSegment computes the metadata and raw data sizes
// before writing, so the lead-in is written once and never rewritten.
func writeLeadIn(w io.Writer, l leadIn) error {
	var buf [leadInSize]byte
	copy(buf[0:4], tagBytes[:])
	binary.LittleEndian.PutUint32(buf[4:8], uint32(l.toc))
	binary.LittleEndian.PutUint32(buf[8:12], l.versionNumber)

	order := l.byteOrder()
	order.PutUint64(buf[12:20], l.nextSegmentOffset)
	order.PutUint64(buf[20:28], l.rawDataOffset)

	_, err := w.Write(buf[:])
	if err != nil {
		return errors.Join(ErrIOError, err)
	}
	return nil
}
