package tdms

import (
	"errors"
	"io"
)

// Segment is one parsed segment of a TDMS file: its lead-in, the object
// records declared in its metadata block (if any), and the absolute
// stream offsets bounding its raw data.
type Segment struct {
	Index int // 0-based position among the file's segments

	startOffset  int64 // absolute offset of the lead-in's first byte
	leadIn       leadIn
	objects      []objectRecord
	rawDataStart int64 // absolute offset where raw data begins
	rawDataEnd   int64 // absolute offset one past the segment's raw data
}

// ByteOrder reports the byte order this segment's metadata and raw data
// were encoded in.
func (s Segment) ByteOrder() ByteOrder { return s.leadIn.byteOrder() }

// HasNewObjectList reports whether this segment replaces the active
// object list rather than extending the previous segment's.
func (s Segment) HasNewObjectList() bool { return s.leadIn.hasNewObjectList() }

// RawDataSize returns the number of raw data bytes in this segment.
func (s Segment) RawDataSize() int64 { return s.rawDataEnd - s.rawDataStart }

// readSegment reads one segment starting at the reader's current absolute
// position. startOffset must equal that position (the caller tracks it,
// since io.Reader alone doesn't expose Tell). Returns ErrEndOfFile when
// there is no further segment to read.
func readSegment(r io.Reader, startOffset int64, index int) (Segment, error) {
	li, err := readLeadIn(r)
	if err != nil {
		return Segment{}, err
	}

	order := li.byteOrder()

	var objects []objectRecord
	if li.hasMetadata() {
		objects, err = readSegmentMetadata(r, order)
		if err != nil {
			return Segment{}, err
		}
	}

	rawDataStart := startOffset + leadInSize + int64(li.rawDataOffset)

	var rawDataEnd int64
	if li.nextSegmentOffset == segmentIncomplete {
		// A writer crashed or was still appending; treat the segment as
		// ending exactly where its raw data offset says it should, with
		// no further segments to read after it.
		rawDataEnd = rawDataStart
	} else {
		rawDataEnd = startOffset + leadInSize + int64(li.nextSegmentOffset)
	}

	if !li.hasRawData() && rawDataEnd != rawDataStart {
		return Segment{}, ErrInvalidFileFormat
	}

	return Segment{
		Index:        index,
		startOffset:  startOffset,
		leadIn:       li,
		objects:      objects,
		rawDataStart: rawDataStart,
		rawDataEnd:   rawDataEnd,
	}, nil
}

// segmentEnd returns the absolute offset of the byte immediately after
// this segment, i.e. where the next segment's lead-in would start.
func (s Segment) segmentEnd() int64 {
	if s.leadIn.nextSegmentOffset == segmentIncomplete {
		return s.rawDataEnd
	}
	return s.startOffset + leadInSize + int64(s.leadIn.nextSegmentOffset)
}

// writeSegment writes a complete segment (lead-in, metadata, and raw
// data bytes already framed by the caller) at the writer's current
// position, returning the absolute offsets of the written segment. The
// writer computes exact sizes before writing a single byte so the
// lead-in's offsets never need a second pass. newObjectList controls
// whether this segment resets the active object list (the caller's
// requested path sequence differs from the one currently active) or
// extends it (the sequence is unchanged, so unchanged channels can be
// written as MatchPrevious instead of a full index).
func writeSegment(w io.WriteSeeker, startOffset int64, objects []objectRecord, rawData []byte, bigEndian, interleaved, newObjectList bool) (Segment, error) {
	order := ByteOrder(LittleEndian)
	toc := tocContainsMetadata
	if newObjectList {
		toc |= tocContainsNewObjectList
	}
	if len(rawData) > 0 {
		toc |= tocContainsRawData
	}
	if interleaved {
		toc |= tocDataIsInterleaved
	}
	if bigEndian {
		toc |= tocIsBigEndian
		order = BigEndian
	}

	metadataSize := 4
	for _, rec := range objects {
		metadataSize += recordByteSize(rec)
	}

	li := leadIn{
		toc:               toc,
		versionNumber:     4713,
		rawDataOffset:     uint64(metadataSize),
		nextSegmentOffset: uint64(metadataSize + len(rawData)),
	}

	if err := writeLeadIn(w, li); err != nil {
		return Segment{}, err
	}
	if err := writeSegmentMetadata(w, order, objects); err != nil {
		return Segment{}, err
	}
	if len(rawData) > 0 {
		if _, err := w.Write(rawData); err != nil {
			return Segment{}, errors.Join(ErrIOError, err)
		}
	}

	rawDataStart := startOffset + leadInSize + int64(metadataSize)
	rawDataEnd := rawDataStart + int64(len(rawData))

	return Segment{
		startOffset:  startOffset,
		leadIn:       li,
		objects:      objects,
		rawDataStart: rawDataStart,
		rawDataEnd:   rawDataEnd,
	}, nil
}
