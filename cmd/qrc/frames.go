package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// 64-bit (8 bytes) frame header:
// bytes 0..3: frame index (uint32 BE)
// bytes 4..7: total frames (uint32 BE)
const frameHeaderSize = 8

// splitFrames cuts data into frames of at most chunkSize bytes, header
// included. A chunkSize of zero, or data that fits in one chunk, yields a
// single frame without header.
func splitFrames(data []byte, chunkSize int) ([][]byte, error) {
	if chunkSize == 0 || len(data) <= chunkSize {
		return [][]byte{data}, nil
	}
	if chunkSize <= frameHeaderSize {
		return nil, fmt.Errorf("chunk size must be greater than %d (header size)", frameHeaderSize)
	}
	payloadPerFrame := chunkSize - frameHeaderSize
	total := (len(data) + payloadPerFrame - 1) / payloadPerFrame

	frames := make([][]byte, 0, total)
	for idx := 0; idx < total; idx++ {
		start := idx * payloadPerFrame
		end := min(start+payloadPerFrame, len(data))
		chunk := data[start:end]

		buf := make([]byte, frameHeaderSize+len(chunk))
		binary.BigEndian.PutUint32(buf[0:4], uint32(idx))
		binary.BigEndian.PutUint32(buf[4:8], uint32(total))
		copy(buf[frameHeaderSize:], chunk)
		frames = append(frames, buf)
	}
	return frames, nil
}

// parseFrameHeader returns the payload without header, the index and the total.
func parseFrameHeader(frame []byte) (payload []byte, idx int, total int, err error) {
	if len(frame) < frameHeaderSize {
		return nil, 0, 0, errors.New("frame too small for 8-byte header")
	}
	idx32 := binary.BigEndian.Uint32(frame[0:4])
	total32 := binary.BigEndian.Uint32(frame[4:8])
	if total32 == 0 || idx32 >= total32 {
		return nil, 0, 0, errors.New("invalid frame header")
	}
	return frame[frameHeaderSize:], int(idx32), int(total32), nil
}

// reassembleFrames orders frames by header and concatenates their payloads.
// A single frame without a valid header is returned as-is.
func reassembleFrames(frames [][]byte) ([]byte, int, error) {
	if len(frames) == 0 {
		return nil, 0, errors.New("no frames")
	}
	type frameInfo struct {
		idx  int
		data []byte
	}
	parsed := make([]frameInfo, 0, len(frames))
	expected := 0
	for _, fr := range frames {
		p, idx, total, err := parseFrameHeader(fr)
		if err != nil {
			if len(frames) == 1 {
				return fr, 1, nil
			}
			return nil, 0, fmt.Errorf("bad frame header: %w", err)
		}
		if expected == 0 {
			expected = total
		}
		if total != expected {
			return nil, 0, errors.New("inconsistent total frames across frames")
		}
		parsed = append(parsed, frameInfo{idx: idx, data: p})
	}
	if len(parsed) != expected {
		return nil, 0, fmt.Errorf("decoded %d of %d frames", len(parsed), expected)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].idx < parsed[j].idx })
	var out []byte
	for i, f := range parsed {
		if f.idx != i {
			return nil, 0, fmt.Errorf("frame %d missing", i)
		}
		out = append(out, f.data...)
	}
	return out, expected, nil
}
