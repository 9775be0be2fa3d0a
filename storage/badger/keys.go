package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/recall/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix = "chkrec"
	postingPrefix     = "chkterm"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makePostingKey generates a composite key for the term index.
// Format: prefix:term:id
func makePostingKey(term string, id core.ID) []byte {
	prefix := postingPrefix + ":" + term + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialPostingKey generates a prefix for scanning a term's postings.
// Format: prefix:term:
func makePartialPostingKey(term string) []byte {
	return []byte(postingPrefix + ":" + term + ":")
}

// postingChunkID extracts the chunk ID from a posting key.
func postingChunkID(key []byte, partial []byte) (core.ID, bool) {
	if len(key) != len(partial)+8 {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(key[len(partial):])), true
}

// marshalTermFrequency encodes a term frequency as a posting value.
func marshalTermFrequency(tf uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, tf)
	return buf
}

// unmarshalTermFrequency decodes a posting value.
func unmarshalTermFrequency(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("posting value must be 4 bytes, got %d", len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}
