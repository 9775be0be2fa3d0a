package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted domain types. These are written by hand
// rather than generated: only two value shapes cross the storage boundary
// (IDs and chunks) and neither contains nested domain types.

var (
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

// IDMUS serializes IDs with varint encoding.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// ChunkMUS serializes Chunks field by field in declaration order.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Content, bs[n:])
	n += metadataMUS.Marshal(c.Metadata, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	var n1 int
	c.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	c.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (chunkMUS) Size(c Chunk) int {
	return IDMUS.Size(c.Id) +
		ord.String.Size(c.Content) +
		metadataMUS.Size(c.Metadata) +
		vectorMUS.Size(c.Vector)
}
