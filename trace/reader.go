package trace

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/gridpath/blobstore"
	"github.com/hupe1980/gridpath/codec"
)

// Trace is a fully decoded run recording.
type Trace struct {
	// CodecName is the codec the records were written with.
	CodecName string

	// Compression is the block compression of the source file.
	Compression Compression

	// Records are the step records in recording order.
	Records []StepRecord
}

// Final returns the terminal record, or false when the trace holds no
// terminated step (a run abandoned mid-flight).
func (t *Trace) Final() (StepRecord, bool) {
	for i := len(t.Records) - 1; i >= 0; i-- {
		if t.Records[i].Done() {
			return t.Records[i], true
		}
	}
	return StepRecord{}, false
}

// Decode parses a complete trace file.
func Decode(data []byte) (*Trace, error) {
	if len(data) < len(magic)+3 || !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, ErrBadHeader
	}

	version := data[len(magic)]
	if version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadHeader, version)
	}

	compression := Compression(data[len(magic)+1])
	nameLen := int(data[len(magic)+2])
	headerLen := len(magic) + 3 + nameLen
	if len(data) < headerLen {
		return nil, ErrBadHeader
	}
	codecName := string(data[len(magic)+3 : headerLen])

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	raw, err := decompressAll(data[headerLen:], compression)
	if err != nil {
		return nil, err
	}

	t := &Trace{
		CodecName:   codecName,
		Compression: compression,
	}

	offset := 0
	for offset < len(raw) {
		if offset+4 > len(raw) {
			return nil, fmt.Errorf("trace: truncated record length at offset %d", offset)
		}
		recLen := int(binary.LittleEndian.Uint32(raw[offset:]))
		offset += 4

		if offset+recLen > len(raw) {
			return nil, fmt.Errorf("trace: truncated record at offset %d", offset)
		}

		var rec StepRecord
		if err := c.Unmarshal(raw[offset:offset+recLen], &rec); err != nil {
			return nil, err
		}
		t.Records = append(t.Records, rec)
		offset += recLen
	}

	return t, nil
}

// Fetch loads and decodes a trace from a blob store.
func Fetch(ctx context.Context, store blobstore.Store, name string) (*Trace, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
