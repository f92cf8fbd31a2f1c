// Package trace records search runs as compact, self-describing files
// and replays them.
//
// A trace is a header (codec name, compression) followed by a
// compressed stream of length-prefixed step records. Traces are
// immutable observability artifacts: they capture what a run did, they
// are never fed back into an engine.
package trace

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/gridpath/codec"
	"github.com/hupe1980/gridpath/engine"
)

var (
	// ErrRecorderClosed is returned when recording to a closed Recorder.
	ErrRecorderClosed = errors.New("trace: recorder is closed")

	// ErrBadHeader is returned when a trace file's header is malformed.
	ErrBadHeader = errors.New("trace: bad header")

	// ErrUnknownCodec is returned when a trace names a codec this build
	// does not provide.
	ErrUnknownCodec = errors.New("trace: unknown codec")
)

// magic identifies a gridpath trace file, followed by a version byte.
var magic = [4]byte{'G', 'P', 'T', 'R'}

const formatVersion = 1

// Options configures a Recorder.
type Options struct {
	// Codec encodes individual step records. Defaults to codec.Default.
	Codec codec.Codec

	// Compression selects the block compression. Defaults to ZSTD.
	Compression Compression

	// BlockSize is the uncompressed block size in bytes.
	BlockSize int
}

// DefaultOptions are the options used when none are supplied.
var DefaultOptions = Options{
	Compression: CompressionZSTD,
}

// Recorder writes step snapshots to a trace stream. It implements the
// root package's StepRecorder and is safe for concurrent use, though
// records are written in call order; interleaving runs is the caller's
// mistake to avoid.
type Recorder struct {
	mu     sync.Mutex
	bw     *blockWriter
	codec  codec.Codec
	steps  int
	closed bool
}

// NewRecorder creates a Recorder writing to w. The header is written
// immediately; Close must be called to flush the final block.
func NewRecorder(w io.Writer, optFns ...func(o *Options)) (*Recorder, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	if err := writeHeader(w, opts); err != nil {
		return nil, err
	}

	return &Recorder{
		bw:    newBlockWriter(w, opts.Compression, opts.BlockSize),
		codec: opts.Codec,
	}, nil
}

func writeHeader(w io.Writer, opts Options) error {
	name := opts.Codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("%w: codec name too long", ErrBadHeader)
	}

	header := make([]byte, 0, len(magic)+3+len(name))
	header = append(header, magic[:]...)
	header = append(header, formatVersion, byte(opts.Compression), byte(len(name)))
	header = append(header, name...)

	_, err := w.Write(header)
	return err
}

// Record appends one snapshot to the trace.
func (r *Recorder) Record(ctx context.Context, snap engine.StepSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec, err := FromSnapshot(snap)
	if err != nil {
		return err
	}
	return r.RecordStep(rec)
}

// RecordStep appends an already converted record.
func (r *Recorder) RecordStep(rec StepRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRecorderClosed
	}

	data, err := r.codec.Marshal(rec)
	if err != nil {
		return err
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := r.bw.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := r.bw.Write(data); err != nil {
		return err
	}

	r.steps++
	return nil
}

// Steps returns the number of records written so far.
func (r *Recorder) Steps() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.steps
}

// Close flushes buffered blocks. The underlying writer is not closed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.bw.Flush()
}
