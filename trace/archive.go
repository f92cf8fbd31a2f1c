package trace

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/gridpath/blobstore"
	"github.com/hupe1980/gridpath/engine"
)

// Archive stores finished traces in a blob store under a shared prefix.
// Any blobstore.Store works: in-memory for tests, local disk, MinIO or
// S3 for shared archives.
type Archive struct {
	store  blobstore.Store
	prefix string
}

// NewArchive creates an Archive over the given store. prefix is
// prepended to all trace names (e.g. "traces/").
func NewArchive(store blobstore.Store, prefix string) *Archive {
	return &Archive{
		store:  store,
		prefix: prefix,
	}
}

func (a *Archive) name(name string) string {
	return a.prefix + name
}

// Save writes a complete trace file under the given name.
func (a *Archive) Save(ctx context.Context, name string, data []byte) error {
	return a.store.Put(ctx, a.name(name), data)
}

// Load fetches and decodes a stored trace.
func (a *Archive) Load(ctx context.Context, name string) (*Trace, error) {
	return Fetch(ctx, a.store, a.name(name))
}

// Delete removes a stored trace.
func (a *Archive) Delete(ctx context.Context, name string) error {
	return a.store.Delete(ctx, a.name(name))
}

// List returns the names of all stored traces, without the prefix.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	names, err := a.store.List(ctx, a.prefix)
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		names[i] = n[len(a.prefix):]
	}
	return names, nil
}

// CapturingRecorder buffers a trace in memory so it can be archived
// after the run finishes.
type CapturingRecorder struct {
	*Recorder
	buf bytes.Buffer
}

// NewCapturingRecorder creates a memory-buffered recorder.
func NewCapturingRecorder(optFns ...func(o *Options)) (*CapturingRecorder, error) {
	cr := &CapturingRecorder{}
	rec, err := NewRecorder(&cr.buf, optFns...)
	if err != nil {
		return nil, err
	}
	cr.Recorder = rec
	return cr, nil
}

// Bytes flushes and returns the complete trace file.
func (cr *CapturingRecorder) Bytes() ([]byte, error) {
	if err := cr.Close(); err != nil {
		return nil, err
	}
	return cr.buf.Bytes(), nil
}

// ArchiveTo flushes the trace and saves it under the given name.
func (cr *CapturingRecorder) ArchiveTo(ctx context.Context, archive *Archive, name string) error {
	data, err := cr.Bytes()
	if err != nil {
		return err
	}
	return archive.Save(ctx, name, data)
}

// RunName derives a stable archive name from a run's outcome and a
// timestamp, e.g. "succeeded-20260827T100000Z".
func RunName(status engine.Status, at time.Time) string {
	return fmt.Sprintf("%s-%s", status, at.UTC().Format("20060102T150405Z"))
}
