// Package blobstore provides storage abstraction for gridpath's
// immutable trace archives.
//
// Store is the interface for reading and writing data blobs (trace
// files). Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: In-memory store for testing
//   - LocalStore: Local filesystem with atomic writes
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 with range reads and parallel uploads
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)            // Open for reading
//	    Create(ctx, name) (WritableBlob, error)  // Create for streaming writes
//	    Put(ctx, name, data) error               // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// For cloud backends, implement ReadRange for efficient partial reads.
package blobstore
