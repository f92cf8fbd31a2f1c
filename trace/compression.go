package trace

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the block compression algorithm of a trace file.
type Compression uint8

const (
	// CompressionNone stores blocks uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for live recording).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, good for archives).
	CompressionZSTD Compression = 2
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 means the block is stored raw.
const blockHeaderSize = 8

// compressBlock compresses one block, falling back to raw storage when
// compression does not pay off (ratio > 0.9) or the type is none.
func compressBlock(data []byte, compression Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionLZ4:
		maxSize := lz4.CompressBlockBound(len(data))
		buf := make([]byte, maxSize)
		var n int
		n, err = lz4.CompressBlock(data, buf, nil)
		if n > 0 {
			compressed = buf[:n]
		}
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	}

	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0) // 0 = raw
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

// blockWriter buffers record bytes and emits compressed blocks.
type blockWriter struct {
	w           io.Writer
	compression Compression
	blockSize   int
	buffer      *bytes.Buffer
	written     int64
}

func newBlockWriter(w io.Writer, compression Compression, blockSize int) *blockWriter {
	if blockSize <= 0 {
		blockSize = 64 * 1024 // 64KB default, snapshots are small
	}
	return &blockWriter{
		w:           w,
		compression: compression,
		blockSize:   blockSize,
		buffer:      bytes.NewBuffer(make([]byte, 0, blockSize)),
	}
}

func (c *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := c.blockSize - c.buffer.Len()
		if space <= 0 {
			if err := c.flushBlock(); err != nil {
				return total, err
			}
			space = c.blockSize
		}

		toWrite := len(p)
		if toWrite > space {
			toWrite = space
		}

		n, err := c.buffer.Write(p[:toWrite])
		if err != nil {
			return total, err
		}
		total += n
		p = p[n:]
	}
	return total, nil
}

func (c *blockWriter) flushBlock() error {
	if c.buffer.Len() == 0 {
		return nil
	}

	compressed, err := compressBlock(c.buffer.Bytes(), c.compression)
	if err != nil {
		return err
	}

	n, err := c.w.Write(compressed)
	if err != nil {
		return err
	}
	c.written += int64(n)
	c.buffer.Reset()
	return nil
}

// Flush writes any remaining buffered data.
func (c *blockWriter) Flush() error {
	return c.flushBlock()
}

// decompressAll expands a block stream back into the raw record bytes.
func decompressAll(data []byte, compression Compression) ([]byte, error) {
	var result []byte
	offset := 0

	for offset < len(data) {
		if offset+blockHeaderSize > len(data) {
			return nil, errors.New("trace: truncated block header")
		}

		uncompressedSize := binary.LittleEndian.Uint32(data[offset:])
		compressedSize := binary.LittleEndian.Uint32(data[offset+4:])
		offset += blockHeaderSize

		if compressedSize == 0 {
			if offset+int(uncompressedSize) > len(data) {
				return nil, errors.New("trace: block extends beyond data")
			}
			result = append(result, data[offset:offset+int(uncompressedSize)]...)
			offset += int(uncompressedSize)
			continue
		}

		if offset+int(compressedSize) > len(data) {
			return nil, errors.New("trace: compressed block extends beyond data")
		}
		compressedData := data[offset : offset+int(compressedSize)]
		offset += int(compressedSize)

		block := make([]byte, uncompressedSize)
		switch compression {
		case CompressionZSTD:
			dec := getZstdDecoder()
			decoded, err := dec.DecodeAll(compressedData, block[:0])
			putZstdDecoder(dec)
			if err != nil {
				return nil, err
			}
			if uint32(len(decoded)) != uncompressedSize {
				return nil, errors.New("trace: decompressed size mismatch")
			}
			result = append(result, decoded...)

		default: // LZ4
			n, err := lz4.UncompressBlock(compressedData, block)
			if err != nil {
				return nil, err
			}
			if uint32(n) != uncompressedSize {
				return nil, errors.New("trace: decompressed size mismatch")
			}
			result = append(result, block...)
		}
	}

	return result, nil
}
