package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the encoding of an input stream.
type Compression uint8

const (
	// CompressionAuto sniffs the magic bytes.
	CompressionAuto Compression = iota
	// CompressionNone reads the stream as plain text.
	CompressionNone
	// CompressionGzip is RFC 1952 gzip.
	CompressionGzip
	// CompressionZstd is Zstandard.
	CompressionZstd
	// CompressionLZ4 is the LZ4 frame format.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect inspects the leading bytes of a stream.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, magicZstd):
		return CompressionZstd
	case bytes.HasPrefix(head, magicLZ4):
		return CompressionLZ4
	case bytes.HasPrefix(head, magicGzip):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

func decompress(r io.Reader, c Compression) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	if c == CompressionAuto {
		// A short stream cannot carry a magic number; Peek's error only
		// tells us that.
		head, _ := br.Peek(len(magicZstd))
		c = Detect(head)
	}

	switch c {
	case CompressionNone:
		return io.NopCloser(br), c, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("gzip: %w", err)
		}
		return zr, c, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, c, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), c, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	default:
		return nil, c, fmt.Errorf("unsupported compression: %v", c)
	}
}
