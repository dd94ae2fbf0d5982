// Package stream provides the byte-stream input contract the core
// requires: forward line reads, absolute rewind-to-zero, and
// line-count introspection, with transparent decompression. Since
// compressed readers are not themselves seekable, and the chunked
// reader's bounded-memory requirement rules out loading a whole file
// into memory, Open re-opens and re-decompresses the underlying file
// on every Rewind instead.
package stream

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Compression identifies a stream's compression format.
type Compression int

const (
	None Compression = iota
	Gzip
	Bzip2
	XZ
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case XZ:
		return "xz"
	default:
		return "none"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

var extensions = map[string]Compression{
	".gz":  Gzip,
	".bz2": Bzip2,
	".xz":  XZ,
}

// DetectByExtension maps a file's extension to a Compression, falling
// back to None for unrecognised extensions.
func DetectByExtension(path string) Compression {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// DetectByMagic reports the compression format indicated by the
// leading bytes in header, or None if no known magic prefix matches.
func DetectByMagic(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	case bytes.HasPrefix(header, bzip2Magic):
		return Bzip2
	case bytes.HasPrefix(header, xzMagic):
		return XZ
	default:
		return None
	}
}

// Source is the line-oriented, rewindable, line-counting stream the
// sniffer and reader consume.
type Source struct {
	path        string
	compression Compression
	file        *os.File
	decomp      io.Reader
	scanner     *bufio.Scanner
}

// Open opens path, detecting compression by magic bytes first and
// falling back to the file extension, and returns a Source positioned
// at line 0.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stream: open %q: %w", path, err)
	}

	header := make([]byte, 6)
	n, _ := io.ReadFull(f, header)
	compression := DetectByMagic(header[:n])
	if compression == None {
		compression = DetectByExtension(path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("stream: seek %q: %w", path, err)
	}

	s := &Source{path: path, compression: compression, file: f}
	if err := s.reopenDecompressor(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Compression reports the detected compression of this Source.
func (s *Source) Compression() Compression {
	return s.compression
}

func (s *Source) reopenDecompressor() error {
	switch s.compression {
	case Gzip:
		gz, err := gzip.NewReader(s.file)
		if err != nil {
			return fmt.Errorf("stream: gzip reader for %q: %w", s.path, err)
		}
		s.decomp = gz
	case Bzip2:
		s.decomp = bzip2.NewReader(s.file)
	case XZ:
		xzr, err := xz.NewReader(s.file)
		if err != nil {
			return fmt.Errorf("stream: xz reader for %q: %w", s.path, err)
		}
		s.decomp = xzr
	default:
		s.decomp = s.file
	}
	s.scanner = bufio.NewScanner(s.decomp)
	s.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return nil
}

// ReadLine returns the next line (without its terminator), or io.EOF
// once the stream is exhausted.
func (s *Source) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("stream: read %q: %w", s.path, err)
	}
	return "", io.EOF
}

// Rewind seeks the underlying file back to offset 0 and rebuilds the
// decompressing reader, since compressed readers are not themselves
// seekable.
func (s *Source) Rewind() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("stream: rewind %q: %w", s.path, err)
	}
	return s.reopenDecompressor()
}

// LineCount counts the lines in the stream, then rewinds (seek to 0,
// count, seek back).
func (s *Source) LineCount() (int, error) {
	if err := s.Rewind(); err != nil {
		return 0, err
	}
	count := 0
	for {
		_, err := s.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, s.Rewind()
}

// Close releases the underlying file.
func (s *Source) Close() error {
	if closer, ok := s.decomp.(io.Closer); ok && s.decomp != io.Reader(s.file) {
		closer.Close()
	}
	return s.file.Close()
}
