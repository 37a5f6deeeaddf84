package encoding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/transform"
)

const (
	// conversionBufferSize is the buffer used by the decoding reader.
	conversionBufferSize = 64 * 1024

	// maxLineBytes caps a single line; wordlist entries never come close.
	maxLineBytes = 1024 * 1024
)

// LineReader streams a file as UTF-8 lines, decoding from the profile's
// source encoding on the fly. Invalid byte sequences become U+FFFD rather
// than failing the file: a corrupted credential beats a dropped wordlist.
type LineReader struct {
	file         *os.File
	counting     *countingReader
	scanner      *bufio.Scanner
	replacements int64
}

// countingReader tracks raw bytes consumed from the underlying file.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// NewLineReader opens path and wraps it in a decoding, line-splitting reader.
func NewLineReader(path string, profile Profile) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	counting := &countingReader{r: f}
	decoded := transform.NewReader(counting, profile.Enc.NewDecoder())

	scanner := bufio.NewScanner(bufio.NewReaderSize(decoded, conversionBufferSize))
	scanner.Buffer(make([]byte, conversionBufferSize), maxLineBytes)

	return &LineReader{file: f, counting: counting, scanner: scanner}, nil
}

// Scan advances to the next line. It returns false at EOF or on error.
func (r *LineReader) Scan() bool {
	return r.scanner.Scan()
}

// Text returns the current line, trimmed of surrounding whitespace, and
// tallies any replacement characters the decode produced.
func (r *LineReader) Text() string {
	line := strings.TrimSpace(r.scanner.Text())
	if n := strings.Count(line, "�"); n > 0 {
		r.replacements += int64(n)
	}
	return line
}

// Err returns the first non-EOF error encountered while scanning.
func (r *LineReader) Err() error {
	return r.scanner.Err()
}

// BytesRead reports raw input bytes consumed so far.
func (r *LineReader) BytesRead() int64 {
	return r.counting.n
}

// Replacements reports how many U+FFFD substitutions the decode produced.
func (r *LineReader) Replacements() int64 {
	return r.replacements
}

// Close releases the underlying file.
func (r *LineReader) Close() error {
	return r.file.Close()
}
