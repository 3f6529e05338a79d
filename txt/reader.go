// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package txt reads whitespace delimited LiDAR listings in chunks and writes
// comma separated subset files.
package txt

import (
	"bufio"
	"io"
	"strings"

	"github.com/pilosa/lidarclip"
	"github.com/pkg/errors"
)

const (
	// ErrNoHeader is returned by NewReader for an input without a header row.
	ErrNoHeader = lidarclip.Error("input has no header row")
	// ErrBadHeader is returned by NewReader when the header does not name
	// each of the lidarclip columns exactly once.
	ErrBadHeader = lidarclip.Error("bad header")
)

// DefaultChunkSize is the number of rows read per chunk.
const DefaultChunkSize = 512000

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Reader reads rows from a whitespace delimited listing, one chunk at a time.
// It implements lidarclip.ChunkSource.
type Reader struct {
	scan *bufio.Scanner
	size int
	line int

	// cols maps input field position to column.
	cols []lidarclip.Column
	buf  []lidarclip.Row
}

// NewReader reads and validates the header from r and returns a Reader which
// will return chunks of up to chunkSize rows.
func NewReader(r io.Reader, chunkSize int) (*Reader, error) {
	if chunkSize < 1 {
		return nil, errors.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), maxLineSize)
	rd := &Reader{
		scan: scan,
		size: chunkSize,
	}
	for scan.Scan() {
		rd.line++
		fields := strings.Fields(scan.Text())
		if len(fields) == 0 {
			continue
		}
		cols, err := parseHeader(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", rd.line)
		}
		rd.cols = cols
		initial := chunkSize
		if initial > 4096 {
			initial = 4096
		}
		rd.buf = make([]lidarclip.Row, 0, initial)
		return rd, nil
	}
	if err := scan.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning header")
	}
	return nil, ErrNoHeader
}

func parseHeader(names []string) ([]lidarclip.Column, error) {
	seen := make(map[lidarclip.Column]int, len(names))
	cols := make([]lidarclip.Column, len(names))
	for i, name := range names {
		c, ok := lidarclip.ColumnByName(name)
		if !ok {
			return nil, errors.Wrapf(ErrBadHeader, "unknown column %q", name)
		}
		if j, dup := seen[c]; dup {
			return nil, errors.Wrapf(ErrBadHeader, "column %q at fields %d and %d", name, j+1, i+1)
		}
		seen[c] = i
		cols[i] = c
	}
	if len(seen) != lidarclip.NumColumns {
		missing := make([]string, 0)
		for _, name := range lidarclip.Columns() {
			c, _ := lidarclip.ColumnByName(name)
			if _, ok := seen[c]; !ok {
				missing = append(missing, name)
			}
		}
		return nil, errors.Wrapf(ErrBadHeader, "missing columns %s", strings.Join(missing, ","))
	}
	return cols, nil
}

// Next returns the next chunk of rows, or io.EOF when the input is exhausted.
// The returned slice is reused by the following call to Next. Blank lines are
// skipped.
func (r *Reader) Next() ([]lidarclip.Row, error) {
	r.buf = r.buf[:0]
	for len(r.buf) < r.size && r.scan.Scan() {
		r.line++
		fields := strings.Fields(r.scan.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(r.cols) {
			return nil, errors.Errorf("line %d: expected %d fields, got %d", r.line, len(r.cols), len(fields))
		}
		var row lidarclip.Row
		for i, f := range fields {
			if err := row.Set(r.cols[i], f); err != nil {
				return nil, errors.Wrapf(err, "line %d", r.line)
			}
		}
		r.buf = append(r.buf, row)
	}
	if err := r.scan.Err(); err != nil {
		return nil, errors.Wrapf(err, "scanning after line %d", r.line)
	}
	if len(r.buf) == 0 {
		return nil, io.EOF
	}
	return r.buf, nil
}

// Line returns the number of input lines consumed so far, header included.
func (r *Reader) Line() int { return r.line }
