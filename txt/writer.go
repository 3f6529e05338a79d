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

package txt

import (
	"bufio"
	"io"
	"os"

	"github.com/pilosa/lidarclip"
	"github.com/pkg/errors"
)

// DefaultOutput is where the SikSik subset is written, relative to the working
// directory.
const DefaultOutput = "TVC_ALS_201609_SikSik_subset.txt"

// Writer writes a subset file: lidarclip.Header followed by one comma
// separated line per row. It implements lidarclip.RowWriter.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
	line   []byte
	rows   int
}

// Create removes any existing file at path, creates a new one, and writes the
// header to it.
func Create(path string) (*Writer, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "removing previous %s", path)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "writing header to %s", path)
	}
	w.closer = f
	return w, nil
}

// NewWriter writes the header to w and returns a Writer appending to it.
func NewWriter(w io.Writer) (*Writer, error) {
	sw := &Writer{
		w: bufio.NewWriterSize(w, 1<<16),
	}
	if _, err := sw.w.WriteString(lidarclip.Header + "\n"); err != nil {
		return nil, err
	}
	if err := sw.w.Flush(); err != nil {
		return nil, err
	}
	return sw, nil
}

// Write appends rows and flushes them, so that every row handed to Write is
// complete on disk once it returns. Writing no rows does nothing.
func (w *Writer) Write(rows []lidarclip.Row) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		w.line = rows[i].AppendCSV(w.line[:0])
		w.line = append(w.line, '\n')
		if _, err := w.w.Write(w.line); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	if err := w.w.Flush(); err != nil {
		return errors.Wrap(err, "flushing rows")
	}
	w.rows += len(rows)
	return nil
}

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int { return w.rows }

// Close flushes the writer and closes the underlying file, if the Writer was
// made by Create.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return errors.Wrap(err, "closing subset")
}
