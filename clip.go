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

package lidarclip

import (
	"context"
	"io"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
)

// ChunkSource yields successive batches of rows. Next returns io.EOF once the
// source is exhausted. The returned slice is only valid until the following
// call to Next.
type ChunkSource interface {
	Next() ([]Row, error)
}

// RowWriter receives the rows which survive clipping. Write is called at most
// once per chunk, and never with an empty slice.
type RowWriter interface {
	Write(rows []Row) error
}

// Progress markers written by a Clipper.
const (
	MarkBBox   = '*'
	MarkWithin = '+'
	MarkChunk  = '.'
	DoneLine   = "\nDone!\n"
)

// Tally counts what a clipping run has seen.
type Tally struct {
	Chunks  int
	Rows    int
	InBBox  int
	Within  int
	Elapsed time.Duration
}

// Clipper reads chunks from a ChunkSource, keeps the rows which fall within a
// Region and hands them to a RowWriter. Each chunk is checked against the
// region's bounding box first, and only the survivors are tested against the
// region itself.
type Clipper struct {
	// Progress receives one marker per event, see MarkBBox, MarkWithin and
	// MarkChunk.
	Progress io.Writer
	Stats    Statter
	Log      Logger

	src    ChunkSource
	region Region
	dst    RowWriter
}

// NewClipper gets a new Clipper which discards progress, stats, and logs.
func NewClipper(src ChunkSource, region Region, dst RowWriter) *Clipper {
	return &Clipper{
		Progress: ioutil.Discard,
		Stats:    NopStatter{},
		Log:      NopLogger{},
		src:      src,
		region:   region,
		dst:      dst,
	}
}

// Run clips until the source is exhausted, ctx is done, or an error occurs.
// Rows already handed to the RowWriter stay written in every case.
func (c *Clipper) Run(ctx context.Context) (Tally, error) {
	start := time.Now()
	var t Tally
	bounds := c.region.Bounds()
	c.Log.Debugf("clipping to bounds x=[%f, %f] y=[%f, %f]", bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY)

	for {
		if err := ctx.Err(); err != nil {
			return t, errors.Wrapf(err, "stopped after chunk %d", t.Chunks)
		}
		rows, err := c.src.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return t, errors.Wrapf(err, "reading chunk %d", t.Chunks+1)
		}
		t.Chunks++
		t.Rows += len(rows)
		c.Stats.Count(StatChunks, 1, 1)
		c.Stats.Count(StatRows, int64(len(rows)), 1)

		inBox := FilterBounds(rows, bounds)
		if len(inBox) > 0 {
			c.mark(MarkBBox)
			t.InBBox += len(inBox)
			c.Stats.Count(StatBBox, int64(len(inBox)), 1)

			within := FilterWithin(inBox, c.region)
			if len(within) > 0 {
				c.mark(MarkWithin)
				if err := c.dst.Write(within); err != nil {
					return t, errors.Wrapf(err, "writing chunk %d", t.Chunks)
				}
				t.Within += len(within)
				c.Stats.Count(StatWithin, int64(len(within)), 1)
				c.Stats.Count(StatWritten, int64(len(within)), 1)
			}
		}
		c.mark(MarkChunk)
		c.Log.Debugf("chunk %d: %d rows, %d in bbox, %d within so far", t.Chunks, len(rows), len(inBox), t.Within)
	}

	t.Elapsed = time.Since(start)
	c.Stats.Timing(StatRun, t.Elapsed, 1)
	_, _ = io.WriteString(c.Progress, DoneLine)
	return t, nil
}

func (c *Clipper) mark(m byte) {
	_, _ = c.Progress.Write([]byte{m})
}
