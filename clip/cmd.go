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

// Package clip runs a complete clipping job: it loads a site boundary, streams
// a LiDAR listing through a lidarclip.Clipper, and writes the subset file.
package clip

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/pilosa/lidarclip"
	"github.com/pilosa/lidarclip/boundary"
	"github.com/pilosa/lidarclip/termstat"
	"github.com/pilosa/lidarclip/txt"
	"github.com/pkg/errors"
)

// Main contains the configuration for a clipping run. The zero flags
// configuration clips the TVC 2016 survey to the SikSik site.
type Main struct {
	Input     string `help:"LiDAR listing to clip. A local path, a .gz file, an http(s) URL, or s3://bucket/key."`
	Boundary  string `help:"Shapefile holding the site polygon. The first feature is used."`
	Output    string `help:"Subset file to write. Replaced if it already exists."`
	ChunkSize int    `help:"Number of rows to read and filter at a time. Bounds memory use."`
	Region    string `help:"AWS region for s3:// inputs."`
	Verbose   bool   `help:"Enable verbose logging."`
	Stats     bool   `help:"Print row counters to stderr when done."`

	Stdout io.Writer `flag:"-"`
	Stderr io.Writer `flag:"-"`

	log lidarclip.Logger
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Input:     txt.DefaultInput,
		Boundary:  boundary.DefaultPath,
		Output:    txt.DefaultOutput,
		ChunkSize: txt.DefaultChunkSize,
		Region:    "us-east-1",
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Run clips until the input is exhausted or the process is interrupted.
func (m *Main) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return m.RunContext(ctx)
}

func (m *Main) validate() error {
	if m.Input == "" {
		return errors.New("no input given")
	}
	if m.Boundary == "" {
		return errors.New("no boundary given")
	}
	if m.Output == "" {
		return errors.New("no output given")
	}
	if m.ChunkSize < 1 {
		return errors.Errorf("chunk size must be positive, got %d", m.ChunkSize)
	}
	return nil
}

func (m *Main) setup() {
	logger := log.New(m.Stderr, "", log.LstdFlags)
	if m.Verbose {
		m.log = lidarclip.VerboseLogger{Logger: logger}
	} else {
		m.log = lidarclip.StdLogger{Logger: logger}
	}
}

// RunContext is Run with a caller supplied context. Both inputs are opened and
// checked before the output is touched.
func (m *Main) RunContext(ctx context.Context) error {
	if err := m.validate(); err != nil {
		return errors.Wrap(err, "validating configuration")
	}
	m.setup()
	m.log.Debugf("config: %+v", *m)

	site, err := boundary.Load(m.Boundary)
	if err != nil {
		return errors.Wrap(err, "loading boundary")
	}
	if err := site.CheckCRS(); err != nil {
		m.log.Printf("warning: %v; treating %s as EPSG:32608", err, m.Boundary)
	}
	b := site.Bounds()
	m.log.Debugf("site %s: x=[%.3f, %.3f] y=[%.3f, %.3f]", site.Name, b.MinX, b.MaxX, b.MinY, b.MaxY)

	in, err := txt.Open(m.Input, txt.WithRegion(m.Region))
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer in.Close()
	rd, err := txt.NewReader(in, m.ChunkSize)
	if err != nil {
		return errors.Wrapf(err, "reading header of %s", m.Input)
	}

	out, err := txt.Create(m.Output)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}

	var stats lidarclip.Statter = lidarclip.NopStatter{}
	var collector *termstat.Collector
	if m.Stats {
		collector = termstat.NewCollector(m.Stderr)
		stats = collector
	}

	clipper := lidarclip.NewClipper(rd, site, out)
	clipper.Progress = m.Stdout
	clipper.Stats = stats
	clipper.Log = m.log
	tally, err := clipper.Run(ctx)
	cerr := out.Close()
	if err != nil {
		return errors.Wrapf(err, "clipping %s after line %d", m.Input, rd.Line())
	}
	if cerr != nil {
		return errors.Wrap(cerr, "closing output")
	}

	if collector != nil {
		if err := collector.Write(); err != nil {
			return errors.Wrap(err, "writing stats")
		}
	}
	m.log.Printf("kept %d of %d rows (%d in bounding box) in %d chunks, wrote %s in %s",
		tally.Within, tally.Rows, tally.InBBox, tally.Chunks, m.Output, tally.Elapsed)
	return nil
}
