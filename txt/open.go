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
	"compress/gzip"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pilosa/lidarclip/aws/s3"
	"github.com/pkg/errors"
)

// DefaultInput is the survey listing clipped by default, relative to the
// working directory.
const DefaultInput = "TVC_ALS_201609.txt"

// OpenOption is a functional option to pass to Open.
type OpenOption func(*opener)

type opener struct {
	region string
	client *http.Client
}

// WithRegion sets the AWS region used for s3:// names.
func WithRegion(region string) OpenOption {
	return func(o *opener) {
		o.region = region
	}
}

// WithHTTPClient sets the client used for http:// and https:// names.
func WithHTTPClient(c *http.Client) OpenOption {
	return func(o *opener) {
		o.client = c
	}
}

// Open opens name for reading. name may be "-" for stdin, an http(s) URL, an
// s3://bucket/key URL, or a local path. Gzip compressed content is
// decompressed transparently, detected by magic number or a .gz suffix.
func Open(name string, opts ...OpenOption) (io.ReadCloser, error) {
	o := &opener{client: http.DefaultClient}
	for _, opt := range opts {
		opt(o)
	}

	var content io.ReadCloser
	switch {
	case name == "-":
		content = os.Stdin
	case strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://"):
		resp, err := o.client.Get(name)
		if err != nil {
			return nil, errors.Wrap(err, "getting via http")
		}
		if resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, errors.Errorf("getting %s: %s", name, resp.Status)
		}
		content = resp.Body
	case strings.HasPrefix(name, s3.Scheme):
		obj, err := s3.Open(o.region, name)
		if err != nil {
			return nil, errors.Wrap(err, "opening s3 object")
		}
		content = obj
	default:
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrap(err, "opening file")
		}
		content = f
	}
	return maybeGunzip(name, content)
}

type gzipReadCloser struct {
	*gzip.Reader
	under io.Closer
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if cerr := g.under.Close(); err == nil {
		err = cerr
	}
	return err
}

type bufReadCloser struct {
	*bufio.Reader
	io.Closer
}

func maybeGunzip(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	sig, _ := br.Peek(2)
	if !strings.HasSuffix(name, ".gz") && !(len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) {
		return &bufReadCloser{Reader: br, Closer: rc}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		rc.Close()
		return nil, errors.Wrap(err, "reading gzip header")
	}
	return &gzipReadCloser{Reader: gr, under: rc}, nil
}
