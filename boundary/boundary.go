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

// Package boundary loads a site polygon from a shapefile and exposes it as a
// lidarclip.Region.
package boundary

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/pilosa/lidarclip"
	"github.com/pkg/errors"
)

const (
	// ErrNoFeatures is returned by Load for a shapefile without records.
	ErrNoFeatures = lidarclip.Error("shapefile contains no features")
	// ErrNotPolygon is returned by Load when the first feature is not a
	// polygon.
	ErrNotPolygon = lidarclip.Error("feature is not a polygon")
)

// Spatial references, as proj4 strings.
const (
	// UTM8N is EPSG:32608, UTM zone 8N on WGS84. Both the boundary and the
	// LiDAR points are expected to be in this system.
	UTM8N = "+proj=utm +zone=8 +datum=WGS84 +units=m +no_defs"
	// LongLat is geographic WGS84.
	LongLat = "+proj=longlat +datum=WGS84 +no_defs"
)

// crsTolerance is how far, in meters, the site centroid may move between the
// shapefile's declared CRS and UTM8N before the two are considered different.
const crsTolerance = 1.0

// Boundary is the polygon of a single site.
type Boundary struct {
	// Name is the shapefile's base name without extension.
	Name string

	polygon geom.Polygonal
	bounds  lidarclip.Bounds

	sr    *proj.SR
	srErr error
}

// New wraps an existing polygon as a Boundary with no declared CRS.
func New(name string, polygon geom.Polygonal) *Boundary {
	return &Boundary{
		Name:    name,
		polygon: polygon,
		bounds:  toBounds(polygon.Bounds()),
		srErr:   errors.New("no projection declared"),
	}
}

// Load reads the first feature of the shapefile at path. The feature must be a
// polygon (or multipolygon). The shapefile's .prj sidecar, if any, is read for
// CheckCRS but no reprojection takes place.
func Load(path string) (*Boundary, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening shapefile %s", path)
	}
	defer dec.Close()

	g, _, more := dec.DecodeRowFields()
	if !more {
		if err := dec.Error(); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", path)
		}
		return nil, errors.Wrap(ErrNoFeatures, path)
	}
	poly, ok := g.(geom.Polygonal)
	if !ok {
		return nil, errors.Wrapf(ErrNotPolygon, "first feature of %s is %T", path, g)
	}

	b := New(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), poly)
	b.sr, b.srErr = dec.SR()
	if b.srErr == nil && b.sr == nil {
		b.srErr = errors.New("no projection declared")
	}
	return b, nil
}

func toBounds(b *geom.Bounds) lidarclip.Bounds {
	return lidarclip.Bounds{
		MinX: b.Min.X,
		MaxX: b.Max.X,
		MinY: b.Min.Y,
		MaxY: b.Max.Y,
	}
}

// Bounds implements lidarclip.Region.
func (b *Boundary) Bounds() lidarclip.Bounds { return b.bounds }

// Contains implements lidarclip.Region. Points on an edge of the polygon are
// not contained.
func (b *Boundary) Contains(x, y float64) bool {
	return geom.Point{X: x, Y: y}.Within(b.polygon) == geom.Inside
}

// Polygon returns the site geometry.
func (b *Boundary) Polygon() geom.Polygonal { return b.polygon }

// CheckCRS compares the shapefile's declared projection with UTM8N. It returns
// nil when they agree to within a meter at the site centroid.
func (b *Boundary) CheckCRS() error {
	if b.srErr != nil {
		return errors.Wrap(b.srErr, "reading declared projection")
	}
	want, err := proj.Parse(UTM8N)
	if err != nil {
		return errors.Wrap(err, "parsing UTM8N")
	}
	trans, err := b.sr.NewTransform(want)
	if err != nil {
		return errors.Wrapf(err, "transforming from %s", b.sr.Name)
	}
	if trans == nil {
		// NewTransform returns no transformer between equal references.
		return nil
	}
	c := b.polygon.Centroid()
	x, y, err := trans(c.X, c.Y)
	if err != nil {
		return errors.Wrap(err, "projecting centroid")
	}
	if d := math.Hypot(x-c.X, y-c.Y); d > crsTolerance || math.IsNaN(d) {
		return errors.Errorf("declared projection %s differs from EPSG:32608 by %.1fm at the centroid", b.sr.Name, d)
	}
	return nil
}
