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

package boundary

import (
	"fmt"
	"strings"

	"github.com/ctessum/geom/proj"
	"github.com/mmcloughlin/geohash"
	"github.com/pilosa/lidarclip"
	"github.com/pkg/errors"
)

// GeohashPrecision is the number of characters in Summary.Geohash. Nine
// characters is a cell of a few meters.
const GeohashPrecision = 9

// Summary describes where a site is.
type Summary struct {
	Name   string
	Bounds lidarclip.Bounds
	// Area in square meters.
	Area float64
	// CentroidX and CentroidY are UTM8N easting and northing.
	CentroidX, CentroidY float64
	Lon, Lat             float64
	Geohash              string
	// CRS is "EPSG:32608" when the declared projection matches, otherwise the
	// reason it could not be confirmed.
	CRS string
}

// Summary computes the site's Summary, projecting the centroid from UTM8N to
// geographic coordinates.
func (b *Boundary) Summary() (Summary, error) {
	s := Summary{
		Name:   b.Name,
		Bounds: b.bounds,
		Area:   b.polygon.Area(),
		CRS:    "EPSG:32608",
	}
	c := b.polygon.Centroid()
	s.CentroidX, s.CentroidY = c.X, c.Y

	utm, err := proj.Parse(UTM8N)
	if err != nil {
		return s, errors.Wrap(err, "parsing UTM8N")
	}
	ll, err := proj.Parse(LongLat)
	if err != nil {
		return s, errors.Wrap(err, "parsing LongLat")
	}
	trans, err := utm.NewTransform(ll)
	if err != nil {
		return s, errors.Wrap(err, "getting transform")
	}
	s.Lon, s.Lat, err = trans(c.X, c.Y)
	if err != nil {
		return s, errors.Wrap(err, "projecting centroid")
	}
	s.Geohash = geohash.EncodeWithPrecision(s.Lat, s.Lon, GeohashPrecision)

	if err := b.CheckCRS(); err != nil {
		s.CRS = "unconfirmed: " + err.Error()
	}
	return s, nil
}

func (s Summary) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "site:      %s\n", s.Name)
	fmt.Fprintf(&sb, "bounds:    x=[%.3f, %.3f] y=[%.3f, %.3f]\n", s.Bounds.MinX, s.Bounds.MaxX, s.Bounds.MinY, s.Bounds.MaxY)
	fmt.Fprintf(&sb, "area:      %.1f m2\n", s.Area)
	fmt.Fprintf(&sb, "centroid:  %.3f E %.3f N\n", s.CentroidX, s.CentroidY)
	fmt.Fprintf(&sb, "lon/lat:   %.6f %.6f\n", s.Lon, s.Lat)
	fmt.Fprintf(&sb, "geohash:   %s\n", s.Geohash)
	fmt.Fprintf(&sb, "crs:       %s\n", s.CRS)
	return sb.String()
}
