package boundary_test

import (
	"bytes"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/pilosa/lidarclip"
	"github.com/pilosa/lidarclip/boundary"
	"github.com/pilosa/lidarclip/test"
	"github.com/pkg/errors"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "boundary")
	if err != nil {
		t.Fatalf("getting temp dir: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	// a square with a notch cut out of its top right corner
	notched := geom.Polygon{{
		{X: 500000, Y: 7620000},
		{X: 500100, Y: 7620000},
		{X: 500100, Y: 7620050},
		{X: 500050, Y: 7620050},
		{X: 500050, Y: 7620100},
		{X: 500000, Y: 7620100},
		{X: 500000, Y: 7620000},
	}}
	path := test.WriteSite(t, dir, "SikSik", test.UTM8NWKT, notched, test.Square(0, 0, 1, 1))

	b, err := boundary.Load(path)
	test.ErrNil(t, err, "loading")
	test.MustBe(t, "SikSik", b.Name, "name")
	test.MustBe(t, lidarclip.Bounds{MinX: 500000, MaxX: 500100, MinY: 7620000, MaxY: 7620100}, b.Bounds(), "bounds of first feature only")

	tests := []struct {
		name string
		x, y float64
		exp  bool
	}{
		{name: "inside", x: 500025, y: 7620025, exp: true},
		{name: "inside upper arm", x: 500025, y: 7620090, exp: true},
		{name: "notch", x: 500075, y: 7620075, exp: false},
		{name: "outside bbox", x: 499000, y: 7620025, exp: false},
		{name: "second feature ignored", x: 0.5, y: 0.5, exp: false},
		{name: "on bottom edge", x: 500050, y: 7620000, exp: false},
		{name: "on left edge", x: 500000, y: 7620025, exp: false},
		{name: "on vertex", x: 500000, y: 7620000, exp: false},
		{name: "on notch edge", x: 500075, y: 7620050, exp: false},
		{name: "just inside bottom edge", x: 500050, y: 7620000.001, exp: true},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			if got := b.Contains(tst.x, tst.y); got != tst.exp {
				t.Fatalf("Contains(%v, %v) = %v, expected %v", tst.x, tst.y, got, tst.exp)
			}
		})
	}

	if err := b.CheckCRS(); err != nil {
		t.Fatalf("checking CRS of a UTM 8N prj: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	empty := test.WriteSite(t, dir, "empty", "")
	points := test.WriteMarkers(t, dir, "points", geom.Point{X: 1, Y: 2})

	tests := []struct {
		name   string
		path   string
		expErr error
	}{
		{name: "missing", path: filepath.Join(dir, "nope.shp")},
		{name: "empty", path: empty, expErr: boundary.ErrNoFeatures},
		{name: "points", path: points, expErr: boundary.ErrNotPolygon},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			b, err := boundary.Load(tst.path)
			if err == nil {
				t.Fatalf("expected error, got boundary %v", b.Name)
			}
			if tst.expErr != nil && errors.Cause(err) != tst.expErr {
				t.Fatalf("got %v, expected %v", err, tst.expErr)
			}
		})
	}
}

func TestCheckCRS(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	sq := test.Square(500000, 7620000, 500100, 7620100)

	tests := []struct {
		name  string
		prj   string
		match bool
	}{
		{name: "proj4", prj: boundary.UTM8N, match: true},
		{name: "wkt", prj: test.UTM8NWKT, match: true},
		{name: "missing", prj: "", match: false},
		{name: "zone9", prj: "+proj=utm +zone=9 +datum=WGS84 +units=m +no_defs", match: false},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			b, err := boundary.Load(test.WriteSite(t, dir, tst.name, tst.prj, sq))
			test.ErrNil(t, err, "loading")
			err = b.CheckCRS()
			if tst.match && err != nil {
				t.Fatalf("expected match, got %v", err)
			}
			if !tst.match && err == nil {
				t.Fatalf("expected mismatch")
			}
		})
	}
}

func TestSummary(t *testing.T) {
	// centered on the zone 8 central meridian, -135 degrees
	b := boundary.New("meridian", test.Square(499900, 7619900, 500100, 7620100))
	s, err := b.Summary()
	test.ErrNil(t, err, "summarizing")

	if math.Abs(s.Area-40000) > 1e-6 {
		t.Fatalf("area: %v", s.Area)
	}
	if math.Abs(s.CentroidX-500000) > 1e-6 || math.Abs(s.CentroidY-7620000) > 1e-6 {
		t.Fatalf("centroid: %v %v", s.CentroidX, s.CentroidY)
	}
	if math.Abs(s.Lon+135) > 1e-6 {
		t.Fatalf("lon: %v", s.Lon)
	}
	if s.Lat < 68 || s.Lat > 69.5 {
		t.Fatalf("lat: %v", s.Lat)
	}
	if len(s.Geohash) != boundary.GeohashPrecision {
		t.Fatalf("geohash: %q", s.Geohash)
	}
	if !strings.HasPrefix(s.CRS, "unconfirmed") {
		t.Fatalf("crs of a boundary without prj: %q", s.CRS)
	}
	if !strings.Contains(s.String(), "geohash:   "+s.Geohash) {
		t.Fatalf("summary text:\n%s", s)
	}
}

func TestMainRun(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	m := boundary.NewMain()
	m.Boundary = test.WriteSite(t, dir, "SikSik", boundary.UTM8N, test.Square(500000, 7620000, 500100, 7620100))
	out := &bytes.Buffer{}
	m.Stdout = out
	test.ErrNil(t, m.Run(), "running")
	if !strings.Contains(out.String(), "site:      SikSik\n") || !strings.Contains(out.String(), "crs:       EPSG:32608\n") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}
