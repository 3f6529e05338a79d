// Package test holds fixtures and assertions shared by lidarclip tests.
package test

import (
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/pilosa/lidarclip"
)

func MustBe(t testing.TB, thing1, thing2 interface{}, context ...string) {
	t.Helper()
	var ctx string
	if len(context) == 0 {
		ctx = ""
	} else {
		ctx = context[0] + ": "
	}
	if !reflect.DeepEqual(thing1, thing2) {
		t.Fatalf("%v'%#v' != '%#v'", ctx, thing1, thing2)
	}
}

func ErrNil(t testing.TB, err error, ctx string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%v: %v", ctx, err)
	}
}

// UTM8NWKT is the ESRI .prj text for EPSG:32608.
const UTM8NWKT = `PROJCS["WGS_1984_UTM_Zone_8N",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],PARAMETER["False_Easting",500000.0],PARAMETER["False_Northing",0.0],PARAMETER["Central_Meridian",-135.0],PARAMETER["Scale_Factor",0.9996],PARAMETER["Latitude_Of_Origin",0.0],UNIT["Meter",1.0]]`

// Square returns the axis aligned square polygon with the given corners.
func Square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
		{X: x0, Y: y0},
	}}
}

type site struct {
	geom.Polygon
	Name string
}

type marker struct {
	geom.Point
	Name string
}

// WriteSite writes a shapefile named name+".shp" in dir holding polys, one
// feature each. If prj is not empty it is written as the .prj sidecar. The
// path of the .shp file is returned.
func WriteSite(t testing.TB, dir, name, prj string, polys ...geom.Polygon) string {
	t.Helper()
	path := filepath.Join(dir, name+".shp")
	enc, err := shp.NewEncoder(path, site{})
	if err != nil {
		t.Fatalf("creating shapefile: %v", err)
	}
	for _, p := range polys {
		if err := enc.Encode(site{Polygon: p, Name: name}); err != nil {
			t.Fatalf("encoding polygon: %v", err)
		}
	}
	enc.Close()
	writePRJ(t, dir, name, prj)
	return path
}

// WriteMarkers writes a point shapefile, for checking non polygon input.
func WriteMarkers(t testing.TB, dir, name string, pts ...geom.Point) string {
	t.Helper()
	path := filepath.Join(dir, name+".shp")
	enc, err := shp.NewEncoder(path, marker{})
	if err != nil {
		t.Fatalf("creating shapefile: %v", err)
	}
	for _, p := range pts {
		if err := enc.Encode(marker{Point: p, Name: name}); err != nil {
			t.Fatalf("encoding point: %v", err)
		}
	}
	enc.Close()
	return path
}

func writePRJ(t testing.TB, dir, name, prj string) {
	if prj == "" {
		return
	}
	if err := ioutil.WriteFile(filepath.Join(dir, name+".prj"), []byte(prj), 0644); err != nil {
		t.Fatalf("writing prj: %v", err)
	}
}

// Lidar renders rows as a whitespace delimited listing with a header, the way
// the survey exports arrive.
func Lidar(rows ...lidarclip.Row) string {
	sb := strings.Builder{}
	sb.WriteString(strings.Join(lidarclip.Columns(), " "))
	sb.WriteString("\n")
	for _, r := range rows {
		for c := lidarclip.Column(0); int(c) < lidarclip.NumColumns; c++ {
			if c > 0 {
				sb.WriteString(" ")
			}
			if c.Discrete() {
				sb.WriteString(strconv.FormatInt(int64(r.Value(c)), 10))
			} else {
				sb.WriteString(strconv.FormatFloat(r.Value(c), 'f', -1, 64))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteLidar writes Lidar(rows...) to name in dir and returns its path.
func WriteLidar(t testing.TB, dir, name string, rows ...lidarclip.Row) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(Lidar(rows...)), 0644); err != nil {
		t.Fatalf("writing lidar: %v", err)
	}
	return path
}

// Point returns a row at (x, y) with the rest of the attributes derived from
// i so that rows are distinguishable in output.
func Point(i int, x, y float64) lidarclip.Row {
	return lidarclip.Row{
		X:                  x,
		Y:                  y,
		Z:                  100 + float64(i)/8,
		Amplitude:          int64(10 + i),
		EchoWidth:          4.25,
		EchoType:           int64(i % 4),
		TerrainProbability: 0.5,
		RelativeHeight:     float64(i) / 4,
		Class:              int64(1 + i%5),
		PointSourceID:      int64(1000 + i),
	}
}
