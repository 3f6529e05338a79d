package txt_test

import (
	"io"
	"strings"
	"testing"

	"github.com/pilosa/lidarclip"
	"github.com/pilosa/lidarclip/test"
	"github.com/pilosa/lidarclip/txt"
	"github.com/pkg/errors"
)

const header = "X[m] Y[m] Z[m] Amplitude[DN] EchoWidth[ns] EchoType[DN] TerrainProbability[DecimalFraction] RelativeHeight[m] Class[DN] PointSourceId[DN]\n"

func TestReaderChunks(t *testing.T) {
	rows := make([]lidarclip.Row, 7)
	for i := range rows {
		rows[i] = test.Point(i, 456123.4567+float64(i), 7620000.25)
	}
	data := test.Lidar(rows...)

	for _, size := range []int{1, 3, 7, 100} {
		rd, err := txt.NewReader(strings.NewReader(data), size)
		test.ErrNil(t, err, "getting reader")
		var got []lidarclip.Row
		chunks := 0
		for {
			chunk, err := rd.Next()
			if err == io.EOF {
				break
			}
			test.ErrNil(t, err, "reading chunk")
			if len(chunk) > size {
				t.Fatalf("chunk of %d rows with size %d", len(chunk), size)
			}
			chunks++
			got = append(got, chunk...)
		}
		test.MustBe(t, rows, got, "rows")
		test.MustBe(t, (len(rows)+size-1)/size, chunks, "chunks")
		if _, err := rd.Next(); err != io.EOF {
			t.Fatalf("expected EOF after exhaustion, got %v", err)
		}
	}
}

func TestReaderFormatting(t *testing.T) {
	data := "\n" + "Y[m]\tX[m]   Z[m] Amplitude[DN] EchoWidth[ns] EchoType[DN] TerrainProbability[DecimalFraction] RelativeHeight[m] Class[DN] PointSourceId[DN]\n" +
		"7620000.5\t456123.4567  10.25 17 4.5 1 0.75 2.5 3.0 1042\n" +
		"\n" +
		"   \n" +
		"7620001 456124 11 18 4.5 2 0.25 -0.5 5 1043\n"
	rd, err := txt.NewReader(strings.NewReader(data), 10)
	test.ErrNil(t, err, "getting reader")
	chunk, err := rd.Next()
	test.ErrNil(t, err, "reading")
	exp := []lidarclip.Row{
		{X: 456123.4567, Y: 7620000.5, Z: 10.25, Amplitude: 17, EchoWidth: 4.5, EchoType: 1, TerrainProbability: 0.75, RelativeHeight: 2.5, Class: 3, PointSourceID: 1042},
		{X: 456124, Y: 7620001, Z: 11, Amplitude: 18, EchoWidth: 4.5, EchoType: 2, TerrainProbability: 0.25, RelativeHeight: -0.5, Class: 5, PointSourceID: 1043},
	}
	test.MustBe(t, exp, chunk)
	test.MustBe(t, 6, rd.Line(), "lines")
}

func TestReaderHeaderErrors(t *testing.T) {
	full := strings.Fields(header)
	join := func(sep string, names ...string) string {
		return strings.Join(names, sep) + "\n"
	}
	with := func(base []string, extra ...string) []string {
		return append(append([]string{}, base...), extra...)
	}
	tests := []struct {
		name   string
		data   string
		expErr error
	}{
		{name: "empty", data: "", expErr: txt.ErrNoHeader},
		{name: "blank", data: "\n  \n", expErr: txt.ErrNoHeader},
		{name: "missing", data: join(" ", full[:9]...), expErr: txt.ErrBadHeader},
		{name: "unknown", data: join(" ", with(full, "Intensity")...), expErr: txt.ErrBadHeader},
		{name: "duplicate", data: join(" ", with(full[:9], "X[m]")...), expErr: txt.ErrBadHeader},
		{name: "comma", data: join(",", full...), expErr: txt.ErrBadHeader},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			_, err := txt.NewReader(strings.NewReader(tst.data), 10)
			if errors.Cause(err) != tst.expErr {
				t.Fatalf("got %v, expected %v", err, tst.expErr)
			}
		})
	}

	if _, err := txt.NewReader(strings.NewReader(header), 0); err == nil {
		t.Fatalf("expected error for zero chunk size")
	}
}

func TestReaderRowErrors(t *testing.T) {
	good := "456123 7620000 10 17 4.5 1 0.75 2.5 3 1042\n"
	tests := []struct {
		name string
		row  string
		line string
	}{
		{name: "short", row: "456123 7620000 10\n", line: "line 3"},
		{name: "long", row: "456123 7620000 10 17 4.5 1 0.75 2.5 3 1042 9\n", line: "line 3"},
		{name: "float", row: "456123 abc 10 17 4.5 1 0.75 2.5 3 1042\n", line: "line 3"},
		{name: "code", row: "456123 7620000 10 17 4.5 1 0.75 2.5 3.5 1042\n", line: "line 3"},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			rd, err := txt.NewReader(strings.NewReader(header+good+tst.row), 1)
			test.ErrNil(t, err, "getting reader")
			_, err = rd.Next()
			test.ErrNil(t, err, "reading good row")
			_, err = rd.Next()
			if err == nil || err == io.EOF {
				t.Fatalf("expected parse error, got %v", err)
			}
			if !strings.Contains(err.Error(), tst.line) {
				t.Fatalf("error %q doesn't name %s", err, tst.line)
			}
		})
	}
}
