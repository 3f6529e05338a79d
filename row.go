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
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Column identifies one of the fixed attribute columns of a LiDAR return.
type Column int

// The columns in output order.
const (
	ColX Column = iota
	ColY
	ColZ
	ColAmplitude
	ColEchoWidth
	ColEchoType
	ColTerrainProbability
	ColRelativeHeight
	ColClass
	ColPointSourceID

	NumColumns int = iota
)

var columnNames = [NumColumns]string{
	ColX:                  "X[m]",
	ColY:                  "Y[m]",
	ColZ:                  "Z[m]",
	ColAmplitude:          "Amplitude[DN]",
	ColEchoWidth:          "EchoWidth[ns]",
	ColEchoType:           "EchoType[DN]",
	ColTerrainProbability: "TerrainProbability[DecimalFraction]",
	ColRelativeHeight:     "RelativeHeight[m]",
	ColClass:              "Class[DN]",
	ColPointSourceID:      "PointSourceId[DN]",
}

// Header is the first line of every subset file.
const Header = "X[m],Y[m],Z[m],Amplitude[DN],EchoWidth[ns],EchoType[DN]," +
	"TerrainProbability[DecimalFraction],RelativeHeight[m]," +
	"Class[DN],PointSourceId[DN]"

// String returns the column name as it appears in input and output headers.
func (c Column) String() string {
	if c < 0 || int(c) >= NumColumns {
		return "Column(" + strconv.Itoa(int(c)) + ")"
	}
	return columnNames[c]
}

// Discrete reports whether the column holds an integer code rather than a
// continuous measurement.
func (c Column) Discrete() bool {
	switch c {
	case ColAmplitude, ColEchoType, ColClass, ColPointSourceID:
		return true
	}
	return false
}

// ColumnByName looks up a column by its header name.
func ColumnByName(name string) (Column, bool) {
	for i, n := range columnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// Columns returns all column names in output order.
func Columns() []string {
	names := make([]string, NumColumns)
	copy(names, columnNames[:])
	return names
}

// Row is one LiDAR return. Continuous measures are float64 and discrete codes
// are int64.
type Row struct {
	X, Y, Z            float64
	Amplitude          int64
	EchoWidth          float64
	EchoType           int64
	TerrainProbability float64
	RelativeHeight     float64
	Class              int64
	PointSourceID      int64
}

// Value returns the value of column c as a float64.
func (r *Row) Value(c Column) float64 {
	switch c {
	case ColX:
		return r.X
	case ColY:
		return r.Y
	case ColZ:
		return r.Z
	case ColAmplitude:
		return float64(r.Amplitude)
	case ColEchoWidth:
		return r.EchoWidth
	case ColEchoType:
		return float64(r.EchoType)
	case ColTerrainProbability:
		return r.TerrainProbability
	case ColRelativeHeight:
		return r.RelativeHeight
	case ColClass:
		return float64(r.Class)
	case ColPointSourceID:
		return float64(r.PointSourceID)
	}
	return math.NaN()
}

// Set parses val into column c of the row.
func (r *Row) Set(c Column, val string) error {
	if c.Discrete() {
		i, err := parseCode(val)
		if err != nil {
			return errors.Wrapf(err, "parsing %s", c)
		}
		switch c {
		case ColAmplitude:
			r.Amplitude = i
		case ColEchoType:
			r.EchoType = i
		case ColClass:
			r.Class = i
		case ColPointSourceID:
			r.PointSourceID = i
		}
		return nil
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", c)
	}
	switch c {
	case ColX:
		r.X = f
	case ColY:
		r.Y = f
	case ColZ:
		r.Z = f
	case ColEchoWidth:
		r.EchoWidth = f
	case ColTerrainProbability:
		r.TerrainProbability = f
	case ColRelativeHeight:
		r.RelativeHeight = f
	default:
		return errors.Errorf("unknown column %d", int(c))
	}
	return nil
}

// parseCode accepts "3" as well as an integral float spelling like "3.0".
func parseCode(val string) (int64, error) {
	i, err := strconv.ParseInt(val, 10, 64)
	if err == nil {
		return i, nil
	}
	f, ferr := strconv.ParseFloat(val, 64)
	if ferr != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, errors.Errorf("%q is not an integer code", val)
	}
	return int64(f), nil
}

// AppendCSV appends the row to buf as comma separated values in column order,
// each formatted with exactly three decimals. No line terminator is added.
func (r *Row) AppendCSV(buf []byte) []byte {
	for c := Column(0); int(c) < NumColumns; c++ {
		if c > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, r.Value(c), 'f', 3, 64)
	}
	return buf
}
