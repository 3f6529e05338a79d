package mock_test

import (
	"testing"
	"time"

	"github.com/pilosa/lidarclip"
	"github.com/pilosa/lidarclip/mock"
)

var _ lidarclip.Statter = &mock.RecordingStatter{}

func TestRecordingStatter(t *testing.T) {
	r := &mock.RecordingStatter{}
	r.Count(lidarclip.StatRows, 3, 1)
	r.Count(lidarclip.StatRows, 4, 1)
	r.Timing(lidarclip.StatRun, time.Second, 1)
	r.Timing(lidarclip.StatRun, time.Second, 1)
	r.Gauge("ignored", 1, 1)
	if r.Counts[lidarclip.StatRows] != 7 {
		t.Fatalf("rows: %d", r.Counts[lidarclip.StatRows])
	}
	if r.Timings[lidarclip.StatRun] != 2*time.Second {
		t.Fatalf("run: %v", r.Timings[lidarclip.StatRun])
	}
}
