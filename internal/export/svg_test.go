package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/chaossim/internal/dynamo"
)

func spiral(n int) []dynamo.State {
	states := make([]dynamo.State, n)
	for i := range states {
		t := float64(i) * 0.1
		states[i] = dynamo.State{math.Cos(t) * t, math.Sin(t) * t, t}
	}
	return states
}

func TestParsePlane(t *testing.T) {
	tests := []struct {
		in      string
		want    Plane
		wantErr bool
	}{
		{"xy", PlaneXY, false},
		{"XZ", PlaneXZ, false},
		{"yz", PlaneYZ, false},
		{"xw", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePlane(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePlane(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePlane(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	opts := DefaultSVGOptions()
	opts.Colors = []string{"#111111", "#222222", "#333333"}

	var buf bytes.Buffer
	if err := TrajectoryToSVG(&buf, spiral(100), opts); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output is not a complete svg document")
	}
	if n := strings.Count(out, "<path"); n != 3 {
		t.Errorf("expected one path per color, got %d", n)
	}
	for _, c := range opts.Colors {
		if !strings.Contains(out, c) {
			t.Errorf("missing color %s", c)
		}
	}
}

func TestTrajectoryToSVGBreaksOnNaN(t *testing.T) {
	states := spiral(10)
	states[5] = dynamo.State{math.NaN(), 0, 0}

	var buf bytes.Buffer
	if err := TrajectoryToSVG(&buf, states, DefaultSVGOptions()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Error("non-finite coordinates leaked into the svg")
	}
	if n := strings.Count(buf.String(), " M"); n != 2 {
		t.Errorf("expected the line to restart after the gap, got %d moves", n)
	}
}

func TestTrajectoryToSVGTooShort(t *testing.T) {
	var buf bytes.Buffer
	if err := TrajectoryToSVG(&buf, spiral(1), DefaultSVGOptions()); err == nil {
		t.Error("expected error for a single point")
	}
}
