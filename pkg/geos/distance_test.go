package geos

import (
	"math"
	"testing"
)

func TestDistancePoints(t *testing.T) {
	d, err := Distance(NewPointXY(0, 0), NewPointXY(3, 4))
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 5 {
		t.Errorf("Expected 5, got %v", d)
	}
}

func TestDistancePointToLine(t *testing.T) {
	line := NewLineString(seqFromXY(0, 0, 10, 0))
	tests := []struct {
		name string
		p    *Point
		want float64
	}{
		{"perpendicular to interior", NewPointXY(5, 3), 3},
		{"beyond an endpoint", NewPointXY(13, 4), 5},
		{"on the line", NewPointXY(7, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Distance(tt.p, line)
			if err != nil {
				t.Fatalf("Distance failed: %v", err)
			}
			if math.Abs(d-tt.want) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.want, d)
			}
		})
	}
}

func TestDistanceCrossingLines(t *testing.T) {
	a := NewLineString(seqFromXY(0, 0, 10, 10))
	b := NewLineString(seqFromXY(0, 10, 10, 0))
	d, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 0 {
		t.Errorf("Crossing lines should be at distance 0, got %v", d)
	}
}

func TestDistanceParallelLines(t *testing.T) {
	a := NewLineString(seqFromXY(0, 0, 10, 0))
	b := NewLineString(seqFromXY(0, 4, 10, 4))
	d, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 4 {
		t.Errorf("Expected 4, got %v", d)
	}
}

func TestDistancePolygon(t *testing.T) {
	square := NewPolygon(NewLinearRing(seqFromXY(0, 0, 10, 0, 10, 10, 0, 10, 0, 0)), nil)

	t.Run("point inside", func(t *testing.T) {
		d, err := Distance(NewPointXY(5, 5), square)
		if err != nil {
			t.Fatalf("Distance failed: %v", err)
		}
		if d != 0 {
			t.Errorf("Point inside polygon should be at distance 0, got %v", d)
		}
	})

	t.Run("point outside", func(t *testing.T) {
		d, err := Distance(NewPointXY(13, 5), square)
		if err != nil {
			t.Fatalf("Distance failed: %v", err)
		}
		if d != 3 {
			t.Errorf("Expected 3, got %v", d)
		}
	})

	t.Run("polygon containing polygon", func(t *testing.T) {
		inner := NewPolygon(NewLinearRing(seqFromXY(4, 4, 6, 4, 6, 6, 4, 6, 4, 4)), nil)
		d, err := Distance(inner, square)
		if err != nil {
			t.Fatalf("Distance failed: %v", err)
		}
		if d != 0 {
			t.Errorf("Contained polygon should be at distance 0, got %v", d)
		}
	})

	t.Run("disjoint polygons", func(t *testing.T) {
		other := NewPolygon(NewLinearRing(seqFromXY(20, 0, 30, 0, 30, 10, 20, 10, 20, 0)), nil)
		d, err := Distance(square, other)
		if err != nil {
			t.Fatalf("Distance failed: %v", err)
		}
		if d != 10 {
			t.Errorf("Expected 10, got %v", d)
		}
	})
}

func TestDistancePolygonHole(t *testing.T) {
	// A point inside the hole is outside the polygon interior.
	shell := NewLinearRing(seqFromXY(0, 0, 10, 0, 10, 10, 0, 10, 0, 0))
	hole := NewLinearRing(seqFromXY(3, 3, 7, 3, 7, 7, 3, 7, 3, 3))
	donut := NewPolygon(shell, []*LinearRing{hole})

	d, err := Distance(NewPointXY(5, 5), donut)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 2 {
		t.Errorf("Point in hole should be at distance 2 from the hole boundary, got %v", d)
	}
}

func TestDistanceCircularString(t *testing.T) {
	// Arcs are measured through their control points.
	arc := NewCircularString(seqFromXY(0, 0, 5, 5, 10, 0))
	d, err := Distance(NewPointXY(5, 8), arc)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if math.Abs(d-3) > 1e-12 {
		t.Errorf("Expected 3, got %v", d)
	}
}

func TestDistanceMultiGeometries(t *testing.T) {
	mp := NewMultiPoint([]*Point{NewPointXY(0, 0), NewPointXY(100, 100)})
	d, err := Distance(mp, NewPointXY(3, 4))
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 5 {
		t.Errorf("Expected distance to nearest member, got %v", d)
	}
}

func TestDistanceEmptyOperand(t *testing.T) {
	if _, err := Distance(NewEmptyPoint(), NewPointXY(1, 1)); err == nil {
		t.Error("Distance with an empty operand should fail")
	}
	if _, err := Distance(NewPointXY(1, 1), NewMultiPolygon(nil)); err == nil {
		t.Error("Distance with an empty operand should fail")
	}
}
