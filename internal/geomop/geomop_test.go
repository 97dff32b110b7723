package geomop

import (
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func square(minX, minY, side float64) geom.Polygon {
	return geom.Polygon{{
		{X: minX, Y: minY},
		{X: minX + side, Y: minY},
		{X: minX + side, Y: minY + side},
		{X: minX, Y: minY + side},
		{X: minX, Y: minY},
	}}
}

// TestBuffer tests that a positive buffer grows and contains the source
func TestBuffer(t *testing.T) {
	pond := square(0, 0, 10)

	buffered, err := Buffer(pond, 5, 8)
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}
	if buffered == nil {
		t.Fatal("Buffer() returned nil for a valid polygon")
	}

	ok, err := Contains(buffered, pond)
	if err != nil {
		t.Fatalf("Contains() error = %v", err)
	}
	if !ok {
		t.Error("buffered polygon should contain the source polygon")
	}

	srcArea, err := Area(pond)
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	bufArea, err := Area(buffered)
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	if bufArea <= srcArea {
		t.Errorf("buffered area %f should exceed source area %f", bufArea, srcArea)
	}
}

// TestBoundary tests boundary extraction and perimeter length
func TestBoundary(t *testing.T) {
	pond := square(0, 0, 10)

	edge, err := Boundary(pond)
	if err != nil {
		t.Fatalf("Boundary() error = %v", err)
	}

	length, err := Length(edge)
	if err != nil {
		t.Fatalf("Length() error = %v", err)
	}
	if math.Abs(length-40.0) > 1e-9 {
		t.Errorf("boundary length = %f, want 40", length)
	}

	// The boundary of a polygon has no area.
	area, err := Area(edge)
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	if area != 0 {
		t.Errorf("boundary area = %f, want 0", area)
	}
}

// TestConvexHull tests hulling a concave shape
func TestConvexHull(t *testing.T) {
	// L-shaped polygon: a 10x10 square missing its upper-right 5x5 quadrant.
	lshape := geom.Polygon{{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
		{X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}}

	hull, err := ConvexHull(lshape)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}

	hullArea, err := Area(hull)
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	srcArea, err := Area(lshape)
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}

	// Hull fills in the missing quadrant's triangle.
	if hullArea <= srcArea {
		t.Errorf("hull area %f should exceed concave source area %f", hullArea, srcArea)
	}

	ok, err := Contains(hull, lshape)
	if err != nil {
		t.Fatalf("Contains() error = %v", err)
	}
	if !ok {
		t.Error("hull should contain the source shape")
	}
}

// TestIntersection tests polygon overlay
func TestIntersection(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 5, 10) // overlaps a in a 5x5 corner

	shared, err := Intersection(a, b)
	if err != nil {
		t.Fatalf("Intersection() error = %v", err)
	}
	if shared == nil {
		t.Fatal("expected a non-empty intersection")
	}

	area, err := Area(shared)
	if err != nil {
		t.Fatalf("Area() error = %v", err)
	}
	if math.Abs(area-25.0) > 1e-9 {
		t.Errorf("intersection area = %f, want 25", area)
	}
}

// TestIntersectionDisjoint tests that disjoint inputs yield nil
func TestIntersectionDisjoint(t *testing.T) {
	a := square(0, 0, 10)
	b := square(100, 100, 10)

	shared, err := Intersection(a, b)
	if err != nil {
		t.Fatalf("Intersection() error = %v", err)
	}
	if shared != nil {
		t.Errorf("disjoint intersection = %v, want nil", shared)
	}
}

// TestNilGeometry tests the nil-input error path
func TestNilGeometry(t *testing.T) {
	if _, err := Buffer(nil, 1, 8); err == nil {
		t.Error("Buffer(nil) should fail")
	}
	if _, err := Length(nil); err == nil {
		t.Error("Length(nil) should fail")
	}
}
