package core

import "testing"

type fixedAnchor struct{ x, y int }

func (a *fixedAnchor) Position() (int, int) { return a.x, a.y }

func TestRectangleCorners(t *testing.T) {
	r := NewRectangle(10, 20, 12, 14)

	tests := []struct {
		name     string
		got      Point
		expected Point
	}{
		{"top-left", r.TopLeft(), Point{10, 20}},
		{"top-right", r.TopRight(), Point{22, 20}},
		{"bottom-left", r.BottomLeft(), Point{10, 34}},
		{"bottom-right", r.BottomRight(), Point{22, 34}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %v, expected %v", tc.got, tc.expected)
			}
		})
	}

	corners := r.Corners()
	if corners[0] != r.TopLeft() || corners[3] != r.BottomRight() {
		t.Errorf("Corners() order wrong: %v", corners)
	}
}

func TestRectangleSetters(t *testing.T) {
	r := NewRectangle(0, 0, 10, 6)

	r.SetTopLeft(5, 7)
	if r.X != 5 || r.Y != 7 {
		t.Errorf("SetTopLeft() = (%d, %d), expected (5, 7)", r.X, r.Y)
	}

	r.SetCenterPoint(20, 20)
	if r.X != 15 || r.Y != 17 {
		t.Errorf("SetCenterPoint() = (%d, %d), expected (15, 17)", r.X, r.Y)
	}
}

func TestRectangleIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rectangle
		expected bool
	}{
		{"overlapping", NewRectangle(0, 0, 10, 10), NewRectangle(5, 5, 10, 10), true},
		{"adjacent", NewRectangle(0, 0, 10, 10), NewRectangle(10, 0, 10, 10), false},
		{"apart", NewRectangle(0, 0, 10, 10), NewRectangle(0, 15, 10, 10), false},
		{"contained", NewRectangle(0, 0, 20, 20), NewRectangle(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectangleUnion(t *testing.T) {
	a := NewRectangle(0, 0, 4, 4)
	b := NewRectangle(10, 2, 2, 8)

	u := a.Union(b)
	if u != NewRectangle(0, 0, 12, 10) {
		t.Errorf("Union() = %+v", u)
	}
	if got := (Rectangle{}).Union(b); got != b {
		t.Errorf("empty Union() = %+v, expected %+v", got, b)
	}
}

func TestBoundingBoxFollowsAnchor(t *testing.T) {
	anchor := &fixedAnchor{x: 8, y: 8}
	box := NewBoundingBox(anchor, 2, 1, 12, 14)

	if box.X != 10 || box.Y != 9 {
		t.Fatalf("initial box at (%d, %d), expected (10, 9)", box.X, box.Y)
	}

	anchor.x, anchor.y = 40, 30
	if box.X != 10 {
		t.Error("box should not move until Update()")
	}

	box.Update()
	if box.X != 42 || box.Y != 31 {
		t.Errorf("after Update() box at (%d, %d), expected (42, 31)", box.X, box.Y)
	}

	if got := box.At(0, 0); got != NewRectangle(2, 1, 12, 14) {
		t.Errorf("At(0, 0) = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, expected int
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}

	for _, tc := range tests {
		if got := FloorDiv(tc.a, tc.b); got != tc.expected {
			t.Errorf("FloorDiv(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}
