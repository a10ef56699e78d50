package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestSpanResolvePairs(t *testing.T) {
	// Every distinct pair of components must reproduce min=10, size=100
	// (mid=60, max=110).
	tests := []struct {
		name string
		a, b Attribute
		va   float64
		vb   float64
	}{
		{"MinMax", MinX, MaxX, 10, 110},
		{"MinSize", MinX, Width, 10, 100},
		{"MinMid", MinX, MidX, 10, 60},
		{"MaxSize", MaxX, Width, 110, 100},
		{"MaxMid", MaxX, MidX, 110, 60},
		{"MidSize", MidX, Width, 60, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Span
			s.Set(tt.a, tt.va)
			s.Set(tt.b, tt.vb)

			min, size, ok := s.Resolve()
			if !ok {
				t.Fatal("Resolve() not determined with two knowns")
			}
			if !approx(min, 10) || !approx(size, 100) {
				t.Errorf("Resolve() = (%g, %g), want (10, 100)", min, size)
			}
		})
	}
}

func TestSpanIdentities(t *testing.T) {
	// For any resolved span, Mid == (Min+Max)/2 and Size == Max-Min.
	var s Span
	s.Set(MidY, 240)
	s.Set(Height, 25)

	min, _, ok := s.Resolve()
	if !ok {
		t.Fatal("Resolve() failed")
	}
	mid, _ := s.Value(MidY)
	max, _ := s.Value(MaxY)
	size, _ := s.Value(Height)

	if !approx(mid, (min+max)/2) {
		t.Errorf("mid = %g, want (min+max)/2 = %g", mid, (min+max)/2)
	}
	if !approx(size, max-min) {
		t.Errorf("size = %g, want max-min = %g", size, max-min)
	}
	if !approx(min, 227.5) || !approx(max, 252.5) {
		t.Errorf("(min, max) = (%g, %g), want (227.5, 252.5)", min, max)
	}
}

func TestSpanUnderDetermined(t *testing.T) {
	var s Span
	if _, _, ok := s.Resolve(); ok {
		t.Error("empty span resolved")
	}

	s.Set(MinX, 5)
	if _, _, ok := s.Resolve(); ok {
		t.Error("single-known span resolved without current geometry")
	}
	if _, ok := s.Value(MaxX); ok {
		t.Error("Value(MaxX) derivable from one known")
	}
	if v, ok := s.Value(MinX); !ok || v != 5 {
		t.Errorf("Value(MinX) = (%g, %v), want (5, true)", v, ok)
	}
}

func TestSpanResolveWith(t *testing.T) {
	tests := []struct {
		name     string
		set      func(s *Span)
		curMin   float64
		curSize  float64
		wantMin  float64
		wantSize float64
		wantOK   bool
	}{
		{
			name:   "Empty",
			set:    func(s *Span) {},
			wantOK: false,
		},
		{
			name:     "PositionalKeepsSize",
			set:      func(s *Span) { s.Set(MidX, 160) },
			curMin:   0,
			curSize:  100,
			wantMin:  110,
			wantSize: 100,
			wantOK:   true,
		},
		{
			name:     "SizeKeepsMin",
			set:      func(s *Span) { s.Set(Width, 80) },
			curMin:   30,
			curSize:  100,
			wantMin:  30,
			wantSize: 80,
			wantOK:   true,
		},
		{
			name:     "TwoKnownsIgnoreCurrent",
			set:      func(s *Span) { s.Set(MinY, 262.5); s.Set(MaxY, 470) },
			curMin:   999,
			curSize:  999,
			wantMin:  262.5,
			wantSize: 207.5,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Span
			tt.set(&s)

			min, size, ok := s.ResolveWith(tt.curMin, tt.curSize)
			if ok != tt.wantOK {
				t.Fatalf("ResolveWith() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !approx(min, tt.wantMin) || !approx(size, tt.wantSize) {
				t.Errorf("ResolveWith() = (%g, %g), want (%g, %g)", min, size, tt.wantMin, tt.wantSize)
			}
		})
	}
}

func TestSpanSetOverrides(t *testing.T) {
	var s Span
	s.Set(MinX, 10)
	s.Set(MinX, 20)
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	if v, _ := s.Value(MinX); v != 20 {
		t.Errorf("Value(MinX) = %g, want 20 (last write wins)", v)
	}
}

func TestRectAttrRoundTrip(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		attr Attribute
		want float64
	}{
		{MinX, 10},
		{MidX, 60},
		{MaxX, 110},
		{Width, 100},
		{MinY, 20},
		{MidY, 45},
		{MaxY, 70},
		{Height, 50},
	}

	for _, tt := range tests {
		if got := r.Attr(tt.attr); !approx(got, tt.want) {
			t.Errorf("Attr(%v) = %g, want %g", tt.attr, got, tt.want)
		}
	}
}

func TestRectWithAxis(t *testing.T) {
	r := Rect{X: 1, Y: 2, W: 3, H: 4}

	got := r.WithAxis(AxisX, 10, 20)
	if got.X != 10 || got.W != 20 || got.Y != 2 || got.H != 4 {
		t.Errorf("WithAxis(AxisX) = %v", got)
	}

	got = r.WithAxis(AxisY, 30, 40)
	if got.Y != 30 || got.H != 40 || got.X != 1 || got.W != 3 {
		t.Errorf("WithAxis(AxisY) = %v", got)
	}
}
