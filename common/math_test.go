package common

import "testing"

func TestIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b [4]float64
		want bool
	}{
		{"overlap", [4]float64{0, 0, 10, 10}, [4]float64{5, 5, 10, 10}, true},
		{"contained", [4]float64{0, 0, 100, 100}, [4]float64{10, 10, 5, 5}, true},
		{"apart", [4]float64{0, 0, 10, 10}, [4]float64{20, 0, 10, 10}, false},
		{"touching_edge", [4]float64{0, 0, 10, 10}, [4]float64{10, 0, 10, 10}, false},
		{"above", [4]float64{0, 0, 10, 10}, [4]float64{0, -11, 10, 10}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Intersects(c.a[0], c.a[1], c.a[2], c.a[3], c.b[0], c.b[1], c.b[2], c.b[3])
			if got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if rev := Intersects(c.b[0], c.b[1], c.b[2], c.b[3], c.a[0], c.a[1], c.a[2], c.a[3]); rev != got {
				t.Fatalf("Intersects is not symmetric")
			}
		})
	}
}

