package assets

import "testing"

func TestDecodeImageSizes(t *testing.T) {
	cases := []struct {
		path string
		w, h int
	}{
		{"sky.png", 800, 600},
		{"platform.png", 400, 32},
		{"assets/star.png", 24, 22},
		{"bomb.png", 14, 14},
		{"dude.png", 288, 48},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			img, err := DecodeImage(c.path)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != c.w || b.Dy() != c.h {
				t.Fatalf("expected %dx%d, got %dx%d", c.w, c.h, b.Dx(), b.Dy())
			}
		})
	}
}

func TestDecodeImageMissing(t *testing.T) {
	if _, err := DecodeImage("nope.png"); err == nil {
		t.Fatalf("expected an error for a missing asset")
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"":                       "",
		"star.png":               "star.png",
		"assets/star.png":        "star.png",
		"/home/u/g/assets/a.png": "a.png",
		"/tmp/b.png":             "b.png",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Fatalf("cleanAssetPath(%q): expected %q, got %q", in, want, got)
		}
	}
}
