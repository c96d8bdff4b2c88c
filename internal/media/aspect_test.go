package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func servePNG(t *testing.T, width, height int, fill color.Color) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
}

func TestMeasureReportsRatio(t *testing.T) {
	srv := servePNG(t, 800, 1000, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	defer srv.Close()

	m := NewMeasurer("", time.Second)
	info, err := m.Measure(context.Background(), srv.URL+"/image.png")
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if info.Width != 800 || info.Height != 1000 {
		t.Fatalf("unexpected dimensions %dx%d", info.Width, info.Height)
	}
	if info.Ratio != 0.8 {
		t.Fatalf("expected ratio 0.8, got %v", info.Ratio)
	}
}

func TestMeasureRelativePathUsesBaseURL(t *testing.T) {
	srv := servePNG(t, 300, 200, color.RGBA{A: 255})
	defer srv.Close()

	m := NewMeasurer(srv.URL, time.Second)
	info, err := m.Measure(context.Background(), "/images/prints/x.png")
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if info.Ratio != 1.5 {
		t.Fatalf("expected ratio 1.5, got %v", info.Ratio)
	}
}

func TestMeasureDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	m := NewMeasurer("", time.Second)
	info, err := m.Measure(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if info.Ratio != 0 {
		t.Fatalf("failed measure should report zero ratio, got %v", info.Ratio)
	}
}

func TestIsFourByFive(t *testing.T) {
	cases := []struct {
		ratio float64
		want  bool
	}{
		{0.8, true},
		{0.76, true},
		{0.84, true},
		{0.75, false},
		{1.25, true},
		{1.30, false},
		{1.5, false},
		{0, false},
	}
	for _, tc := range cases {
		if got := IsFourByFive(tc.ratio); got != tc.want {
			t.Fatalf("IsFourByFive(%v) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}

func TestIsTwoByThree(t *testing.T) {
	if !IsTwoByThree(1.5) || !IsTwoByThree(2.0/3.0) {
		t.Fatal("canonical 2:3 ratios should match")
	}
	if IsTwoByThree(1.25) {
		t.Fatal("4:5 ratio should not match 2:3")
	}
}

func TestAverageColorSolidFill(t *testing.T) {
	srv := servePNG(t, 64, 64, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	defer srv.Close()

	m := NewMeasurer("", time.Second)
	rgb, err := m.AverageColor(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("average color: %v", err)
	}
	if rgb.R != 200 || rgb.G != 100 || rgb.B != 50 {
		t.Fatalf("unexpected average %+v", rgb)
	}
}

func TestAverageColorSkipsTransparentPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if x < 16 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 0, G: 255, A: 0})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	m := NewMeasurer("", time.Second)
	rgb, err := m.AverageColor(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("average color: %v", err)
	}
	if rgb.R != 255 || rgb.G != 0 {
		t.Fatalf("transparent half should be ignored, got %+v", rgb)
	}
}

func TestDisplaySizeFlipsLandscape(t *testing.T) {
	if got := DisplaySize("print-npl-portfolio-prints-1", "4x6"); got != "6x4" {
		t.Fatalf("expected 6x4, got %q", got)
	}
	if got := DisplaySize("print-npl-portfolio-prints-1", "8x10"); got != "8x10" {
		t.Fatalf("non-2x3 size should pass through, got %q", got)
	}
	if got := DisplaySize("print-npl-portfolio-prints", "4x6"); got != "4x6" {
		t.Fatalf("portrait product should pass through, got %q", got)
	}
	if got := DisplaySize("print-npl-portfolio-prints-1", ""); got != "" {
		t.Fatalf("empty size should stay empty, got %q", got)
	}
}

func TestDisplaySizeClassifiesByRatio(t *testing.T) {
	// Any size in the 2:3 family flips, not just a fixed list.
	for _, size := range []string{"8x12", "12x18", "24x36", "6x9"} {
		got := DisplaySize("print-npl-portfolio-prints-1", size)
		if got == size {
			t.Fatalf("2:3 size %q should flip, got %q", size, got)
		}
	}
	// 4:5 and malformed labels pass through untouched.
	for _, size := range []string{"16x20", "30x30", "poster", "0x6"} {
		if got := DisplaySize("print-npl-portfolio-prints-1", size); got != size {
			t.Fatalf("size %q should pass through, got %q", size, got)
		}
	}
}
