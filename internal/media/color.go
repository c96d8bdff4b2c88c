package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
)

// RGB is an averaged sample color, 0-255 per channel.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// AverageColor fetches and fully decodes the image, then averages its pixels
// on a coarse 16x16 sampling grid, skipping near-transparent pixels.
func (m *Measurer) AverageColor(ctx context.Context, src string) (RGB, error) {
	resolved, err := m.resolve(src)
	if err != nil {
		return RGB{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return RGB{}, fmt.Errorf("build image request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return RGB{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return RGB{}, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return RGB{}, fmt.Errorf("read image body: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return RGB{}, fmt.Errorf("decode image: %w", err)
	}

	return sampleAverage(img)
}

const sampleGrid = 16

func sampleAverage(img image.Image) (RGB, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return RGB{}, fmt.Errorf("empty image")
	}

	stepX := bounds.Dx() / sampleGrid
	if stepX == 0 {
		stepX = 1
	}
	stepY := bounds.Dy() / sampleGrid
	if stepY == 0 {
		stepY = 1
	}

	var r, g, b, count uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels; 16/255 scaled up.
			if pa>>8 < 16 {
				continue
			}
			r += uint64(pr >> 8)
			g += uint64(pg >> 8)
			b += uint64(pb >> 8)
			count++
		}
	}
	if count == 0 {
		return RGB{}, fmt.Errorf("no opaque pixels")
	}

	return RGB{
		R: int((r + count/2) / count),
		G: int((g + count/2) / count),
		B: int((b + count/2) / count),
	}, nil
}
