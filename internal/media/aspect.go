package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	// Register the decoders for the formats the portfolio ships in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const fourByFiveTolerance = 0.04

// AspectInfo reports a measured image's dimensions. Ratio is 0 when the
// image could not be decoded ("unknown aspect").
type AspectInfo struct {
	Width  int
	Height int
	Ratio  float64
}

// Measurer fetches images and reads their dimensions from the header bytes.
type Measurer struct {
	client  *http.Client
	baseURL string
}

// NewMeasurer builds a measurer. baseURL is prefixed onto relative image
// paths; an empty baseURL means paths must already be absolute.
func NewMeasurer(baseURL string, timeout time.Duration) *Measurer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Measurer{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Measure fetches src and decodes just the image config. Failures return a
// zero-ratio AspectInfo alongside the error so callers can treat the aspect
// as unknown without special cases.
func (m *Measurer) Measure(ctx context.Context, src string) (AspectInfo, error) {
	resolved, err := m.resolve(src)
	if err != nil {
		return AspectInfo{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return AspectInfo{}, fmt.Errorf("build image request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return AspectInfo{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return AspectInfo{}, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	// DecodeConfig only needs the header, but the reader must not be
	// consumed past it twice, so buffer the body once.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return AspectInfo{}, fmt.Errorf("read image body: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return AspectInfo{}, fmt.Errorf("decode image config: %w", err)
	}
	if cfg.Height == 0 {
		return AspectInfo{}, fmt.Errorf("decode image config: zero height")
	}

	return AspectInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		Ratio:  float64(cfg.Width) / float64(cfg.Height),
	}, nil
}

func (m *Measurer) resolve(src string) (string, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return "", fmt.Errorf("empty image source")
	}
	if u, err := url.Parse(trimmed); err == nil && u.IsAbs() {
		return trimmed, nil
	}
	if m.baseURL == "" {
		return "", fmt.Errorf("relative image source %q without base url", trimmed)
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return m.baseURL + trimmed, nil
}

// IsFourByFive reports whether ratio falls within the 4:5 family: portrait
// 0.8 or landscape 1.25, within tolerance.
func IsFourByFive(ratio float64) bool {
	return within(ratio, 0.8, fourByFiveTolerance) || within(ratio, 1.25, fourByFiveTolerance)
}

// IsTwoByThree reports whether ratio falls within the 2:3 family.
func IsTwoByThree(ratio float64) bool {
	return within(ratio, 2.0/3.0, fourByFiveTolerance) || within(ratio, 1.5, fourByFiveTolerance)
}

func within(ratio, target, tolerance float64) bool {
	diff := ratio - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
