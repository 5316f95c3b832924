package render

import (
	"context"
	"testing"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

func withConverter(t *testing.T, name string) {
	t.Helper()
	old := converter
	converter = name
	t.Cleanup(func() { converter = old })
}

func TestMissingConverter(t *testing.T) {
	withConverter(t, "gentree-no-such-converter")

	if Available() {
		t.Fatal("Available() = true for a missing program")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !gerrors.Is(err, gerrors.ErrCodeRendererUnavailable) {
		t.Errorf("ToPDF() error = %v, want RENDERER_UNAVAILABLE", err)
	}
}

func TestToPNGRejectsBadScale(t *testing.T) {
	_, err := ToPNG(context.Background(), []byte("<svg/>"), 0)
	if !gerrors.Is(err, gerrors.ErrCodeInvalidConfig) {
		t.Errorf("ToPNG() error = %v, want INVALID_CONFIG", err)
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	pdf, err := ToPDF(context.Background(), svg)
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("output does not look like a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}
