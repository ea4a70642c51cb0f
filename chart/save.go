package chart

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"gonum.org/v1/plot"
)

// Format returns the image format implied by the URL extension.
func Format(URL string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(URL), "."))
	switch ext {
	case "png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
		return ext, nil
	}
	return "", fmt.Errorf("chart: unsupported image format %q", ext)
}

// Save encodes p at the configured size and writes it to URL. URLs without
// a scheme are local paths, resolved against the working directory.
func Save(ctx context.Context, p *plot.Plot, URL string, cfg Config) error {
	format, err := Format(URL)
	if err != nil {
		return err
	}
	if !strings.Contains(URL, "://") {
		if URL, err = filepath.Abs(URL); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
	}
	w, err := p.WriterTo(cfg.Width, cfg.Height(), format)
	if err != nil {
		return fmt.Errorf("chart: encode %s: %w", format, err)
	}
	buf := new(bytes.Buffer)
	if _, err := w.WriteTo(buf); err != nil {
		return fmt.Errorf("chart: encode %s: %w", format, err)
	}
	fs := afs.New()
	ok, err := fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("chart: stat %s: %w", URL, err)
	}
	if ok {
		if err := fs.Delete(ctx, URL); err != nil {
			return fmt.Errorf("chart: replace %s: %w", URL, err)
		}
	}
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, buf); err != nil {
		return fmt.Errorf("chart: write %s: %w", URL, err)
	}
	return nil
}
