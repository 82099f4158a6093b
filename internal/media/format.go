package media

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies the container/codec family requested for a download.
type Format string

const (
	FormatMP4  Format = "MP4"
	FormatWEBM Format = "WEBM"
	FormatGIF  Format = "GIF"
)

// ErrUnsupportedFormat is returned when a format value is outside the fixed set.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat maps a product-facing format string ("mp4", "WEBM", ...) to a
// Format. The empty string defaults to MP4.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(FormatMP4):
		return FormatMP4, nil
	case string(FormatWEBM):
		return FormatWEBM, nil
	case string(FormatGIF):
		return FormatGIF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatWEBM:
		return "video/webm"
	case FormatGIF:
		return "image/gif"
	default:
		return "video/mp4"
	}
}

// Extension returns the file extension (without dot) for the format.
func (f Format) Extension() string {
	return strings.ToLower(string(f))
}
