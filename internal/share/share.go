package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is a mobile-friendly QR code size in pixels
const DefaultQRSize = 320

// ShareError is a custom error type for share link errors
type ShareError string

// Error implements the error interface
func (e ShareError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        ShareError = "config cannot be nil"
	ErrMissingPublicURL ShareError = "public URL cannot be empty"
	ErrInvalidPublicURL ShareError = "public URL must be an absolute http(s) URL"
)

// Config holds configuration for share links
type Config struct {
	// PublicURL is where the companion server is reachable by participants
	PublicURL string

	// QRSize defaults to DefaultQRSize
	QRSize int
}

// Linker builds the links handed out by the share button
type Linker struct {
	base   *url.URL
	qrSize int
}

// New creates a new Linker
func New(cfg *Config) (*Linker, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	raw := strings.TrimSpace(cfg.PublicURL)
	if raw == "" {
		return nil, ErrMissingPublicURL
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, ErrInvalidPublicURL
	}
	base.Path = strings.TrimSuffix(base.Path, "/")
	base.RawPath = ""
	base.RawQuery = ""
	base.ForceQuery = false
	base.Fragment = ""
	base.RawFragment = ""

	size := cfg.QRSize
	if size <= 0 {
		size = DefaultQRSize
	}

	return &Linker{
		base:   base,
		qrSize: size,
	}, nil
}

// URL returns the page everyone shares
func (l *Linker) URL() string {
	return l.base.String() + "/"
}

// WheelURL returns the image of a mode's wheel
func (l *Linker) WheelURL(mode models.Mode) string {
	return l.base.JoinPath("wheel", string(mode)).String()
}

// QRCode encodes the share URL as a PNG
func (l *Linker) QRCode() ([]byte, error) {
	png, err := qrcode.Encode(l.URL(), qrcode.Medium, l.qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	return png, nil
}
