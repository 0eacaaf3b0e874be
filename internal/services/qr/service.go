package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Size is the QR image edge length in pixels, sized for phone cameras
const Size = 320

// Service renders join links as QR PNG images
type Service struct {
	baseURL string
}

// New creates a QR service. baseURL is the externally reachable address
// clients join through (e.g. https://play.example.com).
func New(baseURL string) *Service {
	return &Service{
		baseURL: baseURL,
	}
}

// JoinURL is the link a participant follows to join the lobby with the PIN
// pre-filled
func (s *Service) JoinURL(pin string) string {
	return fmt.Sprintf("%s/join?pin=%s", s.baseURL, pin)
}

// JoinCodePNG encodes the join link for a PIN as a PNG image
func (s *Service) JoinCodePNG(pin string) ([]byte, error) {
	png, err := qrcode.Encode(s.JoinURL(pin), qrcode.Medium, Size)
	if err != nil {
		return nil, fmt.Errorf("qr generation failed: %w", err)
	}
	return png, nil
}
