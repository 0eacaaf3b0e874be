package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	s := New("https://play.example.com")
	assert.Equal(t, "https://play.example.com/join?pin=0012345", s.JoinURL("0012345"))
}

func TestJoinCodePNG(t *testing.T) {
	s := New("https://play.example.com")

	png, err := s.JoinCodePNG("0012345")
	require.NoError(t, err)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}
