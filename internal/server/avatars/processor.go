package avatars

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	Size        = 250
	jpegQuality = 85
)

// ErrInvalidImage is returned when the upload cannot be decoded as an image.
var ErrInvalidImage = errors.New("unsupported image")

// Key is the deterministic storage key of userID's avatar.
func Key(userID string) string {
	return "avatars/" + userID + ".jpg"
}

// Processor normalises uploads to a Size x Size JPEG and stores them.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// Process decodes src, crops it to a centred square of Size pixels and
// returns the stored avatar's URL.
func (p *Processor) Process(ctx context.Context, userID string, src io.Reader) (string, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	img = imaging.Fill(img, Size, Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}

	url, err := p.store.Put(ctx, Key(userID), &buf, "image/jpeg")
	if err != nil {
		return "", err
	}
	return url, nil
}
