package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrUnsupportedImage is returned when the data is not a decodable image.
var ErrUnsupportedImage = errors.New("upload a valid image")

// blurHashSize is the thumbnail edge used for BlurHash computation.
const blurHashSize = 64

// extensions maps decoder format names to file extensions.
var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// ImageInfo describes a decoded image.
type ImageInfo struct {
	Format   string
	Ext      string
	Width    int
	Height   int
	BlurHash string
}

// Inspect decodes data fully and describes it. Anything that is not a
// complete gif, jpeg, png or webp image yields ErrUnsupportedImage.
func Inspect(data []byte) (*ImageInfo, error) {
	if len(data) == 0 {
		return nil, ErrUnsupportedImage
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	ext, ok := extensions[format]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ErrUnsupportedImage
	}

	hash, err := blurhash.Encode(4, 3, resizeForBlurHash(img))
	if err != nil {
		return nil, fmt.Errorf("encode blurhash: %w", err)
	}

	return &ImageInfo{
		Format:   format,
		Ext:      ext,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		BlurHash: hash,
	}, nil
}

// resizeForBlurHash scales img down to at most blurHashSize on its longer edge
// with nearest-neighbour sampling.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	if srcWidth <= blurHashSize && srcHeight <= blurHashSize {
		return img
	}

	dstWidth, dstHeight := blurHashSize, blurHashSize
	if srcWidth > srcHeight {
		dstHeight = max(1, srcHeight*blurHashSize/srcWidth)
	} else {
		dstWidth = max(1, srcWidth*blurHashSize/srcHeight)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	for y := 0; y < dstHeight; y++ {
		srcY := y * srcHeight / dstHeight
		for x := 0; x < dstWidth; x++ {
			srcX := x * srcWidth / dstWidth
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}
	return dst
}
