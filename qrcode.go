package folio

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	qrcode "github.com/skip2/go-qrcode"
)

// EncodeQR renders content as a QR code image of size x size pixels.
func EncodeQR(content string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("folio: invalid QR size %d", size)
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("folio: encode QR: %w", err)
	}
	return q.Image(size), nil
}

// NewQRSprite returns an image node showing content as a QR code.
func NewQRSprite(name, content string, size int) (*Node, error) {
	img, err := EncodeQR(content, size)
	if err != nil {
		return nil, err
	}
	return NewImage(name, ebiten.NewImageFromImage(img)), nil
}
