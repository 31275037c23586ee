package captcha

import (
	"fmt"
	"image/color"

	"github.com/mojocn/base64Captcha"
)

// Alphabet leaves out characters that are easy to confuse (0/O, 1/I/l, 2/Z, 5/S).
const Alphabet = "346789ABCDEFGHJKLMNPQRSTUVWXY"

type Renderer interface {
	// Render draws code and returns it as an inline data URI.
	Render(code string) (string, error)
}

type ImageRenderer struct {
	driver *base64Captcha.DriverString
}

func NewImageRenderer(width, height, length int) *ImageRenderer {
	driver := base64Captcha.NewDriverString(
		height,
		width,
		2,
		base64Captcha.OptionShowHollowLine,
		length,
		Alphabet,
		&color.RGBA{R: 240, G: 240, B: 240, A: 255},
		nil,
		nil,
	)
	return &ImageRenderer{driver: driver}
}

func (r *ImageRenderer) Render(code string) (string, error) {
	item, err := r.driver.DrawCaptcha(code)
	if err != nil {
		return "", fmt.Errorf("draw captcha failed: %w", err)
	}
	return item.EncodeB64string(), nil
}
