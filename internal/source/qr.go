package source

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/mte/internal/model"
)

const qrPixels = 256

// QRClip returns an image clip showing a QR code for url. The PNG is inlined
// as a data URI so the project stays self-contained.
func QRClip(url string, start, duration float64, layer int) (model.Clip, error) {
	if url == "" {
		return model.Clip{}, fmt.Errorf("qr: empty url")
	}
	png, err := qrcode.Encode(url, qrcode.Medium, qrPixels)
	if err != nil {
		return model.Clip{}, fmt.Errorf("qr: %w", err)
	}

	c := model.NewClip(model.EntityImage, start, layer)
	c.Name = "QR"
	c.Duration = duration
	c.X, c.Y = model.Ptr(85.0), model.Ptr(75.0)
	c.W, c.H = model.Ptr(20.0), model.Ptr(20.0)
	c.Payload = &model.ImagePayload{
		Src:       "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		ObjectFit: model.FitContain,
	}
	return c, nil
}
