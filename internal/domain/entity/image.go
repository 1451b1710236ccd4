package entity

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrUnsupportedImage = errors.New("unsupported image")
	ErrInvalidDataURL   = errors.New("invalid data url")
)

// PreparedImage нормализованное изображение, готовое к отправке в модель.
type PreparedImage struct {
	Data     []byte // закодированные байты (JPEG)
	MIMEType string // например image/jpeg
	Width    int    // ширина после уменьшения
	Height   int    // высота после уменьшения
}

// DataURL кодирует изображение в data URL (base64).
func (p *PreparedImage) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// ParseDataURL разбирает data URL обратно в изображение.
func ParseDataURL(s string) (*PreparedImage, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURL)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURL)
	}

	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mime == "" {
		return nil, fmt.Errorf("%w: expected <mime>;base64", ErrInvalidDataURL)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	return &PreparedImage{Data: data, MIMEType: mime}, nil
}
