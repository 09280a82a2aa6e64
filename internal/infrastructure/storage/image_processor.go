package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
)

var ErrInvalidImage = errors.New("invalid image")

// ImageProcessor giải mã ảnh base64 từ client và chuẩn hoá trước khi upload
type ImageProcessor struct {
	MaxSize int64 // bytes sau khi decode
	MaxSide int   // cạnh dài nhất sau khi resize
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &ImageProcessor{MaxSize: maxSize, MaxSide: 1200}
}

// DecodeDataURI nhận "data:image/png;base64,iVBOR..." hoặc base64 thuần
func (p *ImageProcessor) DecodeDataURI(value string) ([]byte, error) {
	payload := value
	if strings.HasPrefix(value, "data:") {
		comma := strings.IndexByte(value, ',')
		if comma < 0 || !strings.Contains(value[:comma], ";base64") {
			return nil, fmt.Errorf("%w: malformed data uri", ErrInvalidImage)
		}
		payload = value[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if int64(len(data)) > p.MaxSize {
		return nil, fmt.Errorf("%w: exceeds %dMB", ErrInvalidImage, p.MaxSize/(1024*1024))
	}
	return data, nil
}

// Process: decode (jpeg/png/gif) → fit trong MaxSide → encode JPEG quality 90
func (p *ImageProcessor) Process(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	switch format {
	case "jpeg", "png", "gif":
	default:
		return nil, fmt.Errorf("%w: format %s not allowed", ErrInvalidImage, format)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.MaxSide || bounds.Dy() > p.MaxSide {
		img = imaging.Fit(img, p.MaxSide, p.MaxSide, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// PrepareDataURI = DecodeDataURI + Process. Kết quả luôn là image/jpeg.
func (p *ImageProcessor) PrepareDataURI(value string) ([]byte, error) {
	raw, err := p.DecodeDataURI(value)
	if err != nil {
		return nil, err
	}
	return p.Process(raw)
}
