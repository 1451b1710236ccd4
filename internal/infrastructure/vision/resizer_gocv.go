//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"place-lens/internal/domain/entity"
)

// PrepareBytes декодирует изображение через OpenCV (BGR, альфа отбрасывается),
// уменьшает и кодирует в JPEG.
func (r *Resizer) PrepareBytes(ctx context.Context, data []byte) (*entity.PreparedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		if err == nil {
			mat.Close()
		}
		return nil, fmt.Errorf("%w: opencv could not decode image", entity.ErrUnsupportedImage)
	}
	defer mat.Close()

	w, h := thumbnailSize(mat.Cols(), mat.Rows(), r.MaxSide)
	out := mat
	if w != mat.Cols() || h != mat.Rows() {
		resized := gocv.NewMat()
		defer resized.Close()
		// INTER_AREA лучше всего подходит для уменьшения.
		gocv.Resize(mat, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
		out = resized
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, out, []int{int(gocv.IMWriteJpegQuality), r.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	encoded := make([]byte, buf.Len())
	copy(encoded, buf.GetBytes())

	return &entity.PreparedImage{
		Data:     encoded,
		MIMEType: mimeJPEG,
		Width:    w,
		Height:   h,
	}, nil
}
