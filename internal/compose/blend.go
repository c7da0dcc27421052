package compose

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/thumbvid/internal/media"
)

// blender owns the single resized copy of the thumbnail used by a
// request. The copy is produced once; the per-frame path only reads it.
type blender struct {
	pix []byte // rgb24, w*h*3
	w   int
	h   int
}

func newBlender(img image.Image, w, h int) *blender {
	return &blender{pix: resizeRGB(img, w, h), w: w, h: h}
}

// resizeRGB scales the image to w x h with Catmull-Rom resampling and
// packs the result to rgb24.
func resizeRGB(img image.Image, w, h int) []byte {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		si := dst.PixOffset(0, y)
		di := y * w * 3
		for x := 0; x < w; x++ {
			pix[di] = dst.Pix[si]
			pix[di+1] = dst.Pix[si+1]
			pix[di+2] = dst.Pix[si+2]
			si += 4
			di += 3
		}
	}
	return pix
}

// blendInto composites the resized thumbnail into dst with its top-left
// corner at (x, y). Pixels outside the destination rectangle are not
// touched and the hot path performs no allocation.
func (b *blender) blendInto(dst *media.Frame, x, y int, opacity float64) {
	// 8.8 fixed point; alpha 256 degenerates to an exact overwrite
	alpha := int(opacity*256 + 0.5)
	if alpha <= 0 {
		return
	}
	if alpha > 256 {
		alpha = 256
	}
	inv := 256 - alpha

	stride := dst.Width * 3
	for row := 0; row < b.h; row++ {
		di := (y+row)*stride + x*3
		si := row * b.w * 3
		for i := 0; i < b.w*3; i++ {
			d := int(dst.Pix[di+i])
			s := int(b.pix[si+i])
			dst.Pix[di+i] = byte((d*inv + s*alpha + 128) >> 8)
		}
	}
}
