// Package avatars handles profile pictures: normalizing uploads to a fixed
// bitmap format and storing the result either on the user row or in object
// storage.
package avatars

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/atfurman/taskapp/internal/common"
)

// Size is the edge length, in pixels, every stored avatar is scaled to.
const Size = 250

// Normalize decodes an uploaded JPEG or PNG and re-encodes it as a
// Size×Size PNG. Undecodable data is a validation failure, not an internal
// one: the bytes came from the client.
func Normalize(data []byte) ([]byte, error) {

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported image data", common.ErrorValidation)
	}

	dst := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("error encoding avatar: %v", err)
	}

	return buf.Bytes(), nil
}
