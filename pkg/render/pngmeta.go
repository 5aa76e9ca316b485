package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ErrNotPNG is returned by [WithDPI] for data without a PNG signature.
var ErrNotPNG = errors.New("not a PNG stream")

// WithDPI returns a copy of the PNG data with a pHYs chunk recording dpi,
// so viewers and print tools know the intended physical size. Existing pHYs
// chunks are replaced. The new chunk follows IHDR.
func WithDPI(data []byte, dpi int) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, ErrNotPNG
	}

	out := make([]byte, 0, len(data)+21)
	out = append(out, pngSignature...)

	rest := data[len(pngSignature):]
	for len(rest) > 0 {
		if len(rest) < 12 {
			return nil, ErrNotPNG
		}
		n := int(binary.BigEndian.Uint32(rest[:4]))
		if n < 0 || len(rest) < 12+n {
			return nil, ErrNotPNG
		}
		chunk := rest[:12+n]
		typ := string(chunk[4:8])
		rest = rest[12+n:]

		if typ == "pHYs" {
			continue
		}
		out = append(out, chunk...)
		if typ == "IHDR" {
			out = append(out, physChunk(dpi)...)
		}
	}
	return out, nil
}

// physChunk encodes a pHYs chunk with equal x and y pixels per metre.
func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	body := make([]byte, 0, 13)
	body = append(body, "pHYs"...)
	body = binary.BigEndian.AppendUint32(body, ppm)
	body = binary.BigEndian.AppendUint32(body, ppm)
	body = append(body, 1) // unit: metre

	chunk := binary.BigEndian.AppendUint32(nil, 9)
	chunk = append(chunk, body...)
	return binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(body))
}
