// Package qrsvg renders QR codes as SVG documents. The QR matrix comes from
// skip2/go-qrcode; the SVG serialization is done here because that library
// only emits PNG.
package qrsvg

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered pixel size used when a request does not ask
// for specific dimensions.
const DefaultSize = 200

// Render encodes content as a QR code and returns it as an SVG document
// sized to size x size pixels. The quiet zone produced by the encoder is
// preserved. Output is deterministic for a given (content, size) pair.
func Render(content string, size int) (string, error) {
	if size <= 0 {
		size = DefaultSize
	}

	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR content: %w", err)
	}

	bitmap := code.Bitmap()
	modules := len(bitmap)

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		size, size, modules, modules)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, modules, modules)

	// One path for all dark modules keeps the document small.
	b.WriteString(`<path fill="#000000" d="`)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&b, "M%d %dh1v1h-1z", x, y)
			}
		}
	}
	b.WriteString(`"/></svg>`)

	return b.String(), nil
}
