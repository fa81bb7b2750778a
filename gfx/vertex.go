package gfx

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Point is a position in screen pixel space, origin top-left.
type Point = mgl32.Vec2

// Color is a linear RGBA colour with components in [0, 1].
type Color = mgl32.Vec4

// Vertex is the overlay's only vertex format: a position in normalized
// device coordinates and a colour.
type Vertex struct {
	Position mgl32.Vec3
	Color    Color
}

// VertexStride is the byte size of one Vertex as laid out in a vertex buffer.
const VertexStride = uint32(unsafe.Sizeof(Vertex{}))

// RGBA builds a Color from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q. %w", s, err)
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// VertexBytes reinterprets vertices as the byte slice uploaded to the GPU.
func VertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(VertexStride))
}

// IndexBytes reinterprets 32-bit indices as bytes.
func IndexBytes(indices []uint32) []byte {
	if len(indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*4)
}
