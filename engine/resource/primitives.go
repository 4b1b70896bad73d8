package resource

import (
	"fmt"
	"math"
	"strings"
)

// PrimitiveKind selects one of the built-in geometries.
type PrimitiveKind int

const (
	PrimitiveTriangle PrimitiveKind = iota
	PrimitiveQuad
	PrimitiveCube
	PrimitiveSphere
)

var primitiveNames = [...]string{"triangle", "quad", "cube", "sphere"}

func (k PrimitiveKind) String() string {
	if int(k) < 0 || int(k) >= len(primitiveNames) {
		return fmt.Sprintf("primitive(%d)", int(k))
	}
	return primitiveNames[k]
}

// ParsePrimitiveKind converts a name such as "quad" back into a PrimitiveKind.
//
// Parameters:
//   - name: case-insensitive primitive name
//
// Returns:
//   - PrimitiveKind: the matching kind
//   - error: an error if the name is unknown
func ParsePrimitiveKind(name string) (PrimitiveKind, error) {
	for i, n := range primitiveNames {
		if strings.EqualFold(n, name) {
			return PrimitiveKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown primitive %q", name)
}

// Geometry returns the vertices and indices of the primitive.
// Indices are nil for primitives drawn without an index buffer.
//
// Returns:
//   - []ColorVertex: the vertices
//   - []uint16: the triangle-list indices, or nil
func (k PrimitiveKind) Geometry() ([]ColorVertex, []uint16) {
	switch k {
	case PrimitiveTriangle:
		return triangleVertices(), nil
	case PrimitiveQuad:
		return quadVertices(), quadIndices()
	case PrimitiveCube:
		return cubeVertices(), cubeIndices()
	case PrimitiveSphere:
		return sphereVertices(), sphereIndices()
	default:
		return nil, nil
	}
}

func triangleVertices() []ColorVertex {
	return []ColorVertex{
		{Position: [3]float32{0.0, 0.5, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
		{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
		{Position: [3]float32{0.5, -0.5, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
	}
}

func quadVertices() []ColorVertex {
	return []ColorVertex{
		{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
		{Position: [3]float32{0.5, -0.5, 0.0}, Color: [3]float32{1.0, 1.0, 0.0}},
		{Position: [3]float32{0.5, 0.5, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
		{Position: [3]float32{-0.5, 0.5, 0.0}, Color: [3]float32{1.0, 1.0, 0.0}},
	}
}

func quadIndices() []uint16 {
	return []uint16{0, 1, 2, 0, 2, 3}
}

// cubeVertices returns 24 vertices, four per face, so each face carries its own color ramp.
func cubeVertices() []ColorVertex {
	const s = float32(0.5)
	return []ColorVertex{
		// front (+Z), reds
		{Position: [3]float32{-s, -s, s}, Color: [3]float32{1.0, 0.0, 0.0}},
		{Position: [3]float32{s, -s, s}, Color: [3]float32{1.0, 0.2, 0.0}},
		{Position: [3]float32{s, s, s}, Color: [3]float32{1.0, 0.4, 0.0}},
		{Position: [3]float32{-s, s, s}, Color: [3]float32{1.0, 0.6, 0.0}},
		// back (-Z), blues
		{Position: [3]float32{s, -s, -s}, Color: [3]float32{0.0, 0.0, 1.0}},
		{Position: [3]float32{-s, -s, -s}, Color: [3]float32{0.0, 0.2, 1.0}},
		{Position: [3]float32{-s, s, -s}, Color: [3]float32{0.0, 0.4, 1.0}},
		{Position: [3]float32{s, s, -s}, Color: [3]float32{0.0, 0.6, 1.0}},
		// left (-X), greens
		{Position: [3]float32{-s, -s, -s}, Color: [3]float32{0.0, 1.0, 0.0}},
		{Position: [3]float32{-s, -s, s}, Color: [3]float32{0.2, 1.0, 0.0}},
		{Position: [3]float32{-s, s, s}, Color: [3]float32{0.4, 1.0, 0.0}},
		{Position: [3]float32{-s, s, -s}, Color: [3]float32{0.6, 1.0, 0.0}},
		// right (+X), magentas
		{Position: [3]float32{s, -s, s}, Color: [3]float32{1.0, 0.0, 1.0}},
		{Position: [3]float32{s, -s, -s}, Color: [3]float32{1.0, 0.2, 1.0}},
		{Position: [3]float32{s, s, -s}, Color: [3]float32{1.0, 0.4, 1.0}},
		{Position: [3]float32{s, s, s}, Color: [3]float32{1.0, 0.6, 1.0}},
		// top (+Y), cyans
		{Position: [3]float32{-s, s, s}, Color: [3]float32{0.0, 1.0, 1.0}},
		{Position: [3]float32{s, s, s}, Color: [3]float32{0.2, 1.0, 1.0}},
		{Position: [3]float32{s, s, -s}, Color: [3]float32{0.4, 1.0, 1.0}},
		{Position: [3]float32{-s, s, -s}, Color: [3]float32{0.6, 1.0, 1.0}},
		// bottom (-Y), yellows
		{Position: [3]float32{-s, -s, -s}, Color: [3]float32{1.0, 1.0, 0.0}},
		{Position: [3]float32{s, -s, -s}, Color: [3]float32{1.0, 1.0, 0.2}},
		{Position: [3]float32{s, -s, s}, Color: [3]float32{1.0, 1.0, 0.4}},
		{Position: [3]float32{-s, -s, s}, Color: [3]float32{1.0, 1.0, 0.6}},
	}
}

func cubeIndices() []uint16 {
	indices := make([]uint16, 0, 36)
	for face := uint16(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return indices
}

const (
	sphereSectors = 32
	sphereStacks  = 32
	sphereRadius  = 0.5
)

// sphereVertices walks stacks from the +Z pole to the -Z pole, emitting sectors+1 vertices per ring
// so the seam has duplicated vertices. Color is the position shifted into [0, 1].
func sphereVertices() []ColorVertex {
	vertices := make([]ColorVertex, 0, (sphereStacks+1)*(sphereSectors+1))
	for i := 0; i <= sphereStacks; i++ {
		stackAngle := math.Pi/2 - float64(i)*math.Pi/sphereStacks
		xy := sphereRadius * math.Cos(stackAngle)
		z := float32(sphereRadius * math.Sin(stackAngle))

		for j := 0; j <= sphereSectors; j++ {
			sectorAngle := float64(j) * 2 * math.Pi / sphereSectors
			x := float32(xy * math.Cos(sectorAngle))
			y := float32(xy * math.Sin(sectorAngle))
			vertices = append(vertices, ColorVertex{
				Position: [3]float32{x, y, z},
				Color:    [3]float32{x + 0.5, y + 0.5, z + 0.5},
			})
		}
	}
	return vertices
}

// sphereIndices emits two triangles per quad, dropping the degenerate one at each pole.
func sphereIndices() []uint16 {
	indices := make([]uint16, 0, sphereSectors*(sphereStacks-1)*6)
	for i := 0; i < sphereStacks; i++ {
		k1 := i * (sphereSectors + 1)
		k2 := k1 + sphereSectors + 1
		for j := 0; j < sphereSectors; j++ {
			if i != 0 {
				indices = append(indices, uint16(k1+j), uint16(k2+j), uint16(k1+j+1))
			}
			if i != sphereStacks-1 {
				indices = append(indices, uint16(k1+j+1), uint16(k2+j), uint16(k2+j+1))
			}
		}
	}
	return indices
}
