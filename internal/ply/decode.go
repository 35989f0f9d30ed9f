package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"reconstruct-editor/internal/geometry"
)

// valueReader yields body values one scalar at a time regardless of encoding.
type valueReader interface {
	next(typ string) (float64, error)
}

type asciiReader struct {
	sc *bufio.Scanner
}

func (r *asciiReader) next(typ string) (float64, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, err
		}
		return 0, formatErr("unexpected end of body")
	}
	v, err := strconv.ParseFloat(r.sc.Text(), 64)
	if err != nil {
		return 0, formatErr("bad %s value %q", typ, r.sc.Text())
	}
	return v, nil
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (r *binaryReader) next(typ string) (float64, error) {
	n := typeSize[typ]
	b := r.buf[:n]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return 0, formatErr("truncated body: %v", err)
	}
	switch typ {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default:
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

func newValueReader(br *bufio.Reader, f Format) valueReader {
	switch f {
	case BinaryLittleEndian:
		return &binaryReader{r: br, order: binary.LittleEndian}
	case BinaryBigEndian:
		return &binaryReader{r: br, order: binary.BigEndian}
	}
	sc := bufio.NewScanner(br)
	sc.Split(bufio.ScanWords)
	return &asciiReader{sc: sc}
}

// readList reads a list property: its count followed by that many items.
func readList(vr valueReader, p Property) ([]float64, error) {
	c, err := vr.next(p.CountType)
	if err != nil {
		return nil, err
	}
	if c < 0 || c != math.Trunc(c) || c > maxValue[p.CountType] {
		return nil, formatErr("bad list length %v", c)
	}
	n := int(c)
	items := make([]float64, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := vr.next(p.Type)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// maxPrealloc bounds up-front allocations sized from header or list counts;
// larger buffers grow as values are actually read.
const maxPrealloc = 1 << 16

// maxValue is the largest value of each integer type.
var maxValue = map[string]float64{
	"char": math.MaxInt8, "int8": math.MaxInt8,
	"uchar": math.MaxUint8, "uint8": math.MaxUint8,
	"short": math.MaxInt16, "int16": math.MaxInt16,
	"ushort": math.MaxUint16, "uint16": math.MaxUint16,
	"int": math.MaxInt32, "int32": math.MaxInt32,
	"uint": math.MaxUint32, "uint32": math.MaxUint32,
}

// Decode reads a PLY stream into a geometry: vertex x/y/z become "position", nx/ny/nz
// "normal", red/green/blue "color" (0..1), and face lists a triangle index (polygons are fanned).
func Decode(r io.Reader) (*geometry.BufferGeometry, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}
	vr := newValueReader(br, h.Format)
	g := geometry.NewBufferGeometry()
	sawVertex := false
	for _, el := range h.Elements {
		switch el.Name {
		case "vertex":
			if err := readVertices(vr, el, g); err != nil {
				return nil, err
			}
			sawVertex = true
		case "face":
			if err := readFaces(vr, el, g); err != nil {
				return nil, err
			}
		default:
			if err := skipElement(vr, el); err != nil {
				return nil, err
			}
		}
	}
	if !sawVertex {
		return nil, formatErr("no vertex element")
	}
	n := g.VertexCount()
	for _, idx := range g.Index {
		if int(idx) >= n {
			return nil, formatErr("face index %d out of range (%d vertices)", idx, n)
		}
	}
	return g, nil
}

// vertex property slots
const (
	slotNone = iota
	slotX
	slotY
	slotZ
	slotNX
	slotNY
	slotNZ
	slotR
	slotG
	slotB
)

var vertexSlots = map[string]int{
	"x": slotX, "y": slotY, "z": slotZ,
	"nx": slotNX, "ny": slotNY, "nz": slotNZ,
	"red": slotR, "green": slotG, "blue": slotB,
	"r": slotR, "g": slotG, "b": slotB,
}

func readVertices(vr valueReader, el Element, g *geometry.BufferGeometry) error {
	slots := make([]int, len(el.Properties))
	seen := make(map[int]bool)
	for i, p := range el.Properties {
		if s, ok := vertexSlots[p.Name]; ok && !p.IsList {
			slots[i] = s
			seen[s] = true
		}
	}
	if !seen[slotX] || !seen[slotY] || !seen[slotZ] {
		return formatErr("vertex element lacks x, y or z")
	}
	hasNormals := seen[slotNX] && seen[slotNY] && seen[slotNZ]
	hasColors := seen[slotR] && seen[slotG] && seen[slotB]

	capacity := min(el.Count, maxPrealloc) * 3
	pos := make([]float32, 0, capacity)
	var normals, colors []float32
	if hasNormals {
		normals = make([]float32, 0, capacity)
	}
	if hasColors {
		colors = make([]float32, 0, capacity)
	}
	for v := 0; v < el.Count; v++ {
		o := 3 * v
		pos = append(pos, 0, 0, 0)
		if hasNormals {
			normals = append(normals, 0, 0, 0)
		}
		if hasColors {
			colors = append(colors, 0, 0, 0)
		}
		for i, p := range el.Properties {
			if p.IsList {
				if _, err := readList(vr, p); err != nil {
					return err
				}
				continue
			}
			val, err := vr.next(p.Type)
			if err != nil {
				return fmt.Errorf("ply: vertex %d: %w", v, err)
			}
			switch s := slots[i]; s {
			case slotX, slotY, slotZ:
				pos[o+s-slotX] = float32(val)
			case slotNX, slotNY, slotNZ:
				if hasNormals {
					normals[o+s-slotNX] = float32(val)
				}
			case slotR, slotG, slotB:
				if hasColors {
					if isIntegerType(p.Type) {
						val /= 255
					}
					colors[o+s-slotR] = float32(val)
				}
			}
		}
	}
	g.SetAttribute(geometry.AttrPosition, geometry.NewAttribute(pos, 3))
	if hasNormals {
		g.SetAttribute(geometry.AttrNormal, geometry.NewAttribute(normals, 3))
	}
	if hasColors {
		g.SetAttribute(geometry.AttrColor, geometry.NewAttribute(colors, 3))
	}
	return nil
}

func readFaces(vr valueReader, el Element, g *geometry.BufferGeometry) error {
	index := make([]uint32, 0, min(el.Count, maxPrealloc)*3)
	for f := 0; f < el.Count; f++ {
		for _, p := range el.Properties {
			if !p.IsList {
				if _, err := vr.next(p.Type); err != nil {
					return err
				}
				continue
			}
			items, err := readList(vr, p)
			if err != nil {
				return fmt.Errorf("ply: face %d: %w", f, err)
			}
			if p.Name != "vertex_indices" && p.Name != "vertex_index" {
				continue
			}
			for _, it := range items {
				if it < 0 || it != math.Trunc(it) || it > math.MaxUint32 {
					return formatErr("face %d: bad vertex index %v", f, it)
				}
			}
			for k := 1; k+1 < len(items); k++ {
				index = append(index, uint32(items[0]), uint32(items[k]), uint32(items[k+1]))
			}
		}
	}
	g.SetIndex(index)
	return nil
}

func skipElement(vr valueReader, el Element) error {
	for i := 0; i < el.Count; i++ {
		for _, p := range el.Properties {
			var err error
			if p.IsList {
				_, err = readList(vr, p)
			} else {
				_, err = vr.next(p.Type)
			}
			if err != nil {
				return fmt.Errorf("ply: %s %d: %w", el.Name, i, err)
			}
		}
	}
	return nil
}
