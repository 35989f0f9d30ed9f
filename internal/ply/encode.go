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

// Encode writes g as PLY: vertex x/y/z (float), nx/ny/nz when g has normals,
// red/green/blue (uchar) when g has colours, and a face list when g is indexed.
func Encode(w io.Writer, g *geometry.BufferGeometry, f Format) error {
	pos := g.Attribute(geometry.AttrPosition)
	if pos == nil || pos.ItemSize != 3 {
		return fmt.Errorf("ply: encode: missing position attribute")
	}
	normals := g.Attribute(geometry.AttrNormal)
	colors := g.Attribute(geometry.AttrColor)
	n := pos.Count()
	if normals.Count() != n {
		normals = nil
	}
	if colors.Count() != n {
		colors = nil
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ply\nformat %s 1.0\ncomment generated by reconstruct-editor\n", f)
	fmt.Fprintf(bw, "element vertex %d\nproperty float x\nproperty float y\nproperty float z\n", n)
	if normals != nil {
		bw.WriteString("property float nx\nproperty float ny\nproperty float nz\n")
	}
	if colors != nil {
		bw.WriteString("property uchar red\nproperty uchar green\nproperty uchar blue\n")
	}
	faces := 0
	if g.Index != nil {
		faces = len(g.Index) / 3
		fmt.Fprintf(bw, "element face %d\nproperty list uchar int vertex_indices\n", faces)
	}
	bw.WriteString("end_header\n")

	vw := newValueWriter(bw, f)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			vw.float(pos.Array[3*i+k])
		}
		if normals != nil {
			for k := 0; k < 3; k++ {
				vw.float(normals.Array[3*i+k])
			}
		}
		if colors != nil {
			for k := 0; k < 3; k++ {
				c := math.Round(float64(colors.Array[3*i+k]) * 255)
				vw.uchar(uint8(math.Max(0, math.Min(255, c))))
			}
		}
		vw.endRow()
	}
	for i := 0; i < faces; i++ {
		vw.uchar(3)
		for k := 0; k < 3; k++ {
			vw.int32(int32(g.Index[3*i+k]))
		}
		vw.endRow()
	}
	if vw.err != nil {
		return vw.err
	}
	return bw.Flush()
}

type valueWriter struct {
	w     *bufio.Writer
	ascii bool
	order binary.ByteOrder
	first bool
	buf   [4]byte
	err   error
}

func newValueWriter(w *bufio.Writer, f Format) *valueWriter {
	vw := &valueWriter{w: w, first: true}
	switch f {
	case BinaryLittleEndian:
		vw.order = binary.LittleEndian
	case BinaryBigEndian:
		vw.order = binary.BigEndian
	default:
		vw.ascii = true
	}
	return vw
}

func (vw *valueWriter) text(s string) {
	if !vw.first {
		vw.w.WriteByte(' ')
	}
	vw.first = false
	vw.w.WriteString(s)
}

func (vw *valueWriter) write(b []byte) {
	if _, err := vw.w.Write(b); err != nil && vw.err == nil {
		vw.err = err
	}
}

func (vw *valueWriter) float(v float32) {
	if vw.ascii {
		vw.text(strconv.FormatFloat(float64(v), 'g', -1, 32))
		return
	}
	vw.order.PutUint32(vw.buf[:], math.Float32bits(v))
	vw.write(vw.buf[:4])
}

func (vw *valueWriter) uchar(v uint8) {
	if vw.ascii {
		vw.text(strconv.Itoa(int(v)))
		return
	}
	vw.write([]byte{v})
}

func (vw *valueWriter) int32(v int32) {
	if vw.ascii {
		vw.text(strconv.Itoa(int(v)))
		return
	}
	vw.order.PutUint32(vw.buf[:], uint32(v))
	vw.write(vw.buf[:4])
}

func (vw *valueWriter) endRow() {
	if vw.ascii {
		vw.w.WriteByte('\n')
		vw.first = true
	}
}
