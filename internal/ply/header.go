// Package ply reads and writes the PLY polygon file format used by the inference service
// for point clouds and meshes (ASCII and binary, little and big endian).
package ply

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat is returned for input that is not a well-formed PLY file.
var ErrFormat = errors.New("ply: invalid format")

// Format is the body encoding declared in the header.
type Format int

const (
	ASCII Format = iota
	BinaryLittleEndian
	BinaryBigEndian
)

func (f Format) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case BinaryLittleEndian:
		return "binary_little_endian"
	case BinaryBigEndian:
		return "binary_big_endian"
	}
	return "unknown"
}

func parseFormat(s string) (Format, bool) {
	switch s {
	case "ascii":
		return ASCII, true
	case "binary_little_endian":
		return BinaryLittleEndian, true
	case "binary_big_endian":
		return BinaryBigEndian, true
	}
	return 0, false
}

// Property is one column of an element. List properties carry a count type and an item type.
type Property struct {
	Name      string
	Type      string
	IsList    bool
	CountType string
}

// Element is a header block such as "element vertex 8192".
type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// Header is the parsed PLY header.
type Header struct {
	Format   Format
	Version  string
	Elements []Element
	Comments []string
}

// typeSize maps every PLY scalar type name (both spellings) to its byte size.
var typeSize = map[string]int{
	"char": 1, "int8": 1,
	"uchar": 1, "uint8": 1,
	"short": 2, "int16": 2,
	"ushort": 2, "uint16": 2,
	"int": 4, "int32": 4,
	"uint": 4, "uint32": 4,
	"float": 4, "float32": 4,
	"double": 8, "float64": 8,
}

func isIntegerType(t string) bool {
	switch t {
	case "float", "float32", "double", "float64":
		return false
	}
	return true
}

func formatErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// ReadHeader consumes the header from br, leaving br positioned at the first body byte.
func ReadHeader(br *bufio.Reader) (Header, error) {
	var h Header
	magic, err := readLine(br)
	if err != nil || magic != "ply" {
		return h, formatErr("missing ply magic")
	}
	sawFormat := false
	for {
		line, err := readLine(br)
		if err != nil {
			return h, formatErr("unterminated header")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) != 3 {
				return h, formatErr("bad format line %q", line)
			}
			f, ok := parseFormat(fields[1])
			if !ok {
				return h, formatErr("unknown format %q", fields[1])
			}
			h.Format, h.Version, sawFormat = f, fields[2], true
		case "comment", "obj_info":
			h.Comments = append(h.Comments, strings.TrimSpace(strings.TrimPrefix(line, fields[0])))
		case "element":
			if len(fields) != 3 {
				return h, formatErr("bad element line %q", line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return h, formatErr("bad element count %q", fields[2])
			}
			h.Elements = append(h.Elements, Element{Name: fields[1], Count: n})
		case "property":
			if len(h.Elements) == 0 {
				return h, formatErr("property before element")
			}
			p, err := parseProperty(fields)
			if err != nil {
				return h, err
			}
			el := &h.Elements[len(h.Elements)-1]
			el.Properties = append(el.Properties, p)
		case "end_header":
			if !sawFormat {
				return h, formatErr("missing format line")
			}
			return h, nil
		default:
			return h, formatErr("unexpected header line %q", line)
		}
	}
}

func parseProperty(fields []string) (Property, error) {
	if len(fields) == 5 && fields[1] == "list" {
		if _, ok := typeSize[fields[2]]; !ok || !isIntegerType(fields[2]) {
			return Property{}, formatErr("bad list count type %q", fields[2])
		}
		if _, ok := typeSize[fields[3]]; !ok {
			return Property{}, formatErr("unknown type %q", fields[3])
		}
		return Property{Name: fields[4], Type: fields[3], IsList: true, CountType: fields[2]}, nil
	}
	if len(fields) != 3 {
		return Property{}, formatErr("bad property line %q", strings.Join(fields, " "))
	}
	if _, ok := typeSize[fields[1]]; !ok {
		return Property{}, formatErr("unknown type %q", fields[1])
	}
	return Property{Name: fields[2], Type: fields[1]}, nil
}

func readLine(br *bufio.Reader) (string, error) {
	s, err := br.ReadString('\n')
	if err != nil && s == "" {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
