// Package wasmgen encodes a lowered ir.Module as a WASM MVP binary
// module: the magic header, a Type section describing each function's
// signature, a Function section binding functions to those signatures,
// an Export section exporting every function by name, and a Code
// section holding each function's locals and instruction bytes.
package wasmgen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/novalang/novac/internal/ir"
)

const (
	wasmMagic   = "\x00asm"
	wasmVersion = uint32(1)

	secType     = 1
	secFunction = 3
	secExport   = 7
	secCode     = 10

	exportKindFunc = 0x00
)

// Generate encodes mod as a complete WASM binary module.
func Generate(mod *ir.Module) ([]byte, error) {
	g := &generator{funcIndex: make(map[string]int), funcReturn: make(map[string]ir.Type)}
	for i, f := range mod.Functions {
		g.funcIndex[f.Name] = i
		g.funcReturn[f.Name] = f.ReturnType
	}

	var out bytes.Buffer
	out.WriteString(wasmMagic)
	var versionBytes [4]byte
	binary.LittleEndian.PutUint32(versionBytes[:], wasmVersion)
	out.Write(versionBytes[:])

	typeSec, err := g.typeSection(mod)
	if err != nil {
		return nil, err
	}
	writeSection(&out, secType, typeSec)
	writeSection(&out, secFunction, g.functionSection(mod))
	writeSection(&out, secExport, g.exportSection(mod))

	codeSec, err := g.codeSection(mod)
	if err != nil {
		return nil, err
	}
	writeSection(&out, secCode, codeSec)

	return out.Bytes(), nil
}

type generator struct {
	funcIndex  map[string]int
	funcReturn map[string]ir.Type
}

func writeSection(out *bytes.Buffer, id byte, body []byte) {
	out.WriteByte(id)
	writeULEB128(out, uint64(len(body)))
	out.Write(body)
}

// typeSection emits one function type per module function: its param
// types followed by zero or one result type.
func (g *generator) typeSection(mod *ir.Module) ([]byte, error) {
	var body bytes.Buffer
	writeULEB128(&body, uint64(len(mod.Functions)))
	for _, f := range mod.Functions {
		body.WriteByte(0x60) // func type tag
		writeULEB128(&body, uint64(len(f.Params)))
		for _, p := range f.Params {
			vt, err := valType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("function %s: %w", f.Name, err)
			}
			body.WriteByte(vt)
		}
		if f.ReturnType == ir.TypeVoid {
			writeULEB128(&body, 0)
		} else {
			vt, err := valType(f.ReturnType)
			if err != nil {
				return nil, fmt.Errorf("function %s: %w", f.Name, err)
			}
			writeULEB128(&body, 1)
			body.WriteByte(vt)
		}
	}
	return body.Bytes(), nil
}

// functionSection binds each function index to its (identical-index)
// type entry -- Nova never shares a signature between functions, so
// this is always the identity mapping.
func (g *generator) functionSection(mod *ir.Module) []byte {
	var body bytes.Buffer
	writeULEB128(&body, uint64(len(mod.Functions)))
	for i := range mod.Functions {
		writeULEB128(&body, uint64(i))
	}
	return body.Bytes()
}

func (g *generator) exportSection(mod *ir.Module) []byte {
	var body bytes.Buffer
	writeULEB128(&body, uint64(len(mod.Functions)))
	for i, f := range mod.Functions {
		writeName(&body, f.Name)
		body.WriteByte(exportKindFunc)
		writeULEB128(&body, uint64(i))
	}
	return body.Bytes()
}

func (g *generator) codeSection(mod *ir.Module) ([]byte, error) {
	var body bytes.Buffer
	writeULEB128(&body, uint64(len(mod.Functions)))
	for _, f := range mod.Functions {
		fb, err := g.functionBody(f)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", f.Name, err)
		}
		writeULEB128(&body, uint64(len(fb)))
		body.Write(fb)
	}
	return body.Bytes(), nil
}

func valType(t ir.Type) (byte, error) {
	switch t {
	case ir.TypeI32:
		return 0x7F, nil
	case ir.TypeI64:
		return 0x7E, nil
	case ir.TypeF32:
		return 0x7D, nil
	case ir.TypeF64:
		return 0x7C, nil
	default:
		return 0, fmt.Errorf("type %s has no wasm value representation", t)
	}
}

func writeName(out *bytes.Buffer, s string) {
	writeULEB128(out, uint64(len(s)))
	out.WriteString(s)
}

// writeULEB128 encodes an unsigned LEB128 integer, wasm's encoding for
// section lengths, counts, and indices.
func writeULEB128(out *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// writeSLEB128 encodes a signed LEB128 integer, used for i32.const/i64.const
// immediates.
func writeSLEB128(out *bytes.Buffer, v int64) {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			out.WriteByte(b)
			return
		}
		out.WriteByte(b | 0x80)
	}
}

func writeF32(out *bytes.Buffer, v float64) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
	out.Write(buf[:])
}

func writeF64(out *bytes.Buffer, v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	out.Write(buf[:])
}
