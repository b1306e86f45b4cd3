package parser

import (
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/zingolabs/zewif-migrate/parser/internal/bytestring"
)

// ReadUint8 decodes a single unsigned byte, delegating to bytestring.String.
func (p *Parser) ReadUint8() (uint8, error) {
	offset := p.Offset()
	var b byte
	if !p.s.ReadByte(&b) {
		return 0, Context(&UnderflowError{Offset: offset, Needed: 1, Remaining: p.Remaining()}, "Parsing u8")
	}
	p.traceRead(p.Offset(), 1)
	return b, nil
}

// ReadInt8 decodes a single signed byte.
func (p *Parser) ReadInt8() (int8, error) {
	v, err := p.ReadUint8()
	return int8(v), err
}

// ReadUint16 decodes a little-endian 16-bit value, delegating the cursor
// advance and byte-order decode to bytestring.String.
func (p *Parser) ReadUint16() (uint16, error) {
	offset := p.Offset()
	var v uint16
	if !p.s.ReadUint16(&v) {
		return 0, Context(&UnderflowError{Offset: offset, Needed: 2, Remaining: p.Remaining()}, "Parsing u16")
	}
	p.traceRead(p.Offset(), 2)
	return v, nil
}

// ReadUint32 decodes a little-endian 32-bit value, delegating to
// bytestring.String.
func (p *Parser) ReadUint32() (uint32, error) {
	offset := p.Offset()
	var v uint32
	if !p.s.ReadUint32(&v) {
		return 0, Context(&UnderflowError{Offset: offset, Needed: 4, Remaining: p.Remaining()}, "Parsing u32")
	}
	p.traceRead(p.Offset(), 4)
	return v, nil
}

// ReadInt32 decodes a little-endian, signed 32-bit value, delegating to
// bytestring.String.
func (p *Parser) ReadInt32() (int32, error) {
	offset := p.Offset()
	var v int32
	if !p.s.ReadInt32(&v) {
		return 0, Context(&UnderflowError{Offset: offset, Needed: 4, Remaining: p.Remaining()}, "Parsing i32")
	}
	p.traceRead(p.Offset(), 4)
	return v, nil
}

// ReadUint64 decodes a little-endian 64-bit value, delegating to
// bytestring.String.
func (p *Parser) ReadUint64() (uint64, error) {
	offset := p.Offset()
	var v uint64
	if !p.s.ReadUint64(&v) {
		return 0, Context(&UnderflowError{Offset: offset, Needed: 8, Remaining: p.Remaining()}, "Parsing u64")
	}
	p.traceRead(p.Offset(), 8)
	return v, nil
}

// ReadInt64 decodes a little-endian, signed 64-bit value, delegating to
// bytestring.String.
func (p *Parser) ReadInt64() (int64, error) {
	offset := p.Offset()
	var v int64
	if !p.s.ReadInt64(&v) {
		return 0, Context(&UnderflowError{Offset: offset, Needed: 8, Remaining: p.Remaining()}, "Parsing i64")
	}
	p.traceRead(p.Offset(), 8)
	return v, nil
}

// ReadFloat64 decodes a little-endian IEEE-754 double (used by the Zingo
// and Zecwallet-Lite price-info records).
func (p *Parser) ReadFloat64() (float64, error) {
	v, err := p.ReadUint64()
	if err != nil {
		return 0, Context(err, "Parsing f64")
	}
	return math.Float64frombits(v), nil
}

// ReadBool reads a single byte and requires it to be 0 or 1.
func (p *Parser) ReadBool() (bool, error) {
	b, err := p.ReadUint8()
	if err != nil {
		return false, Context(err, "Parsing bool")
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, Context(errors.Errorf("invalid bool discriminant 0x%02x", b), "Parsing bool")
	}
}

// ReadFixedBlob reads exactly n bytes and returns a freshly allocated copy.
// N is represented by the caller's choice of a concrete array type; see
// zcashtype for the named sizes.
func (p *Parser) ReadFixedBlob(n int) ([]byte, error) {
	b, err := p.Next(n)
	if err != nil {
		return nil, Context(err, "Parsing fixed blob")
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadCompactSize decodes a Bitcoin/Zcash-style variable-length integer,
// rejecting any non-minimal encoding or a value beyond MaxCompactSize.
// Delegates the decode to bytestring.String, which enforces both
// constraints directly.
func (p *Parser) ReadCompactSize() (uint64, error) {
	offset := p.Offset()
	var v uint64
	if !p.s.ReadCompactSize(&v) {
		return 0, Context(errors.Errorf("invalid or non-minimal compact size encoding at offset %d", offset), "Parsing compact size")
	}
	p.traceRead(p.Offset(), p.Offset()-offset)
	return v, nil
}

// ReadVarBlob reads a CompactSize-prefixed byte sequence, delegating to
// bytestring.String's matching helper.
func (p *Parser) ReadVarBlob() ([]byte, error) {
	offset := p.Offset()
	var out bytestring.String
	if !p.s.ReadCompactLengthPrefixed(&out) {
		return nil, Context(errors.Errorf("invalid compact-size-prefixed blob at offset %d", offset), "Parsing var blob")
	}
	p.traceRead(p.Offset(), p.Offset()-offset)
	b := make([]byte, len(out))
	copy(b, out)
	return b, nil
}

// ReadString reads a CompactSize length prefix followed by that many UTF-8
// bytes.
func (p *Parser) ReadString() (string, error) {
	b, err := p.ReadVarBlob()
	if err != nil {
		return "", Context(err, "Parsing string")
	}
	if !utf8.Valid(b) {
		return "", Context(errors.New("invalid utf8"), "Parsing string")
	}
	return string(b), nil
}
