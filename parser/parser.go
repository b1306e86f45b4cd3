// Copyright (c) 2019-2020 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package parser implements the cursored byte reader used to decode the
// little-endian Zcash/Bitcoin-style encodings that every upstream wallet
// format shares: compact sizes, versioned structures, sum-typed unions,
// optionally-present fields, and fixed/variable-length byte arrays.
package parser

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zingolabs/zewif-migrate/parser/internal/bytestring"
)

// MaxCompactSize bounds a CompactSize-prefixed length so that a corrupt or
// hostile input can't force an enormous allocation.
const MaxCompactSize = 0x02000000

// Parser is a stateful cursor over a byte buffer. It never allocates on the
// happy path; Next and Peek return sub-slices of the original buffer. The
// cursor mechanics (advancing, bounds-checked reads) are delegated to
// bytestring.String; Parser layers error-returning, wallet-format-specific
// decoding on top.
type Parser struct {
	total  int
	s      bytestring.String
	trace  bool
	logger *logrus.Logger
}

// UnderflowError reports an attempt to read past the end of the buffer.
type UnderflowError struct {
	Offset    int
	Needed    int
	Remaining int
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("buffer underflow at offset %d: needed %d bytes, %d remaining",
		e.Offset, e.Needed, e.Remaining)
}

// New constructs a Parser over buf. When trace is true, every successful
// read is logged at debug level.
func New(buf []byte, trace bool) *Parser {
	return &Parser{total: len(buf), s: bytestring.String(buf), trace: trace, logger: logrus.StandardLogger()}
}

// Remaining reports how many bytes are left to read.
func (p *Parser) Remaining() int {
	return len(p.s)
}

// Offset reports the cursor's current position within the buffer.
func (p *Parser) Offset() int {
	return p.total - len(p.s)
}

// Peek returns the next n bytes without advancing the cursor.
func (p *Parser) Peek(n int) ([]byte, error) {
	if n < 0 || n > len(p.s) {
		return nil, &UnderflowError{Offset: p.Offset(), Needed: n, Remaining: p.Remaining()}
	}
	return []byte(p.s)[:n], nil
}

// Next advances the cursor by n bytes and returns them.
func (p *Parser) Next(n int) ([]byte, error) {
	var b []byte
	if !p.s.ReadBytes(&b, n) {
		return nil, &UnderflowError{Offset: p.Offset(), Needed: n, Remaining: p.Remaining()}
	}
	p.traceRead(p.Offset(), n)
	return b, nil
}

// traceRead logs a successful read of n bytes ending at offset, when
// tracing is enabled. Shared by Next and the typed primitive decoders that
// delegate directly to bytestring.String instead of going through Next.
func (p *Parser) traceRead(offset, n int) {
	if p.trace {
		p.logger.WithFields(logrus.Fields{"n": n, "offset": offset}).Debug("parser: next")
	}
}

// Rest drains and returns every remaining byte.
func (p *Parser) Rest() []byte {
	b := []byte(p.s)
	p.s = p.s[len(p.s):]
	return b
}

// CheckFinished fails unless the buffer has been fully consumed.
func (p *Parser) CheckFinished() error {
	if !p.s.Empty() {
		return errors.Errorf("buffer not fully consumed: %d bytes remaining", p.Remaining())
	}
	return nil
}

// ParseBuf builds a Parser over buf, runs decode, and requires the buffer to
// be fully consumed afterward.
func ParseBuf(buf []byte, trace bool, decode func(*Parser) error) error {
	p := New(buf, trace)
	if err := decode(p); err != nil {
		return err
	}
	return p.CheckFinished()
}

// Context wraps err, when non-nil, with a human-readable phrase so that
// nested parse failures read as a chain: "Parsing X / Parsing Y / buffer
// underflow at ...".
func Context(err error, phrase string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, phrase)
}
