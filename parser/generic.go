package parser

import "fmt"

// ReadVec decodes a CompactSize length followed by that many elements, each
// produced by read. A closure stands in for a polymorphic Parse method.
func ReadVec[T any](p *Parser, read func(*Parser) (T, error)) ([]T, error) {
	n, err := p.ReadCompactSize()
	if err != nil {
		return nil, Context(err, "Parsing array length")
	}
	out := make([]T, n)
	for i := uint64(0); i < n; i++ {
		v, err := read(p)
		if err != nil {
			return nil, Context(err, fmt.Sprintf("Parsing array item %d of %d", i, n-1))
		}
		out[i] = v
	}
	return out, nil
}

// ReadFixedArray decodes exactly n elements, each produced by read.
func ReadFixedArray[T any](p *Parser, n int, read func(*Parser) (T, error)) ([]T, error) {
	out := make([]T, n)
	for i := 0; i < n; i++ {
		v, err := read(p)
		if err != nil {
			return nil, Context(err, fmt.Sprintf("Parsing fixed array item %d of %d", i, n-1))
		}
		out[i] = v
	}
	return out, nil
}

// ReadOptional decodes a one-byte discriminant (0x00 absent, 0x01 present)
// followed, if present, by a value produced by read.
func ReadOptional[T any](p *Parser, read func(*Parser) (T, error)) (*T, error) {
	disc, err := p.ReadUint8()
	if err != nil {
		return nil, Context(err, "Parsing optional discriminant")
	}
	switch disc {
	case 0x00:
		return nil, nil
	case 0x01:
		v, err := read(p)
		if err != nil {
			return nil, Context(err, "Parsing optional value")
		}
		return &v, nil
	default:
		return nil, Context(fmt.Errorf("invalid optional discriminant 0x%02x", disc), "Parsing optional")
	}
}

// ReadPair decodes a (T,U) pair by concatenating two reads.
func ReadPair[T, U any](p *Parser, readT func(*Parser) (T, error), readU func(*Parser) (U, error)) (T, U, error) {
	var zt T
	var zu U
	t, err := readT(p)
	if err != nil {
		return zt, zu, Context(err, "Parsing pair first element")
	}
	u, err := readU(p)
	if err != nil {
		return zt, zu, Context(err, "Parsing pair second element")
	}
	return t, u, nil
}

// ReadMap decodes a CompactSize length followed by that many key/value
// pairs, tolerating duplicate keys by last-write-wins insertion.
func ReadMap[K comparable, V any](p *Parser, readK func(*Parser) (K, error), readV func(*Parser) (V, error)) (map[K]V, error) {
	n, err := p.ReadCompactSize()
	if err != nil {
		return nil, Context(err, "Parsing map length")
	}
	out := make(map[K]V, n)
	for i := uint64(0); i < n; i++ {
		k, v, err := ReadPair(p, readK, readV)
		if err != nil {
			return nil, Context(err, fmt.Sprintf("Parsing map entry %d of %d", i, n-1))
		}
		out[k] = v
	}
	return out, nil
}

// ReadSet decodes a CompactSize length followed by that many elements,
// de-duplicated into a set (represented as map[T]struct{}).
func ReadSet[T comparable](p *Parser, read func(*Parser) (T, error)) (map[T]struct{}, error) {
	n, err := p.ReadCompactSize()
	if err != nil {
		return nil, Context(err, "Parsing set length")
	}
	out := make(map[T]struct{}, n)
	for i := uint64(0); i < n; i++ {
		v, err := read(p)
		if err != nil {
			return nil, Context(err, fmt.Sprintf("Parsing set item %d of %d", i, n-1))
		}
		out[v] = struct{}{}
	}
	return out, nil
}
