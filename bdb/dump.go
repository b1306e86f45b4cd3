// Package bdb decomposes the textual output of the external `db_dump`
// utility into the raw key/value records of a zcashd BerkeleyDB wallet
// file, and further splits each key into a (keyname, suffix) pair.
package bdb

import (
	"bytes"
	"encoding/hex"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/parser"
)

// Record is a single decoded (key, value) pair from the dump.
type Record struct {
	Key   []byte
	Value []byte
}

// Dump holds every decoded record plus an inverted index from keyname to
// the set of DBKeys sharing that keyname.
type Dump struct {
	Headers map[string]string
	Records []Record

	byKeyname map[string][]int
}

// Entry pairs a decomposed DBKey with its raw value payload.
type Entry struct {
	Key   DBKey
	Value []byte
}

// DBKey splits a raw record key into its length-prefixed UTF-8 keyname and
// the remaining opaque suffix bytes.
type DBKey struct {
	Keyname string
	Suffix  []byte
}

// ParseDBKey decodes the keyname + suffix structure of a raw BDB key.
func ParseDBKey(raw []byte) (DBKey, error) {
	p := parser.New(raw, false)
	name, err := p.ReadString()
	if err != nil {
		return DBKey{}, parser.Context(err, "Parsing DBKey keyname")
	}
	return DBKey{Keyname: name, Suffix: p.Rest()}, nil
}

// Run invokes `db_dump` against filepath and parses its stdout.
func Run(filepath string) (*Dump, error) {
	cmd := exec.Command("db_dump", filepath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "running db_dump: %s", stderr.String())
	}
	return Parse(stdout.String())
}

// Parse decodes the textual db_dump format: header lines of the form
// key=value terminated by "HEADER=END", then space-prefixed hex
// key/value lines terminated by "DATA=END".
func Parse(text string) (*Dump, error) {
	d := &Dump{Headers: map[string]string{}, byKeyname: map[string][]int{}}

	lines := strings.Split(text, "\n")
	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "HEADER=END" {
			i++
			break
		}
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, errors.Errorf("invalid header line: %q", line)
		}
		d.Headers[line[:eq]] = line[eq+1:]
	}

	var pendingKey []byte
	haveKey := false
	seen := map[string]struct{}{}

	for ; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "DATA=END" {
			break
		}
		if trimmed == "" {
			continue
		}
		raw, err := hex.DecodeString(trimmed)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding hex data line %q", trimmed)
		}

		if !haveKey {
			pendingKey = raw
			haveKey = true
			continue
		}

		keyHex := hex.EncodeToString(pendingKey)
		if _, dup := seen[keyHex]; dup {
			return nil, errors.Errorf("duplicate key in db_dump output: %s", keyHex)
		}
		seen[keyHex] = struct{}{}

		idx := len(d.Records)
		d.Records = append(d.Records, Record{Key: pendingKey, Value: raw})

		dbKey, err := ParseDBKey(pendingKey)
		if err != nil {
			return nil, parser.Context(err, "splitting DBKey")
		}
		d.byKeyname[dbKey.Keyname] = append(d.byKeyname[dbKey.Keyname], idx)

		haveKey = false
	}

	if haveKey {
		return nil, errors.New("found a key without a corresponding value")
	}

	return d, nil
}

// Keynames returns the set of distinct keynames present in the dump.
func (d *Dump) Keynames() []string {
	out := make([]string, 0, len(d.byKeyname))
	for k := range d.byKeyname {
		out = append(out, k)
	}
	return out
}

// ByKeyname returns every entry whose key decomposes to the given keyname,
// in the order they appeared in the dump (ascending key-data byte order,
// since db_dump writes a BDB hash map in that order).
func (d *Dump) ByKeyname(keyname string) []Entry {
	idxs := d.byKeyname[keyname]
	out := make([]Entry, 0, len(idxs))
	for _, idx := range idxs {
		rec := d.Records[idx]
		dbKey, _ := ParseDBKey(rec.Key) // already validated during Parse
		out = append(out, Entry{Key: dbKey, Value: rec.Value})
	}
	return out
}
