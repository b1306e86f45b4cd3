package tx

import (
	"github.com/pkg/errors"
	"github.com/zingolabs/zewif-migrate/zcashtype"
)

// treeNode is a reified node of the reconstructed binary tree, grounded on
// original_source/src/zcashd/tx/orchard/orchard_note_commitment_tree.rs.
type treeNode struct {
	hash  zcashtype.U256
	left  *treeNode
	right *treeNode
}

// OrchardNoteCommitmentTree is the decoded Orchard note commitment tree
// carried in the `orchard_note_commitment_tree` wallet record: a
// heap-indexed complete binary tree (node i has children 2i+1, 2i+2).
type OrchardNoteCommitmentTree struct {
	TreeSize     uint64
	Depth        int
	Nodes        []*zcashtype.U256 // flat, heap-indexed; nil = absent
	Root         *treeNode
	UnparsedData []byte // empty after a successful parse: every byte past the header is consumed
}

// ParseOrchardNoteCommitmentTree decodes the tree header (format_version,
// tree_size, depth) and the node-presence/hash stream that follows it.
// A truncated header, a truncated node hash and an unsupported version
// are all hard failures. Every byte after the header is read as a
// presence flag (any non-zero value means a 32-byte hash follows), so a
// successful parse consumes the whole buffer and leaves UnparsedData
// empty.
func ParseOrchardNoteCommitmentTree(data []byte) (*OrchardNoteCommitmentTree, error) {
	t := &OrchardNoteCommitmentTree{UnparsedData: data}
	if len(data) == 0 {
		return t, nil
	}
	if len(data) < 13 {
		return nil, errors.New("invalid tree data: truncated header")
	}

	formatVersion := le32(data[0:4])
	if formatVersion != 1 {
		return nil, errors.Errorf("unsupported tree format version: %d", formatVersion)
	}
	t.TreeSize = le64(data[4:12])
	t.Depth = int(data[12])

	pos := 13
	for pos < len(data) {
		present := data[pos] != 0
		pos++
		if !present {
			t.Nodes = append(t.Nodes, nil)
			continue
		}
		if pos+32 > len(data) {
			return nil, errors.New("invalid tree data: truncated node hash")
		}
		var h zcashtype.U256
		copy(h[:], data[pos:pos+32])
		t.Nodes = append(t.Nodes, &h)
		pos += 32
	}

	t.UnparsedData = nil
	if len(t.Nodes) > 0 {
		t.Root = t.buildNode(0)
	}
	return t, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func le64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func (t *OrchardNoteCommitmentTree) buildNode(index int) *treeNode {
	if index >= len(t.Nodes) || t.Nodes[index] == nil {
		return nil
	}
	n := &treeNode{hash: *t.Nodes[index]}
	n.left = t.buildNode(2*index + 1)
	n.right = t.buildNode(2*index + 2)
	return n
}

// Position is a commitment's leaf index within the tree.
type Position uint64

// leafStart is the first heap index at which leaves live for a complete
// binary tree of the tree's depth.
func (t *OrchardNoteCommitmentTree) leafStart() int {
	if t.Depth == 0 {
		return 0
	}
	return (1 << uint(t.Depth-1)) - 1
}

// FindPosition scans leaf-indexed entries for commitment.
func (t *OrchardNoteCommitmentTree) FindPosition(commitment zcashtype.U256) (Position, bool) {
	start := t.leafStart()
	for i := start; i < len(t.Nodes); i++ {
		if t.Nodes[i] != nil && *t.Nodes[i] == commitment {
			return Position(i - start), true
		}
	}
	return 0, false
}

// Anchor is a commitment tree's Merkle root at a specific height.
type Anchor = zcashtype.U256

// Witness is an authentication path from a leaf to the tree root.
type Witness struct {
	AuthPath []zcashtype.U256
}

// CreateWitness derives an anchor equal to the current root and an
// authentication path from commitment's leaf to that root.
func (t *OrchardNoteCommitmentTree) CreateWitness(commitment zcashtype.U256) (Anchor, Witness, bool) {
	pos, ok := t.FindPosition(commitment)
	if !ok || t.Root == nil {
		return Anchor{}, Witness{}, false
	}
	var path []zcashtype.U256
	idx := int(pos) + t.leafStart()
	for idx > 0 {
		parent := (idx - 1) / 2
		var sibling int
		if idx%2 == 1 {
			sibling = idx + 1
		} else {
			sibling = idx - 1
		}
		if sibling < len(t.Nodes) && t.Nodes[sibling] != nil {
			path = append(path, *t.Nodes[sibling])
		}
		idx = parent
	}
	return t.Root.hash, Witness{AuthPath: path}, true
}

// IncrementalMerkleTree is the projection of this tree into the ZeWIF
// model's leaves-first-fill incremental tree shape.
type IncrementalMerkleTree struct {
	Left    *zcashtype.U256
	Right   *zcashtype.U256
	Parents []*zcashtype.U256
}

// ToZewifTree projects the root's immediate children into (left, right)
// and walks ancestor positions into the parents vector.
func (t *OrchardNoteCommitmentTree) ToZewifTree() IncrementalMerkleTree {
	var out IncrementalMerkleTree
	if t.Root == nil {
		return out
	}
	if t.Root.left != nil {
		h := t.Root.left.hash
		out.Left = &h
	}
	if t.Root.right != nil {
		h := t.Root.right.hash
		out.Right = &h
	}
	for idx := 0; idx < t.Depth-1; idx++ {
		parentIdx := (1 << uint(idx)) - 1
		if parentIdx < len(t.Nodes) {
			out.Parents = append(out.Parents, t.Nodes[parentIdx])
		} else {
			out.Parents = append(out.Parents, nil)
		}
	}
	return out
}
