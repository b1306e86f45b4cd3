package zewif

import "github.com/zingolabs/zewif-migrate/zcashtype"

// IncrementalMerkleTree is a snapshot of a note commitment tree: the two
// leaves at the current insertion frontier, plus the filled ancestor
// hashes extending up from them (leaves-first fill order; a parent
// entry only exists once both of its children's subtrees complete).
type IncrementalMerkleTree struct {
	Left      *zcashtype.U256
	Right     *zcashtype.U256
	Ancestors []*zcashtype.U256
}

// IncrementalWitness is an authentication path from one leaf to a tree
// root, plus an optional cursor tree for extending the path as later
// notes are appended.
type IncrementalWitness struct {
	Tree           IncrementalMerkleTree
	FilledPath     []zcashtype.U256
	Cursor         *IncrementalMerkleTree
}

// Root returns the tree's root hash, if the witness carries enough
// filled-path entries to compute one (the last filled-path hash is the
// root for a witness built against a complete authentication path).
func (w *IncrementalWitness) Root() (zcashtype.U256, bool) {
	if w == nil || len(w.FilledPath) == 0 {
		return zcashtype.U256{}, false
	}
	return w.FilledPath[len(w.FilledPath)-1], true
}
