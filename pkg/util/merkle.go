package util

import (
	"crypto/sha256"
	"encoding/hex"
)

func HashSHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func HashStringSHA256Hex(value string) string {
	return HashSHA256Hex([]byte(value))
}

// MerkleTree keeps every level of a SHA-256 Merkle tree, leaves first.
type MerkleTree struct {
	levels [][][sha256.Size]byte
}

// NewMerkleTree hashes every leaf and folds the hashes pairwise up to a
// single root. An odd node at any level is paired with itself.
func NewMerkleTree(leaves []string) *MerkleTree {
	if len(leaves) == 0 {
		return &MerkleTree{levels: [][][sha256.Size]byte{{sha256.Sum256(nil)}}}
	}
	level := make([][sha256.Size]byte, 0, len(leaves))
	for _, leaf := range leaves {
		level = append(level, sha256.Sum256([]byte(leaf)))
	}
	tree := &MerkleTree{levels: [][][sha256.Size]byte{level}}
	for len(level) > 1 {
		next := make([][sha256.Size]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashPair(level[i], right))
		}
		tree.levels = append(tree.levels, next)
		level = next
	}
	return tree
}

// Root returns the hex encoded root hash.
func (t *MerkleTree) Root() string {
	top := t.levels[len(t.levels)-1]
	return hex.EncodeToString(top[0][:])
}

// Depth is the number of levels above the leaves.
func (t *MerkleTree) Depth() int {
	return len(t.levels) - 1
}

// LeafHash returns the hex encoded hash of leaf i.
func (t *MerkleTree) LeafHash(i int) string {
	return hex.EncodeToString(t.levels[0][i][:])
}

func MerkleRoot(leaves []string) string {
	return NewMerkleTree(leaves).Root()
}

func hashPair(left, right [sha256.Size]byte) [sha256.Size]byte {
	var merged [2 * sha256.Size]byte
	copy(merged[:sha256.Size], left[:])
	copy(merged[sha256.Size:], right[:])
	return sha256.Sum256(merged[:])
}
