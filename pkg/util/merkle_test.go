package util

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerkleRootEmpty(t *testing.T) {
	tree := NewMerkleTree(nil)
	assert.Equal(t, HashStringSHA256Hex(""), tree.Root())
	assert.Equal(t, 0, tree.Depth())
}

func TestMerkleRootDependsOnLeafOrder(t *testing.T) {
	a := MerkleRoot([]string{"P1|0|500|0", "P2|100|300|0", "P3|200|800|0"})
	b := MerkleRoot([]string{"P1|0|500|0", "P2|100|300|0", "P3|200|800|0"})
	c := MerkleRoot([]string{"P2|100|300|0", "P1|0|500|0", "P3|200|800|0"})
	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMerkleTreeOddLevelPairsWithItself(t *testing.T) {
	tree := NewMerkleTree([]string{"a", "b", "c"})
	assert.Equal(t, 2, tree.Depth())
	assert.Equal(t, HashStringSHA256Hex("c"), tree.LeafHash(2))

	pair := func(l, r string) string {
		lb, _ := hex.DecodeString(l)
		rb, _ := hex.DecodeString(r)
		sum := sha256.Sum256(append(lb, rb...))
		return hex.EncodeToString(sum[:])
	}
	ha, hb, hc := HashStringSHA256Hex("a"), HashStringSHA256Hex("b"), HashStringSHA256Hex("c")
	assert.Equal(t, pair(pair(ha, hb), pair(hc, hc)), tree.Root())
}

func TestMerkleSingleLeafIsItsOwnRoot(t *testing.T) {
	assert.Equal(t, HashStringSHA256Hex("P1|0.00|5.00|0"), MerkleRoot([]string{"P1|0.00|5.00|0"}))
}
