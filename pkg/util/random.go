package util

import (
	"math/rand"
)

// cartIDCeiling keeps minted identifiers inside a signed 32-bit integer
// column. Collisions are accepted as a demo-grade risk.
const cartIDCeiling = 1 << 31

// GenerateCartID mints a random positive cart identifier below the
// 32-bit ceiling. This is the single minting scheme for every call site.
func GenerateCartID() int64 {
	return rand.Int63n(cartIDCeiling-1) + 1
}
