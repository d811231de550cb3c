package bst

const hashMultiplier = 0x45d9f3b

// Hash is the integer mixing function used to derive keys. It is deterministic and cheap, but not cryptographic.
func Hash(x uint32) uint32 {
	x = ((x >> 16) ^ x) * hashMultiplier
	x = ((x >> 16) ^ x) * hashMultiplier
	x = (x >> 16) ^ x
	return x
}

// KeyAt returns the key inserted for index i of a build with the given seed. Index 0 yields Hash(seed), the
// root of every build.
//
// Negative seeds are reinterpreted as their unsigned two's complement bits.
func KeyAt(i int, seed int) uint32 {
	return Hash(uint32(i) ^ uint32(seed))
}

// Keys returns the full key sequence of a build of n values, in insertion order.
func Keys(n int, seed int) []uint32 {
	if n < 1 {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = KeyAt(i, seed)
	}
	return out
}
