package fec

import "crypto/subtle"

// xor folds src into dst in place. dst must be at least as long as src.
func xor(dst, src []byte) []byte {
	subtle.XORBytes(dst, dst, src)
	return dst
}
