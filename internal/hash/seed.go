package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Seed derives a two-word PCG seed from the given string.
//
// The second word hashes the input with a fixed suffix so the two words are
// decorrelated. Used to give every individual a stable, scheduler-independent
// RNG stream during resampling.
func Seed(data string) (uint64, uint64) {
	return xxhash.Sum64String(data), xxhash.Sum64String(data + "\x00wellmix")
}
