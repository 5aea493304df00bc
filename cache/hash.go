package cache

import "hash/maphash"

// Uint64Hasher mixes the bits of u so that nearby keys spread over shards.
func Uint64Hasher(u uint64) uint64 {
	// splitmix64 finalizer
	u ^= u >> 30
	u *= 0xbf58476d1ce4e5b9
	u ^= u >> 27
	u *= 0x94d049bb133111eb
	u ^= u >> 31
	return u
}

// ComparableHasher returns a Hasher for any comparable key, seeded randomly
// per call.
func ComparableHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}
