package pipeline

// DeriveStepSeed computes the deterministic per-sub-step seed from the
// master seed, the global flat sub-step index, and the world
// dimensions. The mix is a fixed SplitMix64-style finalizer — the same
// avalanche constants the teacher's mathx package pins for its
// deterministic world hashes — so this function must never change
// behavior for a given input without bumping snapshot.CurrentVersion,
// since every replay depends on it reproducing bit-for-bit.
func DeriveStepSeed(master uint64, flatIndex, width, height uint32) uint64 {
	sizeWord := uint64(width)<<32 | uint64(height)
	v := master ^ (uint64(flatIndex) * 0x9e3779b97f4a7c15) ^ (sizeWord * 0xbf58476d1ce4e5b9)
	return mix64(v)
}

// mix64 is the SplitMix64 finalizer, pinned byte-for-byte to the
// teacher's internal/sim/world/logic/mathx.mix64.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// SplitStepSeed derives the two seed halves randx.New needs from one
// 64-bit derived step seed.
func SplitStepSeed(seed uint64) (hi, lo uint64) {
	return mix64(seed), mix64(seed ^ 0xdeadbeefcafebabe)
}
