package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// HashBytes is the size of the digest drawn from the random oracles
	// before reduction into a scalar field. Twice the security parameter so
	// the bias introduced by the reduction is negligible.
	HashBytes = 2 * SecBytes
)
