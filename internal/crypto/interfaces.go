package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns passwords into salted one-way digests and checks
// candidates against them. A digest cannot be turned back into a password.
type PasswordHasher interface {
	// Hash returns an encoded digest of raw with a fresh random salt.
	// Two calls with the same password yield different digests.
	Hash(raw string) (string, error)

	// Verify reports whether raw matches the encoded digest. A malformed
	// digest never matches.
	Verify(raw, digest string) bool
}
