// Package nativepass implements the mysql_native_password challenge/response scramble used by MySQL 4.1 and
// later.
package nativepass

import "crypto/sha1"

const (
	// ChallengeSize is the number of challenge bytes the scramble consumes.
	ChallengeSize = 20

	// Size is the length of a non-empty scramble response in bytes.
	Size = sha1.Size
)

// Scramble computes the client's response to the server challenge:
//
//	SHA1(challenge ‖ SHA1(SHA1(password))) XOR SHA1(password)
//
// An empty password produces a nil response, matching the wire behavior of accounts without passwords.
func Scramble(challenge [ChallengeSize]byte, password string) []byte {
	if len(password) == 0 {
		return nil
	}

	crypt := sha1.New()
	crypt.Write([]byte(password))
	stage1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(stage1)
	inner := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(challenge[:])
	crypt.Write(inner)
	out := crypt.Sum(nil)

	for i := range out {
		out[i] ^= stage1[i]
	}
	return out
}
