// Package sha2pass implements the password scrambling and encryption used by MySQL's caching_sha2_password and
// sha256_password authentication plugins.
package sha2pass

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"io"
)

// Size is the length of a non-empty scramble response in bytes.
const Size = sha256.Size

// ErrNoPublicKey is returned when EncryptPassword is called without a server public key.
var ErrNoPublicKey = errors.New("sha2pass: no server public key")

// Scramble computes the fast-authentication response to the server challenge:
//
//	SHA256(password) XOR SHA256(SHA256(SHA256(password)) ‖ challenge)
//
// The server compares this against its cached verifier without ever seeing the password. An empty password
// produces an empty response.
func Scramble(challenge []byte, password string) []byte {
	if len(password) == 0 {
		return []byte{}
	}

	crypt := sha256.New()
	crypt.Write([]byte(password))
	stage1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(stage1)
	inner := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(inner)
	crypt.Write(challenge)
	outer := crypt.Sum(nil)

	for i := range stage1 {
		stage1[i] ^= outer[i]
	}
	return stage1
}

// EncryptPassword seals the password for the full-authentication path of both SHA-256 plugins: the
// NUL-terminated password is XORed with the challenge to prevent replay, then encrypted with RSA-OAEP-SHA1 under
// the server's public key.
func EncryptPassword(password string, random io.Reader, challenge []byte, pub *rsa.PublicKey) ([]byte, error) {
	if pub == nil {
		return nil, ErrNoPublicKey
	}

	plain := make([]byte, len(password)+1)
	copy(plain, password)
	for i := range plain {
		plain[i] ^= challenge[i%len(challenge)]
	}

	return rsa.EncryptOAEP(sha1.New(), random, pub, plain, nil)
}
