// Package ed25519auth implements the deterministic password-derived Ed25519 signature used by MariaDB's
// client_ed25519 authentication plugin.
//
// Unlike standard Ed25519, the long-term secret is the password itself: the signing key is re-derived from the
// password on every call, nothing is persisted, and no randomness is consumed. Signatures are a pure function of
// (password, digest), which makes the password key-equivalent secret material — anyone who learns it can produce
// valid signatures for every past and future challenge.
//
// Callers are responsible for reducing variable-length messages to a 32-byte digest before signing; this package
// never hashes raw messages. In the MariaDB protocol the digest is the server's 32-byte scramble.
package ed25519auth

import (
	"crypto/sha512"
	"encoding/base64"

	"filippo.io/edwards25519"
)

const (
	// DigestSize is the length of a message digest in bytes.
	DigestSize = 32

	// PublicKeySize is the length of a public key in bytes.
	PublicKeySize = 32

	// SignatureSize is the length of a signature in bytes.
	SignatureSize = 64
)

// Sign derives a signing key from password and returns the signature of digest: the commitment point R followed
// by the response scalar S.
//
// The output verifies under RFC 8032 Ed25519 with the public key returned by PublicKey, and matches the MariaDB
// client_ed25519 reference implementation byte for byte.
func Sign(digest [DigestSize]byte, password []byte) [SignatureSize]byte {
	// Hash the password into the 64-byte expanded key. The clamped low half is the secret scalar s; the high
	// half is the nonce prefix.
	az := keyMaterial(password)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(az[:32])
	if err != nil {
		panic(err)
	}

	// Compute the public point A = [s]B.
	A := (&edwards25519.Point{}).ScalarBaseMult(s)

	// Derive the deterministic nonce r from the prefix and the digest, and commit to it with R = [r]B.
	r := deriveNonce(az[32:], digest)
	R := (&edwards25519.Point{}).ScalarBaseMult(r)

	// Derive the challenge scalar k from the transcript: the commitment point, the public point, and the
	// digest, in that order. The order binds the commitment to this signer and this message.
	ch := sha512.New()
	ch.Write(R.Bytes())
	ch.Write(A.Bytes())
	ch.Write(digest[:])
	k, err := edwards25519.NewScalar().SetUniformBytes(ch.Sum(nil))
	if err != nil {
		panic(err)
	}

	// Compute the response scalar S = (k·s + r) mod L.
	S := edwards25519.NewScalar().MultiplyAdd(k, s, r)

	var sig [SignatureSize]byte
	copy(sig[:32], R.Bytes())
	copy(sig[32:], S.Bytes())
	return sig
}

// PublicKey derives the Ed25519 public key for the given password. A verifier needs this key to check
// signatures produced by Sign; MariaDB stores it in mysql.user for ed25519 accounts.
func PublicKey(password []byte) [PublicKeySize]byte {
	az := keyMaterial(password)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(az[:32])
	if err != nil {
		panic(err)
	}

	var pub [PublicKeySize]byte
	copy(pub[:], (&edwards25519.Point{}).ScalarBaseMult(s).Bytes())
	return pub
}

// PublicKeyString returns the public key in the unpadded base64 form MariaDB uses for ed25519 account password
// strings.
func PublicKeyString(password []byte) string {
	pub := PublicKey(password)
	return base64.RawStdEncoding.EncodeToString(pub[:])
}

// keyMaterial hashes the password into the 64-byte expanded key and clamps the low half: the low three bits of
// byte 0 are cleared, the top bit of byte 31 is cleared, and the second-highest bit of byte 31 is set. This
// holds for every password, including the empty one.
func keyMaterial(password []byte) [sha512.Size]byte {
	az := sha512.Sum512(password)
	az[0] &= 248
	az[31] &= 63
	az[31] |= 64
	return az
}

// deriveNonce hashes the key prefix and the digest into a canonical scalar. The nonce depends only on these two
// inputs, never on the raw password bytes or their length.
func deriveNonce(prefix []byte, digest [DigestSize]byte) *edwards25519.Scalar {
	nh := sha512.New()
	nh.Write(prefix)
	nh.Write(digest[:])
	r, err := edwards25519.NewScalar().SetUniformBytes(nh.Sum(nil))
	if err != nil {
		panic(err)
	}
	return r
}
