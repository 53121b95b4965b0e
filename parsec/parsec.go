// Package parsec implements the client side of MariaDB's parsec authentication scheme.
//
// The server extends its scramble with an ext-salt. The client derives an Ed25519 seed from the password and
// salt with PBKDF2-HMAC-SHA512, signs the scramble concatenated with a fresh client nonce, and responds with the
// nonce followed by the signature. Unlike client_ed25519, the key derivation here is deliberately stretched and
// the nonce is random by protocol design.
package parsec

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// NonceSize is the length of the client nonce in bytes.
	NonceSize = 32

	// maxIterationFactor bounds the server-requested PBKDF2 cost: iterations = 1024 << factor.
	maxIterationFactor = 3
)

// ErrExtSalt is returned when the server's ext-salt is malformed.
var ErrExtSalt = errors.New("parsec: malformed ext-salt")

// ExtSalt is the parsed form of the server's extended salt.
type ExtSalt struct {
	// Iterations is the PBKDF2 iteration count requested by the server.
	Iterations int

	// Salt is the raw salt.
	Salt []byte
}

// ParseExtSalt validates and splits the wire form 'P' ‖ iteration-factor ‖ salt.
func ParseExtSalt(extSalt []byte) (*ExtSalt, error) {
	if len(extSalt) < 3 {
		return nil, fmt.Errorf("%w: too short", ErrExtSalt)
	}
	if extSalt[0] != 'P' {
		return nil, fmt.Errorf("%w: invalid prefix", ErrExtSalt)
	}
	if extSalt[1] > maxIterationFactor {
		return nil, fmt.Errorf("%w: invalid iteration factor %d", ErrExtSalt, extSalt[1])
	}

	return &ExtSalt{
		Iterations: 1024 << extSalt[1],
		Salt:       extSalt[2:],
	}, nil
}

// Key derives the Ed25519 private key for the password and parsed ext-salt.
func Key(password string, es *ExtSalt) ed25519.PrivateKey {
	seed := pbkdf2.Key([]byte(password), es.Salt, es.Iterations, ed25519.SeedSize, sha512.New)
	return ed25519.NewKeyFromSeed(seed)
}

// Respond computes the client's authentication response to the server's ext-salt and challenge: a fresh random
// nonce followed by the Ed25519 signature of challenge ‖ nonce.
func Respond(extSalt, challenge []byte, password string) ([]byte, error) {
	return respond(extSalt, challenge, password, rand.Reader)
}

func respond(extSalt, challenge []byte, password string, random io.Reader) ([]byte, error) {
	es, err := ParseExtSalt(extSalt)
	if err != nil {
		return nil, err
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(random, nonce[:]); err != nil {
		return nil, fmt.Errorf("parsec: generating client nonce: %w", err)
	}

	message := make([]byte, 0, len(challenge)+NonceSize)
	message = append(message, challenge...)
	message = append(message, nonce[:]...)
	sig := ed25519.Sign(Key(password, es), message)

	return append(nonce[:], sig...), nil
}
