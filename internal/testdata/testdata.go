// Package testdata provides deterministic pseudorandom data for tests and fuzz seeds.
package testdata

import "crypto/sha512"

// A DRBG is a deterministic byte source seeded with a domain string. It exists only to make test inputs
// reproducible; it is not a secure random source.
type DRBG struct {
	state [sha512.Size]byte
}

// New returns a DRBG seeded with the given domain string.
func New(domain string) *DRBG {
	return &DRBG{state: sha512.Sum512([]byte(domain))}
}

// Data returns the next n bytes of output.
func (d *DRBG) Data(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		d.state = sha512.Sum512(d.state[:])
		out = append(out, d.state[:min(len(d.state), n-len(out))]...)
	}
	return out
}
