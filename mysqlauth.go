// Package mysqlauth implements the password-based challenge/response schemes used by MySQL and MariaDB client
// authentication plugins.
//
// Each scheme lives in its own package; this package maps wire plugin names to the single-round schemes via
// Responder and Registry. Multi-round schemes — parsec and the RSA full-authentication path of the SHA-256
// plugins — need mid-exchange server input and are exposed as functions in their packages instead.
//
// No packet framing, connection handling, or key storage happens here: callers hand in the challenge bytes the
// server sent and get back the response bytes to send.
package mysqlauth

import (
	"errors"
	"fmt"

	"github.com/codahale/mysqlauth/ed25519auth"
	"github.com/codahale/mysqlauth/nativepass"
	"github.com/codahale/mysqlauth/oldpass"
	"github.com/codahale/mysqlauth/sha2pass"
)

// ErrChallengeSize is returned when a server challenge is the wrong length for the selected plugin.
var ErrChallengeSize = errors.New("mysqlauth: bad challenge length")

// A Responder computes a client's one-shot response to a server authentication challenge.
type Responder interface {
	// Name returns the plugin name as it appears in the wire protocol.
	Name() string

	// Respond computes the response to the server's challenge using the given password.
	Respond(challenge []byte, password string) ([]byte, error)
}

// A Registry maps plugin names to responders.
type Registry struct {
	responders map[string]Responder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{responders: make(map[string]Responder)}
}

// Register adds a responder, replacing any previous responder with the same name.
func (r *Registry) Register(res Responder) {
	r.responders[res.Name()] = res
}

// Lookup returns the responder for the given plugin name.
func (r *Registry) Lookup(name string) (Responder, bool) {
	res, ok := r.responders[name]
	return res, ok
}

// Respond computes the response to the server's challenge using the named plugin.
func (r *Registry) Respond(plugin string, challenge []byte, password string) ([]byte, error) {
	res, ok := r.Lookup(plugin)
	if !ok {
		return nil, fmt.Errorf("mysqlauth: unknown authentication plugin %q", plugin)
	}
	return res.Respond(challenge, password)
}

// Default returns a registry of all built-in responders.
func Default() *Registry {
	r := NewRegistry()
	r.Register(NativePassword{})
	r.Register(CachingSHA2Password{})
	r.Register(OldPassword{})
	r.Register(ClearPassword{})
	r.Register(Ed25519{})
	return r
}

// NativePassword responds to mysql_native_password challenges.
type NativePassword struct{}

func (NativePassword) Name() string { return "mysql_native_password" }

func (NativePassword) Respond(challenge []byte, password string) ([]byte, error) {
	// Servers send 20 challenge bytes plus a trailing NUL; only the first 20 are scrambled.
	if len(challenge) < nativepass.ChallengeSize {
		return nil, fmt.Errorf("%w: mysql_native_password needs %d bytes, got %d",
			ErrChallengeSize, nativepass.ChallengeSize, len(challenge))
	}

	var c [nativepass.ChallengeSize]byte
	copy(c[:], challenge)
	return nativepass.Scramble(c, password), nil
}

// CachingSHA2Password responds to caching_sha2_password fast-authentication challenges.
type CachingSHA2Password struct{}

func (CachingSHA2Password) Name() string { return "caching_sha2_password" }

func (CachingSHA2Password) Respond(challenge []byte, password string) ([]byte, error) {
	return sha2pass.Scramble(challenge, password), nil
}

// OldPassword responds to pre-4.1 mysql_old_password challenges.
type OldPassword struct{}

func (OldPassword) Name() string { return "mysql_old_password" }

func (OldPassword) Respond(challenge []byte, password string) ([]byte, error) {
	if len(challenge) < oldpass.ChallengeSize {
		return nil, fmt.Errorf("%w: mysql_old_password needs %d bytes, got %d",
			ErrChallengeSize, oldpass.ChallengeSize, len(challenge))
	}

	var c [oldpass.ChallengeSize]byte
	copy(c[:], challenge)
	s := oldpass.Scramble(c, password)
	if s == nil {
		return nil, nil
	}
	// The wire format NUL-terminates the response.
	return append(s, 0), nil
}

// ClearPassword responds to mysql_clear_password challenges. The password crosses the wire as-is; use it only
// over channels that are already encrypted.
type ClearPassword struct{}

func (ClearPassword) Name() string { return "mysql_clear_password" }

func (ClearPassword) Respond(_ []byte, password string) ([]byte, error) {
	return append([]byte(password), 0), nil
}

// Ed25519 responds to MariaDB client_ed25519 challenges by signing the server's 32-byte scramble with the
// password-derived key.
type Ed25519 struct{}

func (Ed25519) Name() string { return "client_ed25519" }

func (Ed25519) Respond(challenge []byte, password string) ([]byte, error) {
	if len(challenge) != ed25519auth.DigestSize {
		return nil, fmt.Errorf("%w: client_ed25519 needs exactly %d bytes, got %d",
			ErrChallengeSize, ed25519auth.DigestSize, len(challenge))
	}

	var digest [ed25519auth.DigestSize]byte
	copy(digest[:], challenge)
	sig := ed25519auth.Sign(digest, []byte(password))
	return sig[:], nil
}
