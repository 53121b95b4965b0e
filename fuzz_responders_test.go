package mysqlauth_test

import (
	"bytes"
	"testing"

	fuzz "github.com/trailofbits/go-fuzz-utils"

	"github.com/codahale/mysqlauth"
	"github.com/codahale/mysqlauth/internal/testdata"
)

var pluginNames = []string{
	"mysql_native_password",
	"caching_sha2_password",
	"mysql_old_password",
	"mysql_clear_password",
	"client_ed25519",
}

// FuzzResponders checks that every built-in responder is a pure function of (challenge, password): repeated
// calls agree on both the response and the error, and responses never alias the challenge buffer.
func FuzzResponders(f *testing.F) {
	drbg := testdata.New("mysqlauth responders")
	for range 10 {
		f.Add(drbg.Data(96))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		sel, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		plugin := pluginNames[int(sel)%len(pluginNames)]

		challenge, err := tp.GetBytes()
		if err != nil {
			t.Skip(err)
		}

		password, err := tp.GetString()
		if err != nil {
			t.Skip(err)
		}

		reg := mysqlauth.Default()
		first, errFirst := reg.Respond(plugin, challenge, password)
		clobbered := bytes.Clone(challenge)
		second, errSecond := reg.Respond(plugin, clobbered, password)

		if (errFirst == nil) != (errSecond == nil) {
			t.Fatalf("divergent errors: %v, then %v", errFirst, errSecond)
		}
		if !bytes.Equal(first, second) {
			t.Fatalf("divergent responses: %x, then %x", first, second)
		}
		if errFirst == nil && len(first) > 0 {
			// Mutating the caller's challenge must not change an already-returned response.
			for i := range clobbered {
				clobbered[i] ^= 0xff
			}
			if !bytes.Equal(first, second) {
				t.Fatal("response aliases the challenge buffer")
			}
		}
	})
}
