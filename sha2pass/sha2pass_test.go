package sha2pass_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/codahale/mysqlauth/sha2pass"
)

func TestScramble(t *testing.T) {
	challenge := []byte{10, 47, 74, 111, 75, 73, 34, 48, 88, 76, 114, 74, 37, 13, 3, 80, 82, 2, 23, 21}

	vectors := []struct {
		password string
		want     string
	}{
		{"secret", "f490e76f66d9d86665ce54d98c78d0acfe2fb0b08b423da807144873d30b312c"},
		{"secret2", "abc3934a012cf342e876071c8ee202de51785b430258a7a0138bc79c4d800bc6"},
	}

	for _, v := range vectors {
		t.Run(v.password, func(t *testing.T) {
			got := hex.EncodeToString(sha2pass.Scramble(challenge, v.password))
			if got != v.want {
				t.Errorf("Scramble(challenge, %q) = %s, want = %s", v.password, got, v.want)
			}
		})
	}

	t.Run("empty password", func(t *testing.T) {
		if got := sha2pass.Scramble(challenge, ""); len(got) != 0 {
			t.Errorf("Scramble(challenge, \"\") = %x, want = empty", got)
		}
	})
}

func TestEncryptPassword(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	challenge := []byte{90, 105, 74, 126, 30, 48, 37, 56, 3, 23, 115, 127, 69, 22, 41, 84, 32, 123, 43, 118}
	enc, err := sha2pass.EncryptPassword("secret", rand.Reader, challenge, &key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	plain, err := rsa.DecryptOAEP(sha1.New(), nil, key, enc, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range plain {
		plain[i] ^= challenge[i%len(challenge)]
	}

	if got, want := plain, append([]byte("secret"), 0); !bytes.Equal(got, want) {
		t.Errorf("decrypted password = %q, want = %q", got, want)
	}
}

func TestEncryptPasswordNoKey(t *testing.T) {
	if _, err := sha2pass.EncryptPassword("secret", rand.Reader, []byte{1}, nil); err != sha2pass.ErrNoPublicKey {
		t.Errorf("EncryptPassword with nil key = %v, want = %v", err, sha2pass.ErrNoPublicKey)
	}
}
