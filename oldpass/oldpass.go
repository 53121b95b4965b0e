// Package oldpass implements the insecure pre-4.1 mysql_old_password scramble. It exists for compatibility with
// ancient servers and should never be used where anything newer is available.
package oldpass

const (
	// ChallengeSize is the number of challenge bytes the scramble consumes.
	ChallengeSize = 8

	// Size is the length of a non-empty scramble response in bytes.
	Size = 8
)

// Scramble computes the client's response to the first ChallengeSize bytes of the server challenge using the
// pre-4.1 hash and PRNG. An empty password produces a nil response.
func Scramble(challenge [ChallengeSize]byte, password string) []byte {
	if len(password) == 0 {
		return nil
	}

	hashPw := hashPassword([]byte(password))
	hashCh := hashPassword(challenge[:])
	r := newRnd(hashPw[0]^hashCh[0], hashPw[1]^hashCh[1])

	var out [Size]byte
	for i := range out {
		out[i] = r.next() + 64
	}

	mask := r.next()
	for i := range out {
		out[i] ^= mask
	}
	return out[:]
}

// hashPassword computes the pre-4.1 password hash. Spaces and tabs in the password are skipped, an oddity
// preserved from the original server implementation.
func hashPassword(password []byte) (result [2]uint32) {
	var add uint32 = 7

	result[0] = 1345345333
	result[1] = 0x12345671

	for _, c := range password {
		if c == ' ' || c == '\t' {
			continue
		}

		tmp := uint32(c)
		result[0] ^= (((result[0] & 63) + add) * tmp) + (result[0] << 8)
		result[1] += (result[1] << 8) ^ result[0]
		add += tmp
	}

	result[0] &= 0x7FFFFFFF
	result[1] &= 0x7FFFFFFF
	return result
}

const rndMax = 0x3FFFFFFF

// rnd is the MySQL < 4.1 pseudorandom number generator. The integer form below is equivalent to the server's
// floating-point variant for every reachable state.
type rnd struct {
	seed1, seed2 uint32
}

func newRnd(seed1, seed2 uint32) *rnd {
	return &rnd{
		seed1: seed1 % rndMax,
		seed2: seed2 % rndMax,
	}
}

func (r *rnd) next() byte {
	r.seed1 = (r.seed1*3 + r.seed2) % rndMax
	r.seed2 = (r.seed1 + r.seed2 + 33) % rndMax

	return byte(uint64(r.seed1) * 31 / rndMax)
}
