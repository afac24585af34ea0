package dsa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify_KnownSignatures(t *testing.T) {
	params := smallParams(t)

	tests := []struct {
		name      string
		publicKey int64
		r, s      int64
	}{
		{"x=7 k=3", 41, 5, 15},
		{"x=27 k=4", 48, 20, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &Signature{R: big.NewInt(tt.r), S: big.NewInt(tt.s)}
			ok, err := Verify(params, big.NewInt(tt.publicKey), []byte("a"), sig)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestVerify_TamperedMessage(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)

	msg := []byte("This is a test message")
	fake := []byte("This is a fake message")

	sig, err := Sign(nil, params, key, msg)
	require.NoError(t, err)

	ok, err := Verify(params, key.PublicKey(), fake, sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_SameSuffixCollides(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)

	// The digest keeps only the last 20 bytes, so these share signatures.
	msg := []byte("pay alice: the quick brown fox jumps")
	other := []byte("pay mallory: the quick brown fox jumps")
	require.Equal(t, 0, Digest(msg).Cmp(Digest(other)))

	sig, err := Sign(nil, params, key, msg)
	require.NoError(t, err)

	ok, err := Verify(params, key.PublicKey(), other, sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_WrongPublicKey(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	other := randomKeyPair(t, params)

	msg := []byte("This is a test message")
	sig, err := Sign(nil, params, key, msg)
	require.NoError(t, err)

	ok, err := Verify(params, other.PublicKey(), msg, sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_ModifiedSignature(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	msg := []byte("This is a test message")

	sig, err := Sign(nil, params, key, msg)
	require.NoError(t, err)

	bumped := new(big.Int).Add(sig.S, big.NewInt(1))
	bumped.Mod(bumped, params.q)
	if bumped.Sign() == 0 {
		bumped.SetInt64(1)
	}

	ok, err := Verify(params, key.PublicKey(), msg, &Signature{R: sig.R, S: bumped})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_OutOfRange(t *testing.T) {
	// q=9 is composite: s=3 is not invertible, so any arithmetic past the
	// range check would fail with an error instead of returning false.
	params := compositeParams()
	pub := big.NewInt(16)

	tests := []struct {
		name string
		sig  *Signature
	}{
		{"nil signature", nil},
		{"nil r", &Signature{R: nil, S: big.NewInt(3)}},
		{"nil s", &Signature{R: big.NewInt(3), S: nil}},
		{"r zero", &Signature{R: big.NewInt(0), S: big.NewInt(3)}},
		{"r negative", &Signature{R: big.NewInt(-1), S: big.NewInt(3)}},
		{"r equals q", &Signature{R: big.NewInt(9), S: big.NewInt(3)}},
		{"r above q", &Signature{R: big.NewInt(100), S: big.NewInt(3)}},
		{"s zero", &Signature{R: big.NewInt(3), S: big.NewInt(0)}},
		{"s negative", &Signature{R: big.NewInt(3), S: big.NewInt(-5)}},
		{"s equals q", &Signature{R: big.NewInt(3), S: big.NewInt(9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := Verify(params, pub, []byte("a"), tt.sig)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestVerify_OutOfRangeDefaultParameters(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	msg := []byte("msg")

	sig, err := Sign(nil, params, key, msg)
	require.NoError(t, err)

	// r + q is congruent to r but must still be rejected.
	shifted := &Signature{R: new(big.Int).Add(sig.R, params.q), S: sig.S}
	ok, err := Verify(params, key.PublicKey(), msg, shifted)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_SNotInvertible(t *testing.T) {
	ok, err := Verify(compositeParams(), big.NewInt(16), []byte("a"), &Signature{R: big.NewInt(1), S: big.NewInt(3)})
	require.ErrorIs(t, err, ErrModularInverseUndefined)
	require.False(t, ok)
}

func TestVerifier_Concurrent(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	msg := []byte("shared")

	sig, err := Sign(nil, params, key, msg)
	require.NoError(t, err)
	verifier := NewVerifier(params, key.PublicKey())

	results := make(chan bool, 16)
	for i := 0; i < cap(results); i++ {
		go func() {
			ok, err := verifier.Verify(msg, sig)
			results <- ok && err == nil
		}()
	}
	for i := 0; i < cap(results); i++ {
		require.True(t, <-results)
	}
}

func TestVerify_NilPublicKey(t *testing.T) {
	params := smallParams(t)

	ok, err := Verify(params, nil, []byte("a"), &Signature{R: big.NewInt(5), S: big.NewInt(15)})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = NewVerifier(DefaultParameters(), nil).Verify([]byte("a"), &Signature{R: big.NewInt(1), S: big.NewInt(1)})
	require.NoError(t, err)
	require.False(t, ok)
}
