package dsa

import (
	"bytes"
	"io"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_RetriesWhenRIsZero(t *testing.T) {
	params := smallParams(t)
	key := mustKeyPair(t, params, 7)

	// 4^14 mod 59 = 29, so k=14 gives r=0 and is discarded; k=3 gives r=5.
	sig, err := NewSigner(params, key).
		WithRand(nonceReader(params, big.NewInt(14), big.NewInt(3))).
		Sign([]byte("a"))
	require.NoError(t, err)
	require.EqualValues(t, 5, sig.R.Int64())
	require.EqualValues(t, 15, sig.S.Int64())
}

func TestSign_RetriesWhenSIsZero(t *testing.T) {
	params := smallParams(t)
	key := mustKeyPair(t, params, 27)

	// With x=27, k=3: h + x*r = 97 + 27*5 = 232 = 8*29, so s=0.
	sig, err := NewSigner(params, key).
		WithRand(nonceReader(params, big.NewInt(3), big.NewInt(4))).
		Sign([]byte("a"))
	require.NoError(t, err)
	require.EqualValues(t, 20, sig.R.Int64())
	require.EqualValues(t, 7, sig.S.Int64())
}

func TestSign_RetriesWhenNonceIsZero(t *testing.T) {
	params := smallParams(t)
	key := mustKeyPair(t, params, 7)

	sig, err := NewSigner(params, key).
		WithRand(nonceReader(params, big.NewInt(0), big.NewInt(3))).
		Sign([]byte("a"))
	require.NoError(t, err)
	require.EqualValues(t, 5, sig.R.Int64())
	require.EqualValues(t, 15, sig.S.Int64())
}

func TestSign_RetriesExhausted(t *testing.T) {
	params := smallParams(t)
	key := mustKeyPair(t, params, 7)

	_, err := NewSigner(params, key).
		WithRand(nonceReader(params, big.NewInt(14), big.NewInt(14), big.NewInt(14))).
		WithMaxAttempts(3).
		Sign([]byte("a"))
	require.ErrorIs(t, err, ErrNonceRetriesExhausted)
}

func TestSign_RandomnessUnavailable(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)

	_, err := NewSigner(params, key).WithRand(bytes.NewReader(nil)).Sign([]byte("msg"))
	require.ErrorIs(t, err, ErrRandomnessUnavailable)
	require.ErrorIs(t, err, io.EOF)

	// A short read is as fatal as no read.
	_, err = NewSigner(params, key).WithRand(bytes.NewReader([]byte{1, 2, 3})).Sign([]byte("msg"))
	require.ErrorIs(t, err, ErrRandomnessUnavailable)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSign_NonceNotInvertible(t *testing.T) {
	params := compositeParams()
	key := &KeyPair{private: big.NewInt(2), public: big.NewInt(16)}

	// gcd(3, 9) = 3, while r = (4^3 mod 19) mod 9 = 7 is nonzero.
	_, err := NewSigner(params, key).
		WithRand(nonceReader(params, big.NewInt(3))).
		Sign([]byte("a"))
	require.ErrorIs(t, err, ErrModularInverseUndefined)
}

func TestSign_WithMaxAttemptsIgnoresNonPositive(t *testing.T) {
	signer := NewSigner(DefaultParameters(), nil).WithMaxAttempts(0).WithMaxAttempts(-3)
	require.Equal(t, DefaultMaxSignAttempts, signer.maxAttempts)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)

	messages := map[string][]byte{
		"test message":       []byte("This is a test message"),
		"special characters": []byte("This is a message with special characters: !@#$%^&*()_+"),
		"short":              []byte("Short"),
		"long":               []byte("This is a much longer message to test the signing and verification of messages of different lengths."),
		"empty":              {},
		"binary":             {0x00, 0xff, 0x00, 0x10},
	}

	for name, msg := range messages {
		t.Run(name, func(t *testing.T) {
			sig, err := NewSigner(params, key).Sign(msg)
			require.NoError(t, err)

			ok, err := Verify(params, key.PublicKey(), msg, sig)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestSign_RangeInvariants(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	signer := NewSigner(params, key)

	for i := 0; i < 50; i++ {
		sig, err := signer.Sign([]byte("range"))
		require.NoError(t, err)
		assert.Positive(t, sig.R.Sign())
		assert.Equal(t, -1, sig.R.Cmp(params.q))
		assert.Positive(t, sig.S.Sign())
		assert.Equal(t, -1, sig.S.Cmp(params.q))
	}
}

func TestSign_NonceIndependence(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	msg := []byte("This is a test message")

	first, err := Sign(nil, params, key, msg)
	require.NoError(t, err)
	second, err := Sign(nil, params, key, msg)
	require.NoError(t, err)

	require.NotEqual(t, 0, first.R.Cmp(second.R))
	require.NotEqual(t, 0, first.S.Cmp(second.S))
}

func TestSign_Concurrent(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	signer := NewSigner(params, key)
	verifier := NewVerifier(params, key.PublicKey())
	msg := []byte("concurrent")

	const goroutines, perGoroutine = 8, 10
	sigs := make(chan *Signature, goroutines*perGoroutine)
	errs := make(chan error, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				sig, err := signer.Sign(msg)
				if err != nil {
					errs <- err
					continue
				}
				sigs <- sig
			}
		}()
	}
	wg.Wait()
	close(sigs)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for sig := range sigs {
		ok, err := verifier.Verify(msg, sig)
		require.NoError(t, err)
		require.True(t, ok)

		require.False(t, seen[sig.R.String()], "nonce reused across concurrent signatures")
		seen[sig.R.String()] = true
	}
	require.Len(t, seen, goroutines*perGoroutine)
}

func TestSign_ReusedNonceLeaksPrivateKey(t *testing.T) {
	params := DefaultParameters()
	key := randomKeyPair(t, params)
	k := randomNonce(t, params)

	m1, m2 := []byte("first message"), []byte("second message")
	sig1 := signWithNonce(t, params, key, m1, k)
	sig2 := signWithNonce(t, params, key, m2, k)
	require.Equal(t, 0, sig1.R.Cmp(sig2.R))

	priv, err := RecoverPrivateKey(params, Observe(m1, sig1), Observe(m2, sig2), big.NewInt(1), big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, 0, priv.Cmp(key.private))
}

func TestSigner_PublicKey(t *testing.T) {
	params := smallParams(t)
	key := mustKeyPair(t, params, 7)
	require.EqualValues(t, 41, NewSigner(params, key).PublicKey().Int64())
}
