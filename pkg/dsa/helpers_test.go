package dsa

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// smallParams returns the textbook group p=59, q=29, g=4, small enough to
// work every value out by hand.
func smallParams(t *testing.T) *Parameters {
	t.Helper()
	params, err := NewParameters(big.NewInt(59), big.NewInt(29))
	require.NoError(t, err)
	return params
}

// compositeParams returns a group whose order q=9 is not prime. NewParameters
// refuses it, so it is built directly.
func compositeParams() *Parameters {
	return &Parameters{p: big.NewInt(19), q: big.NewInt(9), g: big.NewInt(4)}
}

// nonceReader returns a reader that makes randomBelow yield the given values
// in order.
func nonceReader(params *Parameters, values ...*big.Int) *bytes.Reader {
	size := (params.q.BitLen() + 7) / 8
	var buf []byte
	for _, v := range values {
		buf = append(buf, v.FillBytes(make([]byte, size))...)
	}
	return bytes.NewReader(buf)
}

func mustKeyPair(t *testing.T, params *Parameters, x int64) *KeyPair {
	t.Helper()
	key, err := NewKeyPair(params, big.NewInt(x))
	require.NoError(t, err)
	return key
}

func randomKeyPair(t *testing.T, params *Parameters) *KeyPair {
	t.Helper()
	key, err := GenerateKeyPair(nil, params)
	require.NoError(t, err)
	return key
}

// randomNonce draws a nonce in [1, q).
func randomNonce(t *testing.T, params *Parameters) *big.Int {
	t.Helper()
	for {
		k, err := randomBelow(nil, params.q)
		require.NoError(t, err)
		if k.Sign() != 0 {
			return k
		}
	}
}

// signWithNonce signs message with exactly the nonce k.
func signWithNonce(t *testing.T, params *Parameters, key *KeyPair, message []byte, k *big.Int) *Signature {
	t.Helper()
	sig, err := NewSigner(params, key).
		WithRand(nonceReader(params, k)).
		WithMaxAttempts(1).
		Sign(message)
	require.NoError(t, err)
	return sig
}

// affineNonce returns a*k + b mod q.
func affineNonce(params *Parameters, k *big.Int, a, b int64) *big.Int {
	k2 := new(big.Int).Mul(k, big.NewInt(a))
	k2.Add(k2, big.NewInt(b))
	return k2.Mod(k2, params.q)
}

// relatedSignatures signs len(messages) messages where each nonce is
// a*previous + b.
func relatedSignatures(t *testing.T, params *Parameters, key *KeyPair, messages []string, a, b int64) []*ObservedSignature {
	t.Helper()
	k := randomNonce(t, params)
	out := make([]*ObservedSignature, 0, len(messages))
	for _, msg := range messages {
		sig := signWithNonce(t, params, key, []byte(msg), k)
		out = append(out, Observe([]byte(msg), sig))
		k = affineNonce(params, k, a, b)
	}
	return out
}

// writeJSONBatch writes signatures as a JSON batch with decimal r, s and z.
func writeJSONBatch(t *testing.T, signatures []*ObservedSignature) string {
	t.Helper()
	items := make([]map[string]string, 0, len(signatures))
	for _, sig := range signatures {
		items = append(items, map[string]string{
			"z": sig.Z.Text(10),
			"r": sig.R.Text(10),
			"s": sig.S.Text(10),
		})
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "signatures.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
