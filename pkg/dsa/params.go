package dsa

import (
	"math/big"
	"sync"

	errorsmod "cosmossdk.io/errors"
)

// primalityRounds is the number of Miller-Rabin rounds used by NewParameters.
const primalityRounds = 32

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Parameters holds the domain parameters (p, q, g) of the group signatures are
// computed in. A Parameters value is immutable and safe to share between
// goroutines.
type Parameters struct {
	p *big.Int // prime modulus
	q *big.Int // prime order of the subgroup
	g *big.Int // generator of the order-q subgroup
}

// DefaultQ returns the fixed subgroup order q = 2^160 + 7.
func DefaultQ() *big.Int {
	q := new(big.Int).Lsh(one, 160)
	return q.Add(q, big.NewInt(7))
}

// DefaultP returns the fixed modulus p = 1 + q*(2^864 + 218).
func DefaultP() *big.Int {
	k := new(big.Int).Lsh(one, 864)
	k.Add(k, big.NewInt(218))
	p := new(big.Int).Mul(DefaultQ(), k)
	return p.Add(p, one)
}

var defaultParameters = sync.OnceValue(func() *Parameters {
	params, err := deriveParameters(DefaultP(), DefaultQ())
	if err != nil {
		panic(err)
	}
	return params
})

// DefaultParameters returns the fixed domain parameters every signature in
// this package is computed with unless the caller builds its own.
//
// The primality of p and q is assumed, not tested.
func DefaultParameters() *Parameters {
	return defaultParameters()
}

// NewParameters validates p and q and derives g = 2^((p-1)/q) mod p.
//
// It fails with ErrInvalidParameters unless q is odd and greater than one,
// q divides p-1, both p and q pass a probable-prime test, g != 1 and
// g^q mod p == 1.
func NewParameters(p, q *big.Int) (*Parameters, error) {
	if p == nil || q == nil {
		return nil, errorsmod.Wrap(ErrInvalidParameters, "p and q are required")
	}
	if !q.ProbablyPrime(primalityRounds) {
		return nil, errorsmod.Wrapf(ErrInvalidParameters, "q=%s is not prime", q)
	}
	if !p.ProbablyPrime(primalityRounds) {
		return nil, errorsmod.Wrapf(ErrInvalidParameters, "p=%s is not prime", p)
	}
	return deriveParameters(p, q)
}

// deriveParameters checks the structural invariants and computes g.
func deriveParameters(p, q *big.Int) (*Parameters, error) {
	if q.Cmp(one) <= 0 || q.Bit(0) == 0 {
		return nil, errorsmod.Wrapf(ErrInvalidParameters, "q=%s must be odd and greater than 1", q)
	}
	if p.Cmp(q) <= 0 {
		return nil, errorsmod.Wrapf(ErrInvalidParameters, "p must be greater than q")
	}

	pMinusOne := new(big.Int).Sub(p, one)
	cofactor, rem := new(big.Int).QuoRem(pMinusOne, q, new(big.Int))
	if rem.Sign() != 0 {
		return nil, errorsmod.Wrapf(ErrInvalidParameters, "q does not divide p-1")
	}

	g := new(big.Int).Exp(two, cofactor, p)
	if g.Cmp(one) == 0 {
		return nil, errorsmod.Wrap(ErrInvalidParameters, "generator is 1")
	}
	if new(big.Int).Exp(g, q, p).Cmp(one) != 0 {
		return nil, errorsmod.Wrap(ErrInvalidParameters, "g^q mod p != 1")
	}

	return &Parameters{
		p: new(big.Int).Set(p),
		q: new(big.Int).Set(q),
		g: g,
	}, nil
}

// P returns a copy of the modulus.
func (params *Parameters) P() *big.Int { return new(big.Int).Set(params.p) }

// Q returns a copy of the subgroup order.
func (params *Parameters) Q() *big.Int { return new(big.Int).Set(params.q) }

// G returns a copy of the generator.
func (params *Parameters) G() *big.Int { return new(big.Int).Set(params.g) }

// inRange reports whether 0 < v < q.
func (params *Parameters) inRange(v *big.Int) bool {
	return v != nil && v.Sign() > 0 && v.Cmp(params.q) < 0
}
