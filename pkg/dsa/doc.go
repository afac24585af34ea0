// Package dsa implements a classic discrete-log signature scheme over fixed
// domain parameters, plus an audit that recovers private keys from signatures
// whose nonces are related.
//
// The scheme follows DSA: domain parameters (p, q, g), a private key x in
// [0, q), a public key y = g^x mod p, and signatures (r, s) computed with a
// fresh random nonce per call. Two deliberate departures from a standard
// implementation are kept:
//
//   - the message digest is the message read as a big-endian integer mod
//     2^160, not a cryptographic hash (see Digest);
//   - the domain parameters are hard-coded (q = 2^160 + 7,
//     p = 1 + q*(2^864 + 218), g = 2^((p-1)/q) mod p) and their primality
//     is assumed.
//
// Neither is suitable for adversarial input.
//
// # Quick Start
//
//	params := dsa.DefaultParameters()
//
//	key, err := dsa.GenerateKeyPair(nil, params)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := dsa.NewSigner(params, key).Sign(message)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := dsa.Verify(params, key.PublicKey(), message, sig)
//
// Verify returns false for a signature that does not verify, including one
// whose components are out of range. An error from Sign or Verify always
// means the parameters or the entropy source are broken, never that a
// signature was rejected.
//
// # Signature files
//
// WriteSignatureFile and ReadSignatureFile persist a signature as three
// decimal lines: r, s and the public key.
//
// # Nonce audit
//
// A nonce reused or derived affinely from another (k2 = a*k1 + b) leaks the
// private key. The audit client searches a batch of signatures for such pairs:
//
//	client := dsa.NewClient().WithParser(&dsa.CSVParser{})
//
//	result, err := client.Audit(ctx, "signatures.csv", publicKey)
//	if err == nil {
//	    fmt.Printf("recovered key, pattern %s\n", result.Pattern)
//	}
//
// The search can be tuned or replaced:
//
//	strategy := dsa.NewNonceAuditStrategy().
//	    WithRangeConfig(dsa.RangeConfig{
//	        ARange:     [2]int{1, 4},
//	        BRange:     [2]int{-1000, 1000},
//	        MaxPairs:   50,
//	        NumWorkers: 8,
//	        SkipZeroA:  true,
//	    })
//
//	client := dsa.NewClient().WithStrategy(strategy)
package dsa
