package dsa

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// signatureFileLines is the fixed number of lines in a signature file.
const signatureFileLines = 3

// SignatureFile is the persisted form of a signature: three decimal lines
// holding r, s and the signer's public key, in that order.
type SignatureFile struct {
	Signature *Signature
	PublicKey *big.Int
}

// EncodeSignatureFile writes f to w.
func EncodeSignatureFile(w io.Writer, f *SignatureFile) error {
	if f == nil || f.Signature == nil || f.Signature.R == nil || f.Signature.S == nil || f.PublicKey == nil {
		return errorsmod.Wrap(ErrMalformedSignatureFile, "signature and public key are required")
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", f.Signature.R.Text(10), f.Signature.S.Text(10), f.PublicKey.Text(10))
	if err != nil {
		return wrapCause(ErrIO, err, "write signature file")
	}
	return nil
}

// WriteSignatureFile writes f to the file at path, replacing it.
func WriteSignatureFile(path string, f *SignatureFile) error {
	var buf bytes.Buffer
	if err := EncodeSignatureFile(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return wrapCause(ErrIO, err, "write %s", path)
	}
	return nil
}

// DecodeSignatureFile reads a signature file from r. Input that does not
// split into exactly three lines, or whose lines are not decimal integers,
// fails with ErrMalformedSignatureFile.
func DecodeSignatureFile(r io.Reader) (*SignatureFile, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapCause(ErrIO, err, "read signature file")
	}

	if len(lines) != signatureFileLines {
		return nil, errorsmod.Wrapf(ErrMalformedSignatureFile, "expected %d lines, got %d", signatureFileLines, len(lines))
	}

	values := make([]*big.Int, signatureFileLines)
	for i, line := range lines {
		v, ok := new(big.Int).SetString(strings.TrimSpace(line), 10)
		if !ok {
			return nil, errorsmod.Wrapf(ErrMalformedSignatureFile, "line %d is not a decimal integer", i+1)
		}
		values[i] = v
	}

	return &SignatureFile{
		Signature: &Signature{R: values[0], S: values[1]},
		PublicKey: values[2],
	}, nil
}

// ReadSignatureFile reads the signature file at path.
func ReadSignatureFile(path string) (*SignatureFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, wrapCause(ErrIO, err, "open %s", path)
	}
	defer file.Close()

	return DecodeSignatureFile(file)
}
