package dsa

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// SignatureParser loads a batch of observed signatures for a nonce audit.
type SignatureParser interface {
	// ParseSignatures parses signatures from a source and returns them.
	ParseSignatures(source string) ([]*ObservedSignature, error)
}

// JSONParser parses signatures from JSON files.
type JSONParser struct {
	MessageField string // Field name for message (default: "message")
	RField       string // Field name for r (default: "r")
	SField       string // Field name for s (default: "s")
	ZField       string // Field name for the digest (default: "z")
}

// ParseSignatures parses signatures from a JSON file.
//
// Expected format:
//
//	[
//	  {"message": "...", "r": "...", "s": "..."},
//	  {"z": "0x...", "r": "0x...", "s": "0x..."}
//	]
//
// A record without a digest field has its message digested with Digest.
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*ObservedSignature, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, wrapCause(ErrIO, err, "open %s", jsonFile)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, wrapCause(ErrInvalidSignatureRecord, err, "parse JSON")
	}

	messageField := fieldOrDefault(p.MessageField, "message")
	rField := fieldOrDefault(p.RField, "r")
	sField := fieldOrDefault(p.SField, "s")
	zField := fieldOrDefault(p.ZField, "z")

	signatures := make([]*ObservedSignature, 0, len(items))
	for idx, item := range items {
		sig := &ObservedSignature{}

		if zVal, ok := item[zField]; ok {
			z, err := parseBigInt(zVal)
			if err != nil {
				return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "record %d: z: %v", idx, err)
			}
			sig.Z = z
		} else if msgVal, ok := item[messageField]; ok {
			message, ok := msgVal.(string)
			if !ok {
				return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "record %d: message must be a string", idx)
			}
			sig.Z = Digest([]byte(message))
		} else {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "record %d: missing message or z field", idx)
		}

		rVal, ok := item[rField]
		if !ok {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "record %d: missing r field", idx)
		}
		if sig.R, err = parseBigInt(rVal); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "record %d: r: %v", idx, err)
		}

		sVal, ok := item[sField]
		if !ok {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "record %d: missing s field", idx)
		}
		if sig.S, err = parseBigInt(sVal); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "record %d: s: %v", idx, err)
		}

		signatures = append(signatures, sig)
	}

	return signatures, nil
}

// CSVParser parses signatures from CSV files with a header row.
type CSVParser struct {
	MessageCol string // Column name for message (default: "message")
	RCol       string // Column name for r (default: "r")
	SCol       string // Column name for s (default: "s")
	ZCol       string // Column name for the digest (default: "z")
}

// ParseSignatures parses signatures from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*ObservedSignature, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, wrapCause(ErrIO, err, "open %s", csvFile)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, wrapCause(ErrInvalidSignatureRecord, err, "read header")
	}

	messageCol := fieldOrDefault(p.MessageCol, "message")
	rCol := fieldOrDefault(p.RCol, "r")
	sCol := fieldOrDefault(p.SCol, "s")
	zCol := fieldOrDefault(p.ZCol, "z")

	messageIdx, rIdx, sIdx, zIdx := -1, -1, -1, -1
	for i, col := range header {
		switch col {
		case messageCol:
			messageIdx = i
		case rCol:
			rIdx = i
		case sCol:
			sIdx = i
		case zCol:
			zIdx = i
		}
	}
	if rIdx == -1 || sIdx == -1 {
		return nil, errorsmod.Wrap(ErrInvalidSignatureRecord, "missing required columns: r or s")
	}
	if zIdx == -1 && messageIdx == -1 {
		return nil, errorsmod.Wrap(ErrInvalidSignatureRecord, "missing message or z column")
	}

	signatures := make([]*ObservedSignature, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCause(ErrInvalidSignatureRecord, err, "line %d", line)
		}

		sig := &ObservedSignature{}
		if zIdx >= 0 {
			if sig.Z, err = parseBigInt(record[zIdx]); err != nil {
				return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "line %d: z: %v", line, err)
			}
		} else {
			sig.Z = Digest([]byte(record[messageIdx]))
		}
		if sig.R, err = parseBigInt(record[rIdx]); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "line %d: r: %v", line, err)
		}
		if sig.S, err = parseBigInt(record[sIdx]); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureRecord, "line %d: s: %v", line, err)
		}

		signatures = append(signatures, sig)
	}

	return signatures, nil
}

func fieldOrDefault(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

// parseBigInt parses a non-negative integer given as a decimal string, a
// 0x-prefixed hex string or a JSON number.
func parseBigInt(val interface{}) (*big.Int, error) {
	var text string
	switch v := val.(type) {
	case string:
		text = strings.TrimSpace(v)
	case json.Number:
		text = string(v)
	case int64:
		return big.NewInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}

	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text, base = text[2:], 16
	}

	z, ok := new(big.Int).SetString(text, base)
	if !ok || z.Sign() < 0 {
		return nil, fmt.Errorf("invalid number format: %v", val)
	}
	return z, nil
}
