package digester

import (
	"crypto/md5" //nolint:gosec // offered for template compatibility
	"crypto/sha1" //nolint:gosec // offered for template compatibility
	"crypto/sha256"
	"crypto/sha3"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Errors returned by Sum.
var (
	ErrUnknownAlgorithm = errors.New("unsupported digest algorithm")
	ErrUnknownEncoding  = errors.New("unsupported digest encoding")
)

// DefaultEncoding is used when Sum receives an empty encoding.
const DefaultEncoding = "hex"

var algorithms = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512-224": sha512.New512_224,
	"sha512-256": sha512.New512_256,
	"sha3-224":   func() hash.Hash { return sha3.New224() },
	"sha3-256":   func() hash.Hash { return sha3.New256() },
	"sha3-384":   func() hash.Hash { return sha3.New384() },
	"sha3-512":   func() hash.Hash { return sha3.New512() },
}

// Algorithms lists the accepted algorithm names.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}

	return names
}

// Sum digests data with algorithm and encodes the result.
// Names are case-insensitive. Encodings: hex, base64,
// base64url (unpadded), latin1 / binary (raw bytes).
func Sum(data []byte, algorithm, encoding string) (string, error) {
	const errCtx = "computing digest"

	newHash, ok := algorithms[strings.ToLower(algorithm)]
	if !ok {
		return "", fmt.Errorf(
			"%s: %w: %q", errCtx, ErrUnknownAlgorithm, algorithm,
		)
	}

	ha := newHash()
	ha.Write(data)

	out, err := encode(ha.Sum(nil), encoding)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

func encode(sum []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case "", DefaultEncoding:
		return hex.EncodeToString(sum), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(sum), nil
	case "base64url":
		return base64.RawURLEncoding.EncodeToString(sum), nil
	case "latin1", "binary":
		runes := make([]rune, len(sum))
		for idx, by := range sum {
			runes[idx] = rune(by)
		}

		return string(runes), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

// CalculateDigest computes the SHA256 hex digest of the file at
// path. Returns empty string with no error if the file does not
// exist.
func CalculateDigest(path string) (result string, retErr error) {
	const errCtx = "calculating digest"

	fi, err := os.Open(path) //nolint:gosec // path from caller
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	ha := sha256.New()

	if _, err := io.Copy(ha, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

// Unchanged reports whether the file at path already holds
// content. A missing file is always changed.
func Unchanged(path string, content []byte) (bool, error) {
	const errCtx = "comparing digest"

	stored, err := CalculateDigest(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	if stored == "" {
		return false, nil
	}

	sum := sha256.Sum256(content)

	return stored == hex.EncodeToString(sum[:]), nil
}
