// Package shortener provides the pluggable short-code generators. A
// generator is selected by name at wiring time; an unrecognized name is a
// configuration error, not something to paper over at request time.
package shortener

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// Generator produces the short value stored for an original URL. Remote
// delegates can fail, hence the error return and context.
type Generator func(ctx context.Context, original string) (string, error)

// Known generator names.
const (
	NameNanoID = "nanoid"
	NameUUID   = "uuid"
	NameHash   = "hash"
	NameClckRu = "clckru"
)

// Config selects and parameterizes a generator.
type Config struct {
	// Name picks the generator: nanoid, uuid, hash or clckru.
	Name string
	// CodeLength bounds nanoid and hash output. Defaults to 8.
	CodeLength int
	// Endpoint overrides the clckru API URL, mainly for tests.
	Endpoint string
}

// New builds the named generator or fails loudly on an unknown name.
func New(cfg Config) (Generator, error) {
	length := cfg.CodeLength
	if length <= 0 {
		length = 8
	}

	switch cfg.Name {
	case NameNanoID:
		gen, err := nanoid.Standard(length)
		if err != nil {
			return nil, fmt.Errorf("shortener: nanoid length %d: %w", length, err)
		}

		return func(_ context.Context, _ string) (string, error) {
			return gen(), nil
		}, nil
	case NameUUID:
		return func(_ context.Context, _ string) (string, error) {
			return uuid.NewString(), nil
		}, nil
	case NameHash:
		// The hex digest is sha256.Size*2 chars; a longer prefix cannot be
		// served, so reject it here instead of failing per request.
		if length > sha256.Size*2 {
			return nil, fmt.Errorf("shortener: hash length %d exceeds digest length %d", length, sha256.Size*2)
		}

		return func(_ context.Context, original string) (string, error) {
			normalized, err := NormalizeURL(original)
			if err != nil {
				return "", fmt.Errorf("shortener: normalize %q: %w", original, err)
			}

			return HashURL(normalized)[:length], nil
		}, nil
	case NameClckRu:
		return newClckRu(cfg.Endpoint).shorten, nil
	default:
		return nil, fmt.Errorf("shortener: unknown generator %q", cfg.Name)
	}
}

// NormalizeURL normalizes a URL for consistent hashing: lowercases scheme
// and host, strips default ports, trailing path slashes and empty fragments.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	host := u.Host
	if strings.HasSuffix(host, ":80") && u.Scheme == "http" {
		u.Host = strings.TrimSuffix(host, ":80")
	} else if strings.HasSuffix(host, ":443") && u.Scheme == "https" {
		u.Host = strings.TrimSuffix(host, ":443")
	}

	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	u.Fragment = ""

	return u.String(), nil
}

// HashURL computes the hex-encoded SHA256 of the normalized URL.
func HashURL(normalizedURL string) string {
	h := sha256.Sum256([]byte(normalizedURL))

	return hex.EncodeToString(h[:])
}
