package schema

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrInvalidHost = errors.New("invalid host")

	ulidRegex = regexp.MustCompile(`(?i)^[0-9A-HJKMNP-TV-Z]{26}$`)
)

// NewID generates a new ULID string for use as an entity identifier.
func NewID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}

// MintID builds a canonical https @id URI for a fresh entity:
// https://<host>/<basePath>/<ulid>.
func MintID(host, basePath string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" || strings.ContainsAny(host, "/ ") {
		return "", fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}
	id, err := NewID()
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme: "https",
		Host:   host,
		Path:   path.Join("/", basePath, id),
	}
	return u.String(), nil
}

// IsULID reports whether value is a valid ULID (case-insensitive Crockford
// Base32).
func IsULID(value string) bool {
	return ulidRegex.MatchString(strings.TrimSpace(value))
}

// IsID reports whether uri looks like a minted entity URI: absolute http(s)
// with a trailing ULID path segment.
func IsID(uri string) bool {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return false
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return false
	}
	return IsULID(path.Base(u.Path))
}
