// Package auth protects the mutating endpoints with HTTP Basic Auth backed by
// an Argon2id password hash stored in a "username:hash" file.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Realm is sent in the WWW-Authenticate challenge
const Realm = "Dias Uteis"

// ErrInvalidHash is returned for hashes not in the $argon2id$ format
var ErrInvalidHash = errors.New("invalid hash format")

// Credentials is the single user allowed to edit
type Credentials struct {
	User string
	Hash string
}

// HashPassword creates an Argon2id hash of the password
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// parseHash decodes a $argon2id$ hash and rejects parameters argon2.IDKey
// cannot run with
func parseHash(hash string) (*hashParams, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return nil, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("%w: not an argon2id hash", ErrInvalidHash)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, fmt.Errorf("%w: failed to parse parameters: %v", ErrInvalidHash, err)
	}
	if time < 1 {
		return nil, fmt.Errorf("%w: t must be at least 1", ErrInvalidHash)
	}
	if threads < 1 || threads > 255 {
		return nil, fmt.Errorf("%w: p must be between 1 and 255", ErrInvalidHash)
	}
	if memory < 8*threads {
		return nil, fmt.Errorf("%w: m must be at least 8*p", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: bad salt", ErrInvalidHash)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, fmt.Errorf("%w: bad key", ErrInvalidHash)
	}

	return &hashParams{
		memory:  memory,
		time:    time,
		threads: uint8(threads),
		salt:    salt,
		key:     key,
	}, nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(password, hash string) (bool, error) {
	p, err := parseHash(hash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(p.key, computed) == 1, nil
}

// ParseCredentials parses a "username:hash" line. The hash must be a usable
// argon2id hash.
func ParseCredentials(line string) (*Credentials, error) {
	user, hash, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok || user == "" || hash == "" {
		return nil, fmt.Errorf("invalid auth file format (expected: username:hash)")
	}
	if _, err := parseHash(hash); err != nil {
		return nil, fmt.Errorf("invalid auth file hash: %w", err)
	}
	return &Credentials{User: user, Hash: hash}, nil
}

// LoadFile reads credentials from path. A missing file yields nil
// credentials and no error, which leaves editing unprotected.
func LoadFile(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}
	return ParseCredentials(string(data))
}

// CreateFile writes a read-only auth file for username. An existing file is
// replaced only when overwrite is set.
func CreateFile(path, username, password string, overwrite bool) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.Contains(username, ":") {
		return fmt.Errorf("username cannot contain ':'")
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("auth file already exists: %s", path)
		}
		// the file is 0400, so it has to go before rewriting
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(path, []byte(content), 0o400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}

// Authenticator checks Basic Auth credentials. A nil or empty Authenticator
// lets every request through.
type Authenticator struct {
	creds  *Credentials
	logger *zap.Logger
}

// NewAuthenticator creates an authenticator; creds may be nil
func NewAuthenticator(creds *Credentials, logger *zap.Logger) *Authenticator {
	if creds == nil {
		logger.Warn("No auth file found, editing is unprotected")
	} else {
		logger.Info("Basic Auth enabled", zap.String("user", creds.User))
	}
	return &Authenticator{creds: creds, logger: logger}
}

// Enabled reports whether requests are checked
func (a *Authenticator) Enabled() bool {
	return a != nil && a.creds != nil
}

// Check verifies a username and password pair
func (a *Authenticator) Check(user, password string) bool {
	if !a.Enabled() {
		return true
	}
	userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.creds.User)) == 1
	if !userMatch {
		return false
	}
	ok, err := VerifyPassword(password, a.creds.Hash)
	if err != nil {
		a.logger.Error("Failed to verify password", zap.Error(err))
		return false
	}
	return ok
}

// Middleware enforces Basic Auth on next
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || !a.Check(user, pass) {
			a.logger.Warn("Failed auth attempt",
				zap.String("remote", r.RemoteAddr),
				zap.String("user", user))
			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", Realm))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
