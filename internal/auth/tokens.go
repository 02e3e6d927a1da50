package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

// NewToken returns a fresh opaque credential: the raw value handed to the
// client and the sha256 hex digest stored at rest. Used for both session
// tokens and password-reset tokens; only the digest ever touches the
// database, so a leaked table does not leak usable credentials.
func NewToken() (raw, tokenHash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("read token: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(buf)
	return raw, HashToken(raw), nil
}

func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// tempPasswordAlphabet drops easily-confused characters (0/O, 1/l/I) so
// invite passwords survive being read out over the phone.
const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const tempPasswordLen = 14

// NewTempPassword generates the one-time plaintext password handed to an
// invited admin for out-of-band delivery.
func NewTempPassword() (string, error) {
	out := make([]byte, tempPasswordLen)
	buf := make([]byte, 1)
	for i := 0; i < tempPasswordLen; {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read temp password: %w", err)
		}
		// Rejection sampling avoids modulo bias over the 58-char alphabet.
		if int(buf[0]) >= len(tempPasswordAlphabet)*(256/len(tempPasswordAlphabet)) {
			continue
		}
		out[i] = tempPasswordAlphabet[int(buf[0])%len(tempPasswordAlphabet)]
		i++
	}
	return string(out), nil
}

// BearerToken extracts the session token from an Authorization header.
// The session credential is threaded explicitly per request rather than
// held in any ambient state.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
