package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValidateSignInPayload verifies a sign-in payload minted by the blog
// platform after its hosted auth provider authenticated the user. The
// payload is a query string (uid, username, avatar_url, auth_date) signed
// with HMAC-SHA256 over the sorted key=value lines, keyed by the shared
// platform secret. Stale payloads are rejected to limit replay.
func ValidateSignInPayload(payload, platformSecret string) (url.Values, bool) {
	values, err := url.ParseQuery(payload)
	if err != nil {
		return nil, false
	}

	sig := values.Get("sig")
	if sig == "" {
		return nil, false
	}
	values.Del("sig")

	var dataCheck []string
	for k, v := range values {
		dataCheck = append(dataCheck, k+"="+strings.Join(v, ""))
	}

	sort.Strings(dataCheck)
	dataString := strings.Join(dataCheck, "\n")

	secret := sha256.Sum256([]byte(platformSecret))
	h := hmac.New(sha256.New, secret[:])
	h.Write([]byte(dataString))

	calculated := h.Sum(nil)
	provided, err := hex.DecodeString(sig)
	if err != nil {
		return nil, false
	}

	if !hmac.Equal(calculated, provided) {
		return nil, false
	}

	authDateStr := values.Get("auth_date")
	if authDateStr == "" {
		return nil, false
	}
	authDate, err := strconv.ParseInt(authDateStr, 10, 64)
	if err != nil {
		return nil, false
	}

	now := time.Now().Unix()
	// allow small clock skew, but reject anything older than 1 hour
	if now-authDate > 3600 || authDate-now > 300 {
		return nil, false
	}

	if values.Get("uid") == "" {
		return nil, false
	}

	return values, true
}
