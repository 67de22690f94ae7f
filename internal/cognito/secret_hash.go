package cognito

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SecretHash computes the per-request authentication value required by the
// provider's app-client authentication: base64(HMAC-SHA256(clientSecret,
// username || clientID)). It must accompany every provider call keyed by a
// username.
func SecretHash(clientSecret, username, clientID string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
