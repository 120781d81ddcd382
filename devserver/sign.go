package devserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

const signedURLTTL = 15 * time.Minute

// signer produces and checks the HMAC signatures that make the dev
// server's upload URLs behave like pre-signed cloud storage targets.
type signer struct {
	secret []byte
}

func newSigner(secret string) *signer {
	return &signer{secret: []byte(secret)}
}

// sign returns the signature for an upload id and expiry timestamp.
func (s *signer) sign(id string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify checks a signature against the id and expiry, rejecting expired
// or forged URLs.
func (s *signer) verify(id string, expires int64, sig string) bool {
	if time.Now().Unix() > expires {
		return false
	}
	want := s.sign(id, expires)
	return hmac.Equal([]byte(want), []byte(sig))
}
