package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
)

// Tokens are "<owner_id>.<hex hmac-sha256(owner_id, secret)>". The
// authentication collaborator that issues them is out of scope; the
// service only verifies the signature against its configured secret and
// trusts the owner id it carries.

func SignToken(secret string, ownerID int64) string {
	payload := strconv.FormatInt(ownerID, 10)

	return payload + "." + sign(secret, payload)
}

func parseToken(secret, token string) (int64, error) {
	payload, signature, ok := strings.Cut(token, ".")
	if !ok {
		return 0, apperrs.ErrUnauthorized
	}

	if !hmac.Equal([]byte(sign(secret, payload)), []byte(signature)) {
		return 0, apperrs.ErrUnauthorized
	}

	ownerID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || ownerID <= 0 {
		return 0, apperrs.ErrUnauthorized
	}

	return ownerID, nil
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))

	return hex.EncodeToString(mac.Sum(nil))
}
