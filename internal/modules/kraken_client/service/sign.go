package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
)

// sign строит заголовок API-Sign:
// HMAC-SHA512(path + SHA256(nonce + postdata), base64decode(secret)).
func (c *Client) sign(path, nonce, postdata string) string {
	sha := sha256.Sum256([]byte(nonce + postdata))

	mac := hmac.New(sha512.New, c.secret)
	mac.Write([]byte(path))
	mac.Write(sha[:])

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
