package mobile

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
)

// param is a single request parameter. Signing is order-sensitive, so
// parameters travel as a slice rather than a map.
type param struct {
	key, value string
}

// signParams computes the HMAC-SHA256 signature the mobile service expects:
// base64(HMAC(secret, "k=v&k=v...|unixTimestamp")). Values are joined raw,
// without URL encoding, in the given order.
func signParams(params []param, timestamp int64, secret string) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(timestamp, 10))

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
