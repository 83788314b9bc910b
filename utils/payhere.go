package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// PayHere signs requests with an MD5 of concatenated fields plus the
// uppercased MD5 of the merchant secret. Both directions use the same scheme.

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// PayHereCheckoutHash produces the hash sent along with a checkout request.
func PayHereCheckoutHash(merchantID, orderID string, amount float64, currency, secret string) string {
	return md5Upper(merchantID + orderID + fmt.Sprintf("%.2f", amount) + currency + md5Upper(secret))
}

// VerifyPayHereNotification checks the md5sig of a server-to-server notify
// callback. The comparison is case-insensitive.
func VerifyPayHereNotification(merchantID, orderID, amount, currency, statusCode, md5sig, secret string) bool {
	if md5sig == "" {
		return false
	}
	local := md5Upper(merchantID + orderID + amount + currency + statusCode + md5Upper(secret))
	return strings.EqualFold(local, md5sig)
}
