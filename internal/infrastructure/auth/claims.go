// Package auth implements the two token-verification strategies of the
// gateway. Both enforce the same issuer, audience and lifetime rules; they
// differ only in the signature trust anchor. The strategy is chosen once at
// startup from explicit configuration.
package auth

// Google issues ID tokens under either form of its issuer URL.
var allowedIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

func issuerAllowed(iss string) bool {
	_, ok := allowedIssuers[iss]
	return ok
}
