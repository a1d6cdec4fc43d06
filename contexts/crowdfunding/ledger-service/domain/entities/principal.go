package entities

import "strings"

// Principal is the opaque caller identity supplied by the transport layer.
// Two principals are the same caller when their canonical text forms match.
type Principal string

// AnonymousPrincipal is the identity the host assigns to unauthenticated callers.
const AnonymousPrincipal Principal = "2vxsx-fae"

func ParsePrincipal(raw string) (Principal, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	return Principal(value), true
}

func (p Principal) String() string {
	return string(p)
}

func (p Principal) IsAnonymous() bool {
	return p == AnonymousPrincipal
}
