package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the claims carried by a bearer (access) credential
type AccessClaims struct {
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by a renewal (refresh) credential
type RefreshClaims struct {
	jwt.RegisteredClaims
}
