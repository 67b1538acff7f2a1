// Package auth holds the JWT capabilities attached to the application.
//
// Signing and verification are deliberately stubs: they take no token,
// perform no cryptography and always return the same strings. Real
// token handling is out of scope for this service.
package auth

const (
	// SignedJWT is what SignJWT always returns.
	SignedJWT = "Signed JWT"

	// VerifiedJWT is what VerifyJWT always returns.
	VerifiedJWT = "Verified JWT"

	// PlaceholderUserName is the identity assigned to every request.
	PlaceholderUserName = "Bob Jones"
)

// JWT is the pair of token capabilities handlers can call.
type JWT interface {
	SignJWT() string
	VerifyJWT() string
}

// Stub implements JWT with fixed return values.
type Stub struct{}

// NewStub returns the stub capabilities.
func NewStub() Stub {
	return Stub{}
}

// SignJWT returns SignedJWT.
func (Stub) SignJWT() string {
	return SignedJWT
}

// VerifyJWT returns VerifiedJWT.
func (Stub) VerifyJWT() string {
	return VerifiedJWT
}
