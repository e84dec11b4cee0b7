// Package session materializes a per-request identity from the signed
// session cookie. The cookie itself is the only persistence mechanism;
// nothing is stored server-side.
package session

// Identity carries the claims asserted by the identity provider about the
// authenticated user. Either field may be empty if the provider did not
// supply the corresponding claim.
type Identity struct {
	Name  string
	Email string
}
