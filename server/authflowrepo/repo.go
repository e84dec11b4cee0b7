package authflowrepo

import "time"

// LoginState tracks a single in-flight authorization round trip to the
// identity provider, keyed by the opaque state parameter.
type LoginState struct {
	CodeVerifier string
	Nonce        string
	ReturnPath   string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, loginState *LoginState) error
	Get(state string) (*LoginState, error)
	Delete(state string) error
}
