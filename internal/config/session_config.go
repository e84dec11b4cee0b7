package config

import (
	"time"
)

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionSecret returns the HMAC key used to sign session cookies.
func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

func (Session) GetSessionTTL() time.Duration {
	ttl := GetEnv("SESSION_TTL", "")
	if ttl == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
