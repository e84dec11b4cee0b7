package config

import "fmt"

type Config interface {
	EnvConfig
	GoogleConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetDBPath() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Google
	Session
}

func New() Config {
	return mainConfig{}
}

// Validate refuses a configuration that can never complete a login. Missing
// credentials would otherwise only surface when a user attempts to sign in.
func Validate(c Config) error {
	if c.GetGoogleClientID() == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is not set")
	}
	if c.GetGoogleClientSecret() == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is not set")
	}
	if c.GetSessionSecret() == "" {
		return fmt.Errorf("SESSION_SECRET is not set")
	}
	return nil
}
