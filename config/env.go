package config

import (
	"context"
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvPrefix is put in front of every variable name read by Env.
const DefaultEnvPrefix = "MAILSEND_"

// Env reads settings from environment variables such as MAILSEND_SMTP_SERVER
// and MAILSEND_SMTP_PORT.
type Env struct {
	// Prefix replaces DefaultEnvPrefix when set.
	Prefix string

	// DotEnv lists .env files loaded once, before the first read. Missing
	// files are ignored. Variables already set in the environment win.
	DotEnv []string

	// Environment replaces the process environment when not nil.
	Environment map[string]string

	once sync.Once
}

// Transport parses the environment.
func (e *Env) Transport(context.Context) (Transport, error) {
	e.once.Do(func() {
		if len(e.DotEnv) > 0 {
			// a missing .env file is fine
			_ = godotenv.Load(e.DotEnv...)
		}
	})

	prefix := e.Prefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	var t Transport
	err := env.ParseWithOptions(&t, env.Options{
		Prefix:      prefix,
		Environment: e.Environment,
	})
	if err != nil {
		return Transport{}, errors.Join(ErrParsingConfig, err)
	}

	return t, nil
}
