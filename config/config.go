// Package config supplies transport settings to the sender. Settings are read
// fresh for every send through a Source, so a long running service picks up
// changes without restarting.
package config

import (
	"context"
	"errors"
	"time"
)

// ErrParsingConfig wraps failures to decode a configuration source.
var ErrParsingConfig = errors.New("failed to parse mail configuration")

// Transport holds the raw transport settings. Values are kept as the operator
// wrote them and are checked when the transport builds its settings.
type Transport struct {
	// Host is the SMTP server name.
	Host string `env:"SMTP_SERVER" mapstructure:"smtp_server" yaml:"smtp_server"`

	// Port is the SMTP server port. It is kept as text so that a malformed
	// port is reported as a configuration problem by the transport.
	Port string `env:"SMTP_PORT" mapstructure:"smtp_port" yaml:"smtp_port"`

	Username string `env:"SMTP_SERVER_USERNAME" mapstructure:"smtp_server_username" yaml:"smtp_server_username"`
	Password string `env:"SMTP_SERVER_PASSWORD" mapstructure:"smtp_server_password" yaml:"smtp_server_password"`

	// ExtraProperties is a properties file payload layered on top of the
	// computed transport settings, e.g.
	//
	//	mail.smtp.starttls.enable=true
	//	mail.smtp.timeout=5000
	ExtraProperties string `env:"EXTRA_PROPERTIES" mapstructure:"extra_properties" yaml:"extra_properties"`

	// Timeout bounds connection setup and each command. Zero leaves it to
	// the extra properties or the transport default.
	Timeout time.Duration `env:"SMTP_TIMEOUT" mapstructure:"smtp_timeout" yaml:"smtp_timeout"`

	// Region is the AWS region used by the SES transport.
	Region string `env:"SES_REGION" mapstructure:"ses_region" yaml:"ses_region"`
}

// Source provides the transport settings for one send.
type Source interface {
	Transport(ctx context.Context) (Transport, error)
}

// Static is a Source that always returns the same settings.
type Static Transport

// Transport returns the settings.
func (s Static) Transport(context.Context) (Transport, error) {
	return Transport(s), nil
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) (Transport, error)

// Transport calls f.
func (f SourceFunc) Transport(ctx context.Context) (Transport, error) {
	return f(ctx)
}
