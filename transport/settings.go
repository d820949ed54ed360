package transport

import (
	"errors"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/magiconair/properties"

	"github.com/zostay/go-mailsend/config"
)

// Property keys. The names follow the long standing JavaMail conventions so
// that existing extra property payloads keep working.
const (
	KeyHost              = "mail.smtp.host"
	KeyPort              = "mail.smtp.port"
	KeyLocalHost         = "mail.smtp.localhost"
	KeyMailHost          = "mail.host"
	KeyDebug             = "mail.debug"
	KeyAuth              = "mail.smtp.auth"
	KeyUsername          = "mail.smtp.server.username"
	KeyPassword          = "mail.smtp.server.password"
	KeyConnectionTimeout = "mail.smtp.connectiontimeout"
	KeyTimeout           = "mail.smtp.timeout"
	KeyWriteTimeout      = "mail.smtp.writetimeout"
	KeyStartTLS          = "mail.smtp.starttls.enable"
	KeyStartTLSRequired  = "mail.smtp.starttls.required"
	KeySSL               = "mail.smtp.ssl.enable"
	KeyCheckServerID     = "mail.smtp.ssl.checkserveridentity"
	KeyFrom              = "mail.smtp.from"
	KeyRegion            = "mail.ses.region"
)

// DefaultPort is used when no port is configured.
const DefaultPort = 25

var (
	durationKeys = []string{KeyConnectionTimeout, KeyTimeout, KeyWriteTimeout}
	boolKeys     = []string{KeyDebug, KeyAuth, KeyStartTLS, KeyStartTLSRequired, KeySSL, KeyCheckServerID}
)

// Settings are the effective transport properties for one delivery.
type Settings struct {
	p *properties.Properties
}

// NewSettings computes the settings from cfg. Malformed values, including a
// malformed extra properties payload, give a *ConfigurationError.
func NewSettings(cfg config.Transport) (*Settings, error) {
	p := properties.NewProperties()
	p.DisableExpansion = true

	port := DefaultPort
	if ps := strings.TrimSpace(cfg.Port); ps != "" {
		var err error
		port, err = strconv.Atoi(ps)
		if err != nil {
			return nil, &ConfigurationError{Key: KeyPort, Err: err}
		}
		if port <= 0 || port > 65535 {
			return nil, &ConfigurationError{Key: KeyPort, Err: errors.New("port out of range")}
		}
	}

	set := func(k, v string) { _, _, _ = p.Set(k, v) }
	set(KeyHost, cfg.Host)
	set(KeyPort, strconv.Itoa(port))
	set(KeyLocalHost, "localhost")
	set(KeyMailHost, "localhost")
	set(KeyDebug, "false")

	if cfg.Username != "" && cfg.Password != "" {
		set(KeyAuth, "true")
		set(KeyUsername, cfg.Username)
		set(KeyPassword, cfg.Password)
	} else {
		set(KeyAuth, "false")
	}

	if cfg.Timeout > 0 {
		ms := strconv.FormatInt(cfg.Timeout.Milliseconds(), 10)
		set(KeyConnectionTimeout, ms)
		set(KeyTimeout, ms)
	}

	if cfg.Region != "" {
		set(KeyRegion, cfg.Region)
	}

	if strings.TrimSpace(cfg.ExtraProperties) != "" {
		extra, err := properties.Load([]byte(cfg.ExtraProperties), properties.UTF8)
		if err != nil {
			return nil, &ConfigurationError{Key: "extra properties", Err: err}
		}

		for _, k := range extra.Keys() {
			if _, ok := p.Get(k); ok {
				continue
			}
			set(k, extra.GetString(k, ""))
		}
	}

	s := &Settings{p: p}
	if err := s.check(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) check() error {
	for _, k := range durationKeys {
		if v, ok := s.p.Get(k); ok {
			if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
				return &ConfigurationError{Key: k, Err: err}
			}
		}
	}

	for _, k := range boolKeys {
		if v, ok := s.p.Get(k); ok {
			if _, err := strconv.ParseBool(strings.TrimSpace(v)); err != nil {
				return &ConfigurationError{Key: k, Err: err}
			}
		}
	}

	return nil
}

// Get returns the raw value of any property.
func (s *Settings) Get(key string) (string, bool) {
	return s.p.Get(key)
}

// Keys returns every property name, sorted.
func (s *Settings) Keys() []string {
	keys := s.p.Keys()
	sort.Strings(keys)
	return keys
}

func (s *Settings) bool(key string) bool {
	v, _ := s.p.Get(key)
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}

func (s *Settings) millis(key string) time.Duration {
	v, _ := s.p.Get(key)
	n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	return time.Duration(n) * time.Millisecond
}

// Host is the server name.
func (s *Settings) Host() string {
	v, _ := s.p.Get(KeyHost)
	return v
}

// Port is the server port.
func (s *Settings) Port() int {
	v, _ := s.p.Get(KeyPort)
	n, _ := strconv.Atoi(v)
	return n
}

// Addr is host:port.
func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Host(), strconv.Itoa(s.Port()))
}

// LocalName is the name given in EHLO.
func (s *Settings) LocalName() string {
	v, _ := s.p.Get(KeyLocalHost)
	return v
}

// Debug reports whether protocol traces were requested.
func (s *Settings) Debug() bool { return s.bool(KeyDebug) }

// Auth reports whether to authenticate. It is true only when both a username
// and a password were configured.
func (s *Settings) Auth() bool { return s.bool(KeyAuth) }

// Credentials returns the username and password.
func (s *Settings) Credentials() (string, string) {
	u, _ := s.p.Get(KeyUsername)
	pw, _ := s.p.Get(KeyPassword)
	return u, pw
}

// ConnectionTimeout bounds the dial. Zero means no limit.
func (s *Settings) ConnectionTimeout() time.Duration { return s.millis(KeyConnectionTimeout) }

// Timeout bounds each command. Zero means the client default.
func (s *Settings) Timeout() time.Duration { return s.millis(KeyTimeout) }

// WriteTimeout bounds writing the message. Zero means the client default.
func (s *Settings) WriteTimeout() time.Duration { return s.millis(KeyWriteTimeout) }

// StartTLS reports whether to upgrade with STARTTLS when offered.
func (s *Settings) StartTLS() bool { return s.bool(KeyStartTLS) }

// StartTLSRequired reports whether a server without STARTTLS is an error.
func (s *Settings) StartTLSRequired() bool { return s.bool(KeyStartTLSRequired) }

// SSL reports whether to connect with TLS from the start.
func (s *Settings) SSL() bool { return s.bool(KeySSL) }

// CheckServerIdentity reports whether the server certificate is verified. It
// is true unless explicitly turned off.
func (s *Settings) CheckServerIdentity() bool {
	if _, ok := s.p.Get(KeyCheckServerID); !ok {
		return true
	}
	return s.bool(KeyCheckServerID)
}

// From is the envelope sender override, if any.
func (s *Settings) From() string {
	v, _ := s.p.Get(KeyFrom)
	return strings.TrimSpace(v)
}

// Region is the AWS region for SES.
func (s *Settings) Region() string {
	v, _ := s.p.Get(KeyRegion)
	return v
}

// String lists the properties one per line with the password masked.
func (s *Settings) String() string {
	var sb strings.Builder
	for _, k := range s.Keys() {
		v, _ := s.p.Get(k)
		if k == KeyPassword {
			v = "********"
		}
		sb.WriteString(k)
		sb.WriteString(" = ")
		sb.WriteString(v)
		sb.WriteString("\n")
	}
	return sb.String()
}
