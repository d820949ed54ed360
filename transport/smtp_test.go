package transport_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"io"
	"math/big"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsend/config"
	"github.com/zostay/go-mailsend/transport"
)

type received struct {
	from string
	to   []string
	data string
	user string
	tls  bool
}

type backend struct {
	user, pass string
	reject     string

	mu   sync.Mutex
	msgs []received
}

func (b *backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &serverSession{b: b, conn: c}, nil
}

func (b *backend) messages() []received {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]received(nil), b.msgs...)
}

type serverSession struct {
	b    *backend
	conn *smtp.Conn
	cur  received
}

func (s *serverSession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *serverSession) Auth(string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(_, username, password string) error {
		if username != s.b.user || password != s.b.pass {
			return errors.New("invalid credentials")
		}
		s.cur.user = username
		return nil
	}), nil
}

func (s *serverSession) Mail(from string, _ *smtp.MailOptions) error {
	s.cur.from = from
	return nil
}

func (s *serverSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	if to == s.b.reject {
		return &smtp.SMTPError{Code: 550, Message: "no such user"}
	}
	s.cur.to = append(s.cur.to, to)
	return nil
}

func (s *serverSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.cur.data = string(data)
	_, s.cur.tls = s.conn.TLSConnectionState()

	s.b.mu.Lock()
	s.b.msgs = append(s.b.msgs, s.cur)
	s.b.mu.Unlock()
	return nil
}

func (s *serverSession) Reset() {
	user := s.cur.user
	s.cur = received{user: user}
}

func (s *serverSession) Logout() error { return nil }

func startServer(t *testing.T, be *backend) string {
	t.Helper()
	return startTLSServer(t, be, nil)
}

// startTLSServer starts a server that offers STARTTLS when cfg is not nil.
func startTLSServer(t *testing.T, be *backend, cfg *tls.Config) string {
	t.Helper()

	srv := smtp.NewServer(be)
	srv.TLSConfig = cfg
	srv.Domain = "localhost"
	srv.AllowInsecureAuth = true

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
}

// selfSigned returns a server config for 127.0.0.1 and a pool trusting it.
func selfSigned(t *testing.T) (*tls.Config, *x509.CertPool) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	pool := x509.NewCertPool()
	pool.AddCert(cert)

	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
	}, pool
}

const testMessage = "From: a@example.com\r\nTo: b@example.com\r\nSubject: hi\r\n\r\nhello there\r\n"

func TestSMTPDialer_Deliver(t *testing.T) {
	t.Parallel()

	be := &backend{}
	port := startServer(t, be)

	s, err := transport.NewSettings(config.Transport{Host: "127.0.0.1", Port: port})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com", "hidden@example.com"},
	}, strings.NewReader(testMessage))
	require.NoError(t, err)

	msgs := be.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "a@example.com", msgs[0].from)
	assert.Equal(t, []string{"b@example.com", "hidden@example.com"}, msgs[0].to)
	assert.Contains(t, msgs[0].data, "Subject: hi")
	assert.Contains(t, msgs[0].data, "hello there")
	assert.Empty(t, msgs[0].user)
}

func TestSMTPDialer_Auth(t *testing.T) {
	t.Parallel()

	be := &backend{user: "alice", pass: "secret"}
	port := startServer(t, be)

	s, err := transport.NewSettings(config.Transport{
		Host: "127.0.0.1", Port: port, Username: "alice", Password: "secret",
	})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com"},
	}, strings.NewReader(testMessage))
	require.NoError(t, err)

	msgs := be.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice", msgs[0].user)
}

func TestSMTPDialer_AuthRejected(t *testing.T) {
	t.Parallel()

	be := &backend{user: "alice", pass: "secret"}
	port := startServer(t, be)

	s, err := transport.NewSettings(config.Transport{
		Host: "127.0.0.1", Port: port, Username: "alice", Password: "wrong",
	})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com"},
	}, strings.NewReader(testMessage))

	var derr *transport.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, transport.Connecting, derr.State)
	assert.Empty(t, be.messages())
}

func TestSMTPDialer_RecipientRejected(t *testing.T) {
	t.Parallel()

	be := &backend{reject: "nobody@example.com"}
	port := startServer(t, be)

	s, err := transport.NewSettings(config.Transport{Host: "127.0.0.1", Port: port})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com", "nobody@example.com"},
	}, strings.NewReader(testMessage))

	var derr *transport.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, transport.Sending, derr.State)

	var serr *smtp.SMTPError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 550, serr.Code)
	assert.Empty(t, be.messages())
}

func TestSMTPDialer_StartTLSRequired(t *testing.T) {
	t.Parallel()

	port := startServer(t, &backend{})

	s, err := transport.NewSettings(config.Transport{
		Host:            "127.0.0.1",
		Port:            port,
		ExtraProperties: "mail.smtp.starttls.enable=true\nmail.smtp.starttls.required=true",
	})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com"},
	}, strings.NewReader(testMessage))

	assert.ErrorIs(t, err, transport.ErrStartTLSUnsupported)
}

func TestSMTPDialer_Refused(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
	require.NoError(t, l.Close())

	s, err := transport.NewSettings(config.Transport{Host: "127.0.0.1", Port: port})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com"},
	}, strings.NewReader(testMessage))

	var derr *transport.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, transport.Connecting, derr.State)
	assert.Equal(t, transport.Failed, sess.State())
}

func TestSMTPDialer_StartTLS(t *testing.T) {
	t.Parallel()

	srvCfg, pool := selfSigned(t)
	be := &backend{user: "alice", pass: "secret"}
	port := startTLSServer(t, be, srvCfg)

	s, err := transport.NewSettings(config.Transport{
		Host:            "127.0.0.1",
		Port:            port,
		Username:        "alice",
		Password:        "secret",
		ExtraProperties: "mail.smtp.starttls.enable=true\nmail.smtp.starttls.required=true",
	})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{TLSConfig: &tls.Config{RootCAs: pool}})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com"},
	}, strings.NewReader(testMessage))
	require.NoError(t, err)

	msgs := be.messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].tls)
	assert.Equal(t, "alice", msgs[0].user)
	assert.Contains(t, msgs[0].data, "hello there")
}

func TestSMTPDialer_StartTLSUntrusted(t *testing.T) {
	t.Parallel()

	srvCfg, _ := selfSigned(t)
	be := &backend{}
	port := startTLSServer(t, be, srvCfg)

	s, err := transport.NewSettings(config.Transport{
		Host:            "127.0.0.1",
		Port:            port,
		ExtraProperties: "mail.smtp.starttls.enable=true",
	})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com"},
	}, strings.NewReader(testMessage))

	var derr *transport.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, transport.Connecting, derr.State)
	assert.NotErrorIs(t, err, transport.ErrStartTLSUnsupported)
	assert.Empty(t, be.messages())
}

func TestSMTPDialer_StartTLSOptional(t *testing.T) {
	t.Parallel()

	be := &backend{}
	port := startServer(t, be)

	s, err := transport.NewSettings(config.Transport{
		Host:            "127.0.0.1",
		Port:            port,
		ExtraProperties: "mail.smtp.starttls.enable=true",
	})
	require.NoError(t, err)

	sess := transport.NewSession(s, &transport.SMTPDialer{})
	err = sess.Deliver(context.Background(), transport.Envelope{
		From:       "a@example.com",
		Recipients: []string{"b@example.com"},
	}, strings.NewReader(testMessage))
	require.NoError(t, err)

	msgs := be.messages()
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].tls)
}
