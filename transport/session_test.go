package transport_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsend/config"
	"github.com/zostay/go-mailsend/transport"
)

type mockConn struct {
	mock.Mock
}

func (m *mockConn) Send(ctx context.Context, env transport.Envelope, msg io.WriterTo) error {
	return m.Called(ctx, env, msg).Error(0)
}

func (m *mockConn) Close() error {
	return m.Called().Error(0)
}

func dialerFor(conn transport.Conn, err error) transport.Dialer {
	return transport.DialerFunc(func(context.Context, *transport.Settings) (transport.Conn, error) {
		if err != nil {
			return nil, err
		}
		return conn, nil
	})
}

func settings(t *testing.T, extra string) *transport.Settings {
	t.Helper()

	s, err := transport.NewSettings(config.Transport{Host: "localhost", Port: "25", ExtraProperties: extra})
	require.NoError(t, err)
	return s
}

func TestSession_Deliver(t *testing.T) {
	t.Parallel()

	env := transport.Envelope{From: "a@example.com", Recipients: []string{"b@example.com"}}
	msg := strings.NewReader("Subject: hi\r\n\r\nhello\r\n")

	conn := &mockConn{}
	conn.On("Send", mock.Anything, env, msg).Return(nil)
	conn.On("Close").Return(nil)

	s := transport.NewSession(settings(t, ""), dialerFor(conn, nil))
	require.NoError(t, s.Deliver(context.Background(), env, msg))

	assert.Equal(t, transport.Closed, s.State())
	assert.Equal(t, []transport.State{
		transport.Idle, transport.Connecting, transport.Connected, transport.Sending, transport.Closed,
	}, s.History())
	conn.AssertExpectations(t)

	err := s.Deliver(context.Background(), env, msg)
	assert.ErrorIs(t, err, transport.ErrSessionUsed)
}

func TestSession_EnvelopeFromOverride(t *testing.T) {
	t.Parallel()

	want := transport.Envelope{From: "bounce@example.com", Recipients: []string{"b@example.com"}}

	conn := &mockConn{}
	conn.On("Send", mock.Anything, want, mock.Anything).Return(nil)
	conn.On("Close").Return(nil)

	s := transport.NewSession(settings(t, "mail.smtp.from=bounce@example.com"), dialerFor(conn, nil))
	err := s.Deliver(context.Background(),
		transport.Envelope{From: "a@example.com", Recipients: []string{"b@example.com"}},
		strings.NewReader(""))
	require.NoError(t, err)
	conn.AssertExpectations(t)
}

func TestSession_DialFailure(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")
	s := transport.NewSession(settings(t, ""), dialerFor(nil, refused))

	err := s.Deliver(context.Background(),
		transport.Envelope{From: "a@example.com", Recipients: []string{"b@example.com"}},
		strings.NewReader(""))

	var derr *transport.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, transport.Connecting, derr.State)
	assert.ErrorIs(t, err, refused)
	assert.Equal(t, []transport.State{transport.Idle, transport.Connecting, transport.Failed}, s.History())
}

func TestSession_SendFailureStillCloses(t *testing.T) {
	t.Parallel()

	rejected := errors.New("550 no such user")

	conn := &mockConn{}
	conn.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(rejected)
	conn.On("Close").Return(errors.New("broken pipe"))

	s := transport.NewSession(settings(t, ""), dialerFor(conn, nil))
	err := s.Deliver(context.Background(),
		transport.Envelope{From: "a@example.com", Recipients: []string{"b@example.com"}},
		strings.NewReader(""))

	var derr *transport.DeliveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, transport.Sending, derr.State)
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, transport.Failed, s.State())
	conn.AssertCalled(t, "Close")
}

func TestSession_CloseFailureAfterSuccess(t *testing.T) {
	t.Parallel()

	conn := &mockConn{}
	conn.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	conn.On("Close").Return(errors.New("broken pipe"))

	s := transport.NewSession(settings(t, ""), dialerFor(conn, nil))
	err := s.Deliver(context.Background(),
		transport.Envelope{From: "a@example.com", Recipients: []string{"b@example.com"}},
		strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, transport.Closed, s.State())
}

func TestSession_NoRecipients(t *testing.T) {
	t.Parallel()

	dialed := false
	d := transport.DialerFunc(func(context.Context, *transport.Settings) (transport.Conn, error) {
		dialed = true
		return nil, nil
	})

	s := transport.NewSession(settings(t, ""), d)
	err := s.Deliver(context.Background(), transport.Envelope{From: "a@example.com"}, strings.NewReader(""))

	assert.ErrorIs(t, err, transport.ErrNoRecipients)
	assert.False(t, dialed)
}
