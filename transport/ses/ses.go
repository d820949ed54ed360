// Package ses delivers messages through the Amazon SES v2 API as raw MIME. It
// plugs into transport.Session as a Dialer, so the same state machine and
// error reporting apply as with SMTP.
package ses

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/zostay/go-mailsend/transport"
)

// SendEmailAPI is the part of the SES v2 client used here.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Dialer "connects" to SES. Each Dial builds a client from the settings
// unless Client is set.
type Dialer struct {
	// Client replaces the client built from the settings.
	Client SendEmailAPI

	Logger *slog.Logger
}

// Dial loads the AWS configuration. The SMTP username and password, when both
// are set, become static access keys. The region comes from mail.ses.region
// and otherwise from the usual AWS sources.
func (d *Dialer) Dial(ctx context.Context, s *transport.Settings) (transport.Conn, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if d.Client != nil {
		return &conn{client: d.Client, logger: logger}, nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region := s.Region(); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	if s.Auth() {
		id, secret := s.Credentials()
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, secret, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &conn{client: sesv2.NewFromConfig(cfg), logger: logger}, nil
}

type conn struct {
	client SendEmailAPI
	logger *slog.Logger
}

// Send renders the message and submits it. The envelope recipients are passed
// as the destination so that blind copies are delivered.
func (c *conn) Send(ctx context.Context, env transport.Envelope, msg io.WriterTo) error {
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return fmt.Errorf("rendering message: %w", err)
	}

	out, err := c.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(env.From),
		Destination: &types.Destination{
			ToAddresses: env.Recipients,
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: buf.Bytes()},
		},
	})
	if err != nil {
		return fmt.Errorf("SES API request failed: %w", err)
	}

	c.logger.Debug("SES accepted message", "message_id", aws.ToString(out.MessageId))
	return nil
}

// Close does nothing. There is no connection to release.
func (c *conn) Close() error {
	return nil
}
