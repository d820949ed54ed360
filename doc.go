// Package mailsend composes and sends mail.
//
// The work is split by stage. A mail.Mail holds what the caller wants to send:
// addresses as typed, a subject, one or more content parts, attachments and
// extra header fields. The compose package turns it into a MIME tree built
// from message.Opaque leaves and message.Multipart branches, nesting related
// images next to the HTML that shows them and collecting the remaining
// attachments in a mixed group. The transport package delivers the tree over
// SMTP or through Amazon SES, one connection per message, tracking each
// delivery through a small state machine.
//
// Most programs only need the sender package, which ties these together:
//
//	svc := sender.New(&config.Env{})
//	m := svc.NewMail("me@example.com", "you@example.com", "", "", "Hello")
//	m.AddTextContent("Hi there.")
//	res := svc.Send(ctx, m)
//
// Templates (package tmpl) and calendar invitations (package calendar) are
// built on top of the same path. The tools/mailsend command exposes all of it
// on the command line.
//
// The message, message/header and message/transfer packages are a general
// toolkit for writing MIME messages. Headers are folded and, where needed,
// encoded as RFC 2047 words. Bodies are written with the transfer encoding
// their header names. Everything is streamed, so a large attachment is
// never held twice in memory.
package mailsend
