package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/zostay/go-mailsend/mail"
)

// mailFlags are the flags that describe a mail on the command line.
type mailFlags struct {
	from, to, cc, bcc, replyTo, subject string

	text, textFile string
	html, htmlFile string
	calendarFile   string

	attach  []string
	headers []string
}

func (mf *mailFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&mf.from, "from", "", "sender address")
	fs.StringVar(&mf.to, "to", "", "comma separated recipients")
	fs.StringVar(&mf.cc, "cc", "", "comma separated carbon copy recipients")
	fs.StringVar(&mf.bcc, "bcc", "", "comma separated blind carbon copy recipients")
	fs.StringVar(&mf.replyTo, "reply-to", "", "comma separated reply addresses")
	fs.StringVar(&mf.subject, "subject", "", "subject line")
	fs.StringVar(&mf.text, "text", "", "plain text body")
	fs.StringVar(&mf.textFile, "text-file", "", "read the plain text body from a file, - for stdin")
	fs.StringVar(&mf.html, "html", "", "HTML body")
	fs.StringVar(&mf.htmlFile, "html-file", "", "read the HTML body from a file, - for stdin")
	fs.StringVar(&mf.calendarFile, "calendar-file", "", "add a text/calendar part read from a file")
	fs.StringArrayVar(&mf.attach, "attach", nil, "attach a file; HTML can show it with src=\"cid:<file name>\"")
	fs.StringArrayVar(&mf.headers, "header", nil, "add a header field as Name=value")
}

func readBody(inline, path string, stdin io.Reader) (string, error) {
	switch path {
	case "":
		return inline, nil
	case "-":
		b, err := io.ReadAll(stdin)
		return string(b), err
	default:
		b, err := os.ReadFile(path)
		return string(b), err
	}
}

// parsePairs splits Name=value items.
func parsePairs(items []string) (map[string]string, error) {
	out := make(map[string]string, len(items))
	for _, item := range items {
		k, val, ok := strings.Cut(item, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected Name=value, got %q", item)
		}
		out[k] = strings.TrimSpace(val)
	}
	return out, nil
}

func (mf *mailFlags) build(stdin io.Reader) (*mail.Mail, error) {
	m := mail.New(mf.from, mf.to, mf.cc, mf.bcc, mf.subject)
	m.ReplyTo = mf.replyTo

	text, err := readBody(mf.text, mf.textFile, stdin)
	if err != nil {
		return nil, err
	}
	if text != "" {
		m.AddTextContent(text)
	}

	html, err := readBody(mf.html, mf.htmlFile, stdin)
	if err != nil {
		return nil, err
	}
	if html != "" {
		m.AddHTMLContent(html)
	}

	if mf.calendarFile != "" {
		cal, err := os.ReadFile(mf.calendarFile)
		if err != nil {
			return nil, err
		}
		m.AddContent("text/calendar", string(cal))
	}

	for _, path := range mf.attach {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		m.Attach(filepath.Base(path), content)
	}

	headers, err := parsePairs(mf.headers)
	if err != nil {
		return nil, err
	}
	for k, val := range headers {
		m.SetHeader(k, val)
	}

	return m, nil
}
