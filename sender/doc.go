// Package sender is the front door for sending mail. A Service holds its
// collaborators (configuration source, assembler, dialer, template builder)
// and every call runs synchronously: validate, assemble, deliver, clean up.
//
//	svc := sender.New(&config.Env{})
//	m := svc.NewMail("me@example.com", "you@example.com", "", "", "Hi")
//	m.AddHTMLContent(`<p>Hello <img src="cid:logo.png"></p>`)
//	m.Attach("logo.png", logo)
//	if res := svc.Send(ctx, m); !res.OK() {
//		log.Print(res.Err)
//	}
//
// Operations never panic and never return bare errors. The outcome is a
// Result.
package sender
