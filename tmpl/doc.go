// Package tmpl builds mails from stored templates.
//
// A template is addressed by a reference of the form "Space.Page" and holds
// one variant per language. Each variant has a subject, a plain text body and
// an optional HTML body, all evaluated against the caller's variables plus a
// set of standard ones:
//
//	from.name  from.address  to.name  to.address  to.cc  to.bcc  bounce
//
// The default evaluator is text/template with a var function for these dotted
// names:
//
//	Hello {{var "to.name"}}, your code is {{.code}}.
package tmpl
