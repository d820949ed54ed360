// Package compose turns a mail.Mail into a MIME tree ready for the wire.
//
// The tree always has the same shape. Every content part becomes a leaf of one
// multipart/alternative. An HTML part that refers to attachments with
// src="cid:<filename>" is wrapped with those attachments in a
// multipart/related. Attachments that no HTML part refers to are collected in
// a multipart/mixed group, and when there is such a group the alternative and
// the group are wrapped together in an outer multipart/mixed:
//
//	multipart/mixed
//	  multipart/alternative
//	    text/plain
//	    multipart/related
//	      text/html
//	      image/png (Content-id: <logo.png>)
//	  multipart/mixed
//	    application/pdf
//
// When the mail has a single HTML part, a plain text rendering of it is added
// in front of it so that the alternative has something for text-only readers.
package compose
