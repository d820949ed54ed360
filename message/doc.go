// Package message models an outgoing MIME message as a tree of parts. An
// *Opaque is a leaf holding a header and a decoded body. A *Multipart is a
// branch holding a header and sub-parts. Writing a tree with WriteTo produces
// the wire form: headers folded and encoded, bodies transfer encoded, and parts
// separated by their boundaries.
//
// Trees are usually built with a Buffer:
//
//	leaf := &message.Buffer{}
//	leaf.SetMediaType("text/plain")
//	leaf.SetTransferEncoding(transfer.QuotedPrintable)
//	_, _ = fmt.Fprint(leaf, "Hello World!")
//	txt, _ := leaf.Opaque()
//
//	msg := message.MultipartAlternative(txt)
//	_, _ = msg.WriteTo(os.Stdout)
package message
