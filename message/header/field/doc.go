// Package field holds a single header field of an outgoing message along with
// the folding and word encoding applied when the field is rendered.
package field
