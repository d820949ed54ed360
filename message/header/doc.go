// Package header builds the header of an outgoing message or message part.
// Header embeds Base, which stores an ordered list of field.Field values and
// renders them with folding and word encoding. Header adds typed accessors for
// the fields that composition cares about: addresses, dates and the
// parameterized MIME fields.
package header
