// Package transfer applies and removes Content-transfer-encoding. Only
// quoted-printable and base64 change the bytes. 7bit, 8bit, binary and a
// missing encoding leave them as they are.
//
// "Encoded" here means the bytes are in the transfer encoding named by the
// header. "Decoded" means they are back in their charset form.
package transfer
