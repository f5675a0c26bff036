// Package utfconv converts text between the three Unicode encoding forms,
// UTF-8, UTF-16 and UTF-32.
//
// Each form is served by a stateless codec (UTF8, UTF16, UTF32) that can
// decode and encode single code points, validate a unit sequence, convert
// to the other forms, and move units to and from byte streams in a given
// byte order. Strict decoders never fail: an ill-formed sequence decodes to
// ReplacementCharacter and the decoder always makes progress. Lenient
// decoders skip validation and must only be given input that is already
// known to be well-formed.
//
// Detect inspects the byte order mark at the start of a stream, and
// ReadFile / WriteFile combine detection, stream I/O and conversion.
package utfconv

const Version = "v0.1.0"
