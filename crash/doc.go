// Package crash implements the crash-capture contract: a write-only
// surface over an external coredump store, exposing has-stored-dump,
// clear, and emit to a shell/debug log. emit chunks the stored dump
// and hex-encodes each chunk into #CD:-framed ASCII lines, optionally
// stamped with a strftime-formatted timestamp comment via
// github.com/lestrrat-go/strftime.
package crash
