package crash

import (
	"encoding/hex"
	"io"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/ardnew/emberhal/pkg"
)

// ChunkSize is the reference chunk width emit reads from the
// underlying store per iteration.
const ChunkSize = 128

// HexLineWidth is the reference number of hex characters per emitted
// line (64 hex chars = 32 source bytes).
const HexLineWidth = 64

const (
	beginMarker = "#CD:BEGIN#"
	endMarker   = "#CD:END#"
	linePrefix  = "#CD:"
)

// Store is the external coredump store's "copy command" surface: a
// byte-oriented reader over the stored dump, plus presence/clear
// operations. The design is write-only from the core's perspective —
// Store never writes a dump, only core-side consumers (has-stored-
// dump, clear, emit) read and erase it.
type Store interface {
	HasDump() (bool, error)
	Clear() error
	// Open returns a reader over the stored dump. Callers must Close it.
	Open() (io.ReadCloser, error)
}

// Logger is the narrow sink emit writes framed hex lines to: any
// func(line string), e.g. a closure over pkg.LogInfo or an io.Writer.
type Logger func(line string)

// Recorder wraps a Store with an optional timestamp format applied to
// the begin marker, expressed with strftime syntax (e.g. "%Y-%m-%d
// %H:%M:%S") and rendered by github.com/lestrrat-go/strftime.
type Recorder struct {
	store        Store
	timestampFmt string
}

// New creates a Recorder. timestampFormat may be empty to omit the
// timestamp comment entirely; otherwise it is validated immediately
// by formatting the current time once.
func New(store Store, timestampFormat string) (*Recorder, error) {
	if timestampFormat != "" {
		if _, err := strftime.Format(timestampFormat, time.Now()); err != nil {
			return nil, err
		}
	}
	return &Recorder{store: store, timestampFmt: timestampFormat}, nil
}

// HasStoredDump reports whether the external store currently holds a
// coredump.
func (r *Recorder) HasStoredDump() (bool, pkg.Status) {
	ok, err := r.store.HasDump()
	if err != nil {
		return false, pkg.StatusError
	}
	return ok, pkg.StatusOK
}

// Clear erases the stored dump.
func (r *Recorder) Clear() pkg.Status {
	if err := r.store.Clear(); err != nil {
		return pkg.StatusError
	}
	return pkg.StatusOK
}

// Emit reads the stored dump in ChunkSize chunks and writes
// #CD:-framed hex lines of up to HexLineWidth hex characters each to
// log, bounded by begin/end markers. Chunk boundaries are purely for
// read convenience and carry no semantic meaning in the output.
func (r *Recorder) Emit(log Logger) pkg.Status {
	reader, err := r.store.Open()
	if err != nil {
		return pkg.StatusError
	}
	defer reader.Close()

	if r.timestampFmt != "" {
		stamp, err := strftime.Format(r.timestampFmt, time.Now())
		if err != nil {
			log(beginMarker)
		} else {
			log(beginMarker + " " + stamp)
		}
	} else {
		log(beginMarker)
	}

	buf := make([]byte, ChunkSize)
	var pending []byte
	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			pending = append(pending, encodeHex(buf[:n])...)
			pending = flushLines(pending, log)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log(endMarker)
			return pkg.StatusError
		}
	}
	if len(pending) > 0 {
		log(linePrefix + string(pending))
	}
	log(endMarker)
	return pkg.StatusOK
}

func encodeHex(b []byte) []byte {
	dst := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(dst, b)
	return dst
}

// flushLines emits every complete HexLineWidth-character line in
// pending, returning the unconsumed remainder.
func flushLines(pending []byte, log Logger) []byte {
	for len(pending) >= HexLineWidth {
		log(linePrefix + string(pending[:HexLineWidth]))
		pending = pending[HexLineWidth:]
	}
	return pending
}
