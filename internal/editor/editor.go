// Package editor performs position-addressed edits on text documents.
//
// Every mutating operation follows the same sequence: validate the request,
// return a soft failure with diagnostics if the caller's view of the
// document is stale, splice in memory, persist atomically, report. The file
// is either fully replaced or left untouched.
package editor

import (
	"os"
	"strconv"
	"strings"

	"github.com/HendryAvila/docket/internal/faults"
	"github.com/HendryAvila/docket/internal/filestore"
)

const (
	// DefaultMaxSize bounds the documents the editor will load.
	DefaultMaxSize int64 = 10 << 20
	// DefaultPreviewLength is the truncation length for text previews.
	DefaultPreviewLength = 200
	// contextLines is how many lines surround an edit in previews.
	contextLines = 3
)

// Editor edits documents through a filestore.Store.
type Editor struct {
	fs         filestore.Store
	maxSize    int64
	previewLen int
}

// Option configures an Editor.
type Option func(*Editor)

// WithMaxSize overrides the document size guard.
func WithMaxSize(n int64) Option {
	return func(e *Editor) {
		if n > 0 {
			e.maxSize = n
		}
	}
}

// WithPreviewLength overrides the preview truncation length.
func WithPreviewLength(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.previewLen = n
		}
	}
}

// New creates an Editor.
func New(fs filestore.Store, opts ...Option) *Editor {
	e := &Editor{fs: fs, maxSize: DefaultMaxSize, previewLen: DefaultPreviewLength}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// load applies the size guard before reading, so oversized files never
// reach memory.
func (e *Editor) load(path string) (string, error) {
	st, err := e.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", faults.NotFound("document", path, nil)
		}
		return "", faults.Internal(err, "checking %s", path)
	}
	if st.IsDir() {
		return "", faults.InvalidParams("%s is a directory, not a document", path)
	}
	if st.Size() > e.maxSize {
		return "", faults.InvalidParams("document %s is %d bytes, larger than the %d byte limit", path, st.Size(), e.maxSize)
	}

	content, err := e.fs.ReadText(path)
	if err != nil {
		return "", faults.Internal(err, "reading %s", path)
	}
	return content, nil
}

func (e *Editor) persist(path, content string) error {
	if err := e.fs.WriteText(path, content); err != nil {
		return faults.Internal(err, "writing %s", path)
	}
	return nil
}

// --- Positions ---

type positionKind int

const (
	posEnd positionKind = iota
	posStart
	posOffset
)

// Position addresses an insertion point. The zero Position is End.
type Position struct {
	kind   positionKind
	offset int
}

// Start is the beginning of the document.
func Start() Position { return Position{kind: posStart} }

// End is the end of the document.
func End() Position { return Position{kind: posEnd} }

// Offset is a byte offset into the document.
func Offset(n int) Position { return Position{kind: posOffset, offset: n} }

// String renders the position the way callers spell it.
func (p Position) String() string {
	switch p.kind {
	case posStart:
		return "start"
	case posOffset:
		return strconv.Itoa(p.offset)
	default:
		return "end"
	}
}

// ParsePosition accepts nil, "start", "end", a non-negative number or a
// numeric string.
func ParsePosition(raw any) (Position, error) {
	switch v := raw.(type) {
	case nil:
		return End(), nil
	case float64:
		if v < 0 || v != float64(int(v)) {
			return Position{}, faults.InvalidParams("position must be a non-negative integer, got %v", v)
		}
		return Offset(int(v)), nil
	case int:
		if v < 0 {
			return Position{}, faults.InvalidParams("position must be non-negative, got %d", v)
		}
		return Offset(v), nil
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		switch s {
		case "", "end":
			return End(), nil
		case "start":
			return Start(), nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Position{}, faults.InvalidParams("position must be 'start', 'end' or a non-negative offset, got %q", v)
		}
		return Offset(n), nil
	default:
		return Position{}, faults.InvalidParams("unsupported position type %T", raw)
	}
}

// errNotRuneBoundary rejects offsets inside a multi-byte character.
func errNotRuneBoundary(name string, offset int) error {
	return faults.InvalidParams("%s %d falls inside a multi-byte character", name, offset)
}
