// Package idx mints the sortable identifiers used for folders, notes and
// login sessions.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a canonical ULID string.
type ID string

// Zero is the empty ID. Only use it as a placeholder.
const Zero ID = ""

// ErrInvalid reports a malformed ID.
var ErrInvalid = errors.New("idx: invalid id")

// Source hands out monotonic ULIDs. It is safe for concurrent use.
type Source struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewSource returns a Source backed by crypto/rand.
func NewSource() *Source {
	return &Source{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// At returns an ID stamped with t. IDs minted within the same millisecond
// still sort in creation order.
func (s *Source) At(t time.Time) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), s.entropy).String())
}

var (
	defaultOnce   sync.Once
	defaultSource *Source
)

func source() *Source {
	defaultOnce.Do(func() { defaultSource = NewSource() })
	return defaultSource
}

// New returns an ID for the current time.
func New() ID { return source().At(time.Now()) }

// NewAt returns an ID for t, handy in tests.
func NewAt(t time.Time) ID { return source().At(t) }

// Parse validates s and returns it as an ID. Surrounding whitespace is
// ignored; lowercase input is normalised to the canonical uppercase form.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}

	u, err := ulid.ParseStrict(s)
	if err != nil {
		return Zero, ErrInvalid
	}
	return ID(u.String()), nil
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

func (id ID) String() string { return string(id) }

// Time is the creation time embedded in id, or the zero time when id is not
// a valid ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
