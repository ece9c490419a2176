package scalar

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// sixMonths is the age after which short time display shows the year.
const sixMonths = 6 * 30 * 24 * time.Hour

var errNotNumber = errors.New("not a number")

// Session owns the conversion caches and display settings for one run.
// It is not safe for concurrent use; lsf is single-threaded.
type Session struct {
	now       func() time.Time
	loc       *time.Location
	dir       Directory
	start     time.Time
	longTimes bool

	times  map[string]int64
	sizes  map[string]int64
	users  map[string]int64
	groups map[string]int64

	userNames  map[uint32]string
	groupNames map[uint32]string
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, e.g. for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLocation sets the zone used to parse and display absolute times.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) { s.loc = loc }
}

// WithDirectory replaces the platform user/group database.
func WithDirectory(d Directory) Option {
	return func(s *Session) { s.dir = d }
}

// WithLongTimes forces the "Mon DD YYYY HH:MM" display form.
func WithLongTimes(long bool) Option {
	return func(s *Session) { s.longTimes = long }
}

// NewSession creates a Session. The session start time (read from the
// clock once) anchors the six-month display rule.
func NewSession(opts ...Option) *Session {
	s := &Session{
		now:        time.Now,
		loc:        time.Local,
		dir:        osDirectory{},
		times:      make(map[string]int64),
		sizes:      make(map[string]int64),
		users:      make(map[string]int64),
		groups:     make(map[string]int64),
		userNames:  make(map[uint32]string),
		groupNames: make(map[uint32]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start = s.now()
	return s
}

// SetLongTimes changes the time display form after construction.
func (s *Session) SetLongTimes(long bool) {
	s.longTimes = long
}

// Parse converts text to the canonical integer for kind.
func (s *Session) Parse(kind Kind, text string) (int64, error) {
	switch kind {
	case KindTime:
		return s.parseTime(text)
	case KindSize:
		return s.parseSize(text)
	case KindUser:
		return s.parseIdentity(text, KindUser, s.users, s.dir.LookupUser)
	case KindGroup:
		return s.parseIdentity(text, KindGroup, s.groups, s.dir.LookupGroup)
	}
	return 0, &ParseError{Input: text, Kind: kind}
}

// Normalize returns the operand as an integer of the given kind.
func (s *Session) Normalize(kind Kind, rhs Operand) (int64, error) {
	if !rhs.isText {
		return rhs.n, nil
	}
	return s.Parse(kind, rhs.text)
}

// Compare evaluates v <op> rhs after normalizing rhs for v's kind.
func (s *Session) Compare(v Value, op Op, rhs Operand) (bool, error) {
	n, err := s.Normalize(v.Kind, rhs)
	if err != nil {
		return false, err
	}
	return op.Apply(v.N, n), nil
}

// Format renders v for display.
func (s *Session) Format(v Value) string {
	switch v.Kind {
	case KindTime:
		return s.formatTime(v.N)
	case KindSize:
		return strconv.FormatInt(v.N, 10)
	case KindUser:
		return s.formatIdentity(uint32(v.N), s.userNames, s.dir.UserName)
	case KindGroup:
		return s.formatIdentity(uint32(v.N), s.groupNames, s.dir.GroupName)
	}
	return strconv.FormatInt(v.N, 10)
}

// parseNumber accepts what a user would type as a decimal number.
func parseNumber(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errNotNumber
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	return f, nil
}

// toInt64 truncates f, rejecting values outside the int64 range.
func toInt64(f float64) (int64, bool) {
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
