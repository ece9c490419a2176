package scalar

import (
	"errors"
	"strings"
	"time"
)

const (
	layoutDate      = "Jan 2 2006"
	layoutDateTime  = "Jan 2 2006 15:04"
	layoutShortTime = "Jan 2 15:04"

	displayOld   = "Jan _2  2006"
	displayShort = "Jan _2 15:04"
	displayLong  = "Jan _2 2006 15:04"
)

var (
	errTimeLayout = errors.New("unrecognized date layout")
	errOutOfRange = errors.New("value out of range")
)

// Relative time units in seconds. Days are the default.
var timeUnits = map[byte]float64{
	'm': 60,
	'h': 60 * 60,
	'd': 24 * 60 * 60,
	'w': 7 * 24 * 60 * 60,
	'y': 365 * 24 * 60 * 60,
}

// parseTime converts "2w" (two weeks before now) or "Jul 22 2012 16:37"
// into a unix timestamp.
func (s *Session) parseTime(text string) (int64, error) {
	if t, ok := s.times[text]; ok {
		return t, nil
	}
	var unix int64
	if rel, err := relativeSeconds(text); err == nil {
		now := s.now().Unix()
		unix = now - rel
		if (rel > 0) != (unix < now) {
			return 0, &ParseError{Input: text, Kind: KindTime}
		}
	} else if errors.Is(err, errOutOfRange) {
		return 0, &ParseError{Input: text, Kind: KindTime}
	} else {
		t, err := s.absoluteTime(text)
		if err != nil {
			return 0, &ParseError{Input: text, Kind: KindTime}
		}
		unix = t.Unix()
	}
	s.times[text] = unix
	return unix, nil
}

func relativeSeconds(text string) (int64, error) {
	if text == "" {
		return 0, errNotNumber
	}
	num, unit := text, timeUnits['d']
	if u, ok := timeUnits[lower(text[len(text)-1])]; ok {
		num, unit = text[:len(text)-1], u
	}
	f, err := parseNumber(num)
	if err != nil {
		return 0, err
	}
	secs, ok := toInt64(f * unit)
	if !ok {
		return 0, errOutOfRange
	}
	return secs, nil
}

func (s *Session) absoluteTime(text string) (time.Time, error) {
	fields := strings.Fields(text)
	joined := strings.Join(fields, " ")
	switch len(fields) {
	case 3:
		if strings.Contains(fields[2], ":") {
			return s.shortTime(joined)
		}
		return time.ParseInLocation(layoutDate, joined, s.loc)
	case 4:
		return time.ParseInLocation(layoutDateTime, joined, s.loc)
	}
	return time.Time{}, errTimeLayout
}

// shortTime reads the yearless display form. The year is the current one
// unless that puts the time more than a day in the future.
func (s *Session) shortTime(text string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutShortTime, text, s.loc)
	if err != nil {
		return time.Time{}, err
	}
	now := s.now().In(s.loc)
	t = time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, s.loc)
	if t.After(now.Add(24 * time.Hour)) {
		t = t.AddDate(-1, 0, 0)
	}
	return t, nil
}

func (s *Session) formatTime(unix int64) string {
	t := time.Unix(unix, 0).In(s.loc)
	switch {
	case s.longTimes:
		return t.Format(displayLong)
	case t.Before(s.start.Add(-sixMonths)):
		return t.Format(displayOld)
	default:
		return t.Format(displayShort)
	}
}
