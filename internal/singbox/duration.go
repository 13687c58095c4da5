// Package singbox models the subset of the sing-box configuration schema
// this tool emits: the four inbound kinds, their listen and TLS blocks, and
// the value types they carry. Field names match the sing-box JSON schema.
package singbox

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Millisecond counts per unit of the duration grammar.
const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// Duration is a sing-box duration: a non-negative compound value written as
// number+unit pairs, e.g. "1h30m", "500ms", "2m 30s". Units are h, m, s and
// ms. A parsed Duration remembers its source text and serializes it back
// verbatim; a programmatically built Duration formats with the largest unit
// that divides it exactly.
type Duration struct {
	millis uint64
	raw    string
}

// DurationErrorKind classifies a Duration parse failure.
type DurationErrorKind int

const (
	// DurationErrEmpty means the input was empty or only whitespace.
	DurationErrEmpty DurationErrorKind = iota
	// DurationErrInvalidNumber means a numeric component could not be read.
	DurationErrInvalidNumber
	// DurationErrInvalidUnit means an unknown unit character was found.
	DurationErrInvalidUnit
	// DurationErrInvalidFormat means the pair structure was broken, e.g. a
	// unit without a number or a trailing bare number.
	DurationErrInvalidFormat
	// DurationErrOverflow means the total exceeds the representable range.
	DurationErrOverflow
)

func (k DurationErrorKind) String() string {
	switch k {
	case DurationErrEmpty:
		return "empty duration"
	case DurationErrInvalidNumber:
		return "invalid number"
	case DurationErrInvalidUnit:
		return "invalid unit"
	case DurationErrInvalidFormat:
		return "invalid format"
	case DurationErrOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// DurationError reports why a duration string failed to parse.
type DurationError struct {
	Kind  DurationErrorKind
	Input string
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("parse duration %q: %s", e.Input, e.Kind)
}

// DurationFromMillis builds a Duration from a millisecond count.
func DurationFromMillis(ms uint64) Duration { return Duration{millis: ms} }

// DurationFromSeconds builds a Duration from a second count.
func DurationFromSeconds(s uint64) Duration { return Duration{millis: s * msPerSecond} }

// DurationFromMinutes builds a Duration from a minute count.
func DurationFromMinutes(m uint64) Duration { return Duration{millis: m * msPerMinute} }

// DurationFromHours builds a Duration from an hour count.
func DurationFromHours(h uint64) Duration { return Duration{millis: h * msPerHour} }

// ParseDuration parses the compound duration grammar. Whitespace between
// pairs and between a number and its unit is ignored. The "ms" unit is
// recognized by look-ahead: an 'm' immediately followed by 's' means
// milliseconds, otherwise minutes.
func ParseDuration(s string) (Duration, error) {
	body := strings.TrimSpace(s)
	if body == "" {
		return Duration{}, &DurationError{Kind: DurationErrEmpty, Input: s}
	}

	var total uint64
	i := 0
	for i < len(body) {
		c := body[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		if c < '0' || c > '9' {
			if isUnitChar(c) {
				return Duration{}, &DurationError{Kind: DurationErrInvalidFormat, Input: s}
			}
			return Duration{}, &DurationError{Kind: DurationErrInvalidNumber, Input: s}
		}

		var n uint64
		for i < len(body) && body[i] >= '0' && body[i] <= '9' {
			d := uint64(body[i] - '0')
			if n > (math.MaxUint64-d)/10 {
				return Duration{}, &DurationError{Kind: DurationErrOverflow, Input: s}
			}
			n = n*10 + d
			i++
		}
		for i < len(body) && (body[i] == ' ' || body[i] == '\t') {
			i++
		}
		if i >= len(body) {
			return Duration{}, &DurationError{Kind: DurationErrInvalidFormat, Input: s}
		}

		var unit uint64
		switch body[i] {
		case 'h':
			unit = msPerHour
			i++
		case 's':
			unit = msPerSecond
			i++
		case 'm':
			i++
			if i < len(body) && body[i] == 's' {
				unit = 1
				i++
			} else {
				unit = msPerMinute
			}
		default:
			return Duration{}, &DurationError{Kind: DurationErrInvalidUnit, Input: s}
		}

		if n != 0 && unit > math.MaxUint64/n {
			return Duration{}, &DurationError{Kind: DurationErrOverflow, Input: s}
		}
		add := n * unit
		if total > math.MaxUint64-add {
			return Duration{}, &DurationError{Kind: DurationErrOverflow, Input: s}
		}
		total += add
	}

	return Duration{millis: total, raw: s}, nil
}

func isUnitChar(c byte) bool { return c == 'h' || c == 'm' || c == 's' }

// Millis returns the value in milliseconds.
func (d Duration) Millis() uint64 { return d.millis }

// Seconds returns the whole seconds of the value, truncating.
func (d Duration) Seconds() uint64 { return d.millis / msPerSecond }

// Minutes returns the whole minutes of the value, truncating.
func (d Duration) Minutes() uint64 { return d.millis / msPerMinute }

// Hours returns the whole hours of the value, truncating.
func (d Duration) Hours() uint64 { return d.millis / msPerHour }

// IsZero reports whether the duration is zero.
func (d Duration) IsZero() bool { return d.millis == 0 }

// Std converts to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.millis) * time.Millisecond
}

// String renders the duration. A value obtained from ParseDuration returns
// its original text; otherwise the largest exactly-dividing unit is used and
// zero renders as "0s".
func (d Duration) String() string {
	if d.raw != "" {
		return d.raw
	}
	switch {
	case d.millis == 0:
		return "0s"
	case d.millis%msPerHour == 0:
		return fmt.Sprintf("%dh", d.millis/msPerHour)
	case d.millis%msPerMinute == 0:
		return fmt.Sprintf("%dm", d.millis/msPerMinute)
	case d.millis%msPerSecond == 0:
		return fmt.Sprintf("%ds", d.millis/msPerSecond)
	default:
		return fmt.Sprintf("%dms", d.millis)
	}
}

// MarshalJSON writes the duration as its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a duration from its string form.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
