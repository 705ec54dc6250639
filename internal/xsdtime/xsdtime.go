// Package xsdtime implements the fixed-width wire encodings for the XSD
// temporal datatypes, plus their lexical parse/format. All eight
// point-in-time kinds (dateTime, time, date, gYearMonth, gYear,
// gMonthDay, gDay, gMonth) share one 18-byte layout; only the fields
// meaningful to a given kind are read, written, or printed.
package xsdtime

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Size is the wire width of a Value in bytes.
const Size = 18

// ErrCorrupt is returned by FromBytes on a short buffer.
var ErrCorrupt = errors.New("xsdtime: corrupt 18-byte buffer")

// ErrInvalidLexical is returned by the Parse* functions on malformed input.
var ErrInvalidLexical = errors.New("xsdtime: invalid lexical form")

// Value is the shared fixed-width layout backing every temporal kind.
// Fields not meaningful to a given kind are left zero.
type Value struct {
	Year       int32
	Month      uint8
	Day        uint8
	Hour       uint8
	Minute     uint8
	Second     uint8
	Nanosecond uint32
	TZOffset   int16 // minutes east of UTC, meaningful only if HasTZ
	HasTZ      bool
}

// Bytes encodes v into its 18-byte wire form:
// year(4) month(1) day(1) hour(1) minute(1) second(1) nanosecond(4)
// tz_offset_minutes(2) has_tz(1) reserved(2).
func (v Value) Bytes() [Size]byte {
	var b [Size]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(v.Year))
	b[4] = v.Month
	b[5] = v.Day
	b[6] = v.Hour
	b[7] = v.Minute
	b[8] = v.Second
	binary.BigEndian.PutUint32(b[9:13], v.Nanosecond)
	binary.BigEndian.PutUint16(b[13:15], uint16(v.TZOffset))
	if v.HasTZ {
		b[15] = 1
	}
	return b
}

// FromBytes decodes an 18-byte wire form into a Value.
func FromBytes(b []byte) (Value, error) {
	if len(b) != Size {
		return Value{}, ErrCorrupt
	}
	return Value{
		Year:       int32(binary.BigEndian.Uint32(b[0:4])),
		Month:      b[4],
		Day:        b[5],
		Hour:       b[6],
		Minute:     b[7],
		Second:     b[8],
		Nanosecond: binary.BigEndian.Uint32(b[9:13]),
		TZOffset:   int16(binary.BigEndian.Uint16(b[13:15])),
		HasTZ:      b[15] != 0,
	}, nil
}

func formatTZ(v Value) string {
	if !v.HasTZ {
		return ""
	}
	if v.TZOffset == 0 {
		return "Z"
	}
	sign := "+"
	off := v.TZOffset
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s%02d:%02d", sign, off/60, off%60)
}

func parseTZ(s string) (rest string, offset int16, hasTZ bool, err error) {
	switch {
	case strings.HasSuffix(s, "Z"):
		return s[:len(s)-1], 0, true, nil
	case len(s) >= 6 && (s[len(s)-6] == '+' || s[len(s)-6] == '-'):
		sign := s[len(s)-6]
		var h, m int
		if _, err := fmt.Sscanf(s[len(s)-5:], "%2d:%2d", &h, &m); err != nil {
			return s, 0, false, ErrInvalidLexical
		}
		off := int16(h*60 + m)
		if sign == '-' {
			off = -off
		}
		return s[:len(s)-6], off, true, nil
	default:
		return s, 0, false, nil
	}
}

func formatSecond(v Value) string {
	if v.Nanosecond == 0 {
		return fmt.Sprintf("%02d", v.Second)
	}
	frac := fmt.Sprintf("%09d", v.Nanosecond)
	frac = strings.TrimRight(frac, "0")
	return fmt.Sprintf("%02d.%s", v.Second, frac)
}

// DateTime formats/parses xsd:dateTime ("2024-01-02T15:04:05.123Z").
type DateTime struct{ Value }

func ParseDateTime(lexical string) (DateTime, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return DateTime{}, err
	}
	parts := strings.SplitN(body, "T", 2)
	if len(parts) != 2 {
		return DateTime{}, ErrInvalidLexical
	}
	var year, month, day, hour, minute int
	var second float64
	if _, err := fmt.Sscanf(parts[0], "%d-%d-%d", &year, &month, &day); err != nil {
		return DateTime{}, ErrInvalidLexical
	}
	if _, err := fmt.Sscanf(parts[1], "%d:%d:%f", &hour, &minute, &second); err != nil {
		return DateTime{}, ErrInvalidLexical
	}
	sec := int(second)
	nsec := uint32(math.Round((second - float64(sec)) * 1e9))
	return DateTime{Value{
		Year: int32(year), Month: uint8(month), Day: uint8(day),
		Hour: uint8(hour), Minute: uint8(minute), Second: uint8(sec),
		Nanosecond: nsec, TZOffset: offset, HasTZ: hasTZ,
	}}, nil
}

func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%s%s",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, formatSecond(d.Value), formatTZ(d.Value))
}

// Time formats/parses xsd:time ("15:04:05Z").
type Time struct{ Value }

func ParseTime(lexical string) (Time, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return Time{}, err
	}
	var hour, minute int
	var second float64
	if _, err := fmt.Sscanf(body, "%d:%d:%f", &hour, &minute, &second); err != nil {
		return Time{}, ErrInvalidLexical
	}
	sec := int(second)
	nsec := uint32(math.Round((second - float64(sec)) * 1e9))
	return Time{Value{
		Hour: uint8(hour), Minute: uint8(minute), Second: uint8(sec),
		Nanosecond: nsec, TZOffset: offset, HasTZ: hasTZ,
	}}, nil
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%s%s", t.Hour, t.Minute, formatSecond(t.Value), formatTZ(t.Value))
}

// Date formats/parses xsd:date ("2024-01-02Z").
type Date struct{ Value }

func ParseDate(lexical string) (Date, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return Date{}, err
	}
	var year, month, day int
	if _, err := fmt.Sscanf(body, "%d-%d-%d", &year, &month, &day); err != nil {
		return Date{}, ErrInvalidLexical
	}
	return Date{Value{Year: int32(year), Month: uint8(month), Day: uint8(day), TZOffset: offset, HasTZ: hasTZ}}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d%s", d.Year, d.Month, d.Day, formatTZ(d.Value))
}

// GYearMonth formats/parses xsd:gYearMonth ("2024-01Z").
type GYearMonth struct{ Value }

func ParseGYearMonth(lexical string) (GYearMonth, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return GYearMonth{}, err
	}
	var year, month int
	if _, err := fmt.Sscanf(body, "%d-%d", &year, &month); err != nil {
		return GYearMonth{}, ErrInvalidLexical
	}
	return GYearMonth{Value{Year: int32(year), Month: uint8(month), TZOffset: offset, HasTZ: hasTZ}}, nil
}

func (g GYearMonth) String() string {
	return fmt.Sprintf("%04d-%02d%s", g.Year, g.Month, formatTZ(g.Value))
}

// GYear formats/parses xsd:gYear ("2024Z").
type GYear struct{ Value }

func ParseGYear(lexical string) (GYear, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return GYear{}, err
	}
	var year int
	if _, err := fmt.Sscanf(body, "%d", &year); err != nil {
		return GYear{}, ErrInvalidLexical
	}
	return GYear{Value{Year: int32(year), TZOffset: offset, HasTZ: hasTZ}}, nil
}

func (g GYear) String() string {
	return fmt.Sprintf("%04d%s", g.Year, formatTZ(g.Value))
}

// GMonthDay formats/parses xsd:gMonthDay ("--01-02Z").
type GMonthDay struct{ Value }

func ParseGMonthDay(lexical string) (GMonthDay, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return GMonthDay{}, err
	}
	var month, day int
	if _, err := fmt.Sscanf(body, "--%d-%d", &month, &day); err != nil {
		return GMonthDay{}, ErrInvalidLexical
	}
	return GMonthDay{Value{Month: uint8(month), Day: uint8(day), TZOffset: offset, HasTZ: hasTZ}}, nil
}

func (g GMonthDay) String() string {
	return fmt.Sprintf("--%02d-%02d%s", g.Month, g.Day, formatTZ(g.Value))
}

// GDay formats/parses xsd:gDay ("---02Z").
type GDay struct{ Value }

func ParseGDay(lexical string) (GDay, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return GDay{}, err
	}
	var day int
	if _, err := fmt.Sscanf(body, "---%d", &day); err != nil {
		return GDay{}, ErrInvalidLexical
	}
	return GDay{Value{Day: uint8(day), TZOffset: offset, HasTZ: hasTZ}}, nil
}

func (g GDay) String() string {
	return fmt.Sprintf("---%02d%s", g.Day, formatTZ(g.Value))
}

// GMonth formats/parses xsd:gMonth ("--01Z").
type GMonth struct{ Value }

func ParseGMonth(lexical string) (GMonth, error) {
	body, offset, hasTZ, err := parseTZ(lexical)
	if err != nil {
		return GMonth{}, err
	}
	var month int
	if _, err := fmt.Sscanf(body, "--%d", &month); err != nil {
		return GMonth{}, ErrInvalidLexical
	}
	return GMonth{Value{Month: uint8(month), TZOffset: offset, HasTZ: hasTZ}}, nil
}

func (g GMonth) String() string {
	return fmt.Sprintf("--%02d%s", g.Month, formatTZ(g.Value))
}
