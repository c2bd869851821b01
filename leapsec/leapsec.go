// Package leapsec resolves the number of leap seconds inserted into UTC
// as of a given time, needed to convert between VRT's UTC-based TSI mode
// and TAI-based internal computations (spec.md §6.3). Grounded on
// original_source/cpp/include/VRTConfig.h's VRT_LEAP_SECONDS /
// VRT_NORAD_LS_COUNTED knobs: the original reads a tai-utc.dat-style
// table from disk once at process start, which this package models as an
// explicit [Table] loaded by the caller rather than a hidden global.
package leapsec

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Entry is one leap-second table row: starting at UTC seconds EffAt
// (seconds since the VRT/NTP epoch, 1970-01-01T00:00:00Z), TAI - UTC
// equals Offset seconds.
type Entry struct {
	EffAt  int64
	Offset int32
}

// Table is an ordered leap-second table, sorted by EffAt ascending.
type Table struct {
	entries []Entry
}

var ErrMalformedLine = errors.New("leapsec: malformed tai-utc.dat line")

// Parse reads a tai-utc.dat-style table: one entry per non-blank,
// non-comment ('#') line, two whitespace-separated integers, UTC epoch
// seconds and TAI-UTC offset.
func Parse(r io.Reader) (*Table, error) {
	var t Table
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, ErrMalformedLine
		}
		eff, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, ErrMalformedLine
		}
		off, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, ErrMalformedLine
		}
		t.entries = append(t.entries, Entry{EffAt: eff, Offset: int32(off)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].EffAt < t.entries[j].EffAt })
	return &t, nil
}

// LeapSeconds returns the TAI-UTC offset in effect at utcSeconds (seconds
// since 1970-01-01T00:00:00Z), or 0 if utcSeconds predates the table's
// first entry.
func (t *Table) LeapSeconds(utcSeconds int64) int32 {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].EffAt > utcSeconds })
	if i == 0 {
		return 0
	}
	return t.entries[i-1].Offset
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }
