package excel

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/triple-tgg/sams-sub001/internal/model"
)

// Excel's 1900 epoch: serial 25569 is 1970-01-01 UTC.
const excelEpochOffset = 25569

const (
	dateLayout      = "2006-01-02"
	displayDate     = "02/01/2006"
	displayDateTime = "02/01/2006 15:04"
)

// sheetNameLayouts are the accepted tab-name date formats, tried in order.
// Day-first layouts come before month-first so ambiguous names resolve as
// DD-MM.
var sheetNameLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01-02-2006",
	"01/02/2006",
	"01.02.2006",
	"02012006",
	"20060102",
}

var textDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
}

// lenientLayouts back up the strict tables for values typed by hand.
var lenientLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006.01.02",
	"02.01.2006",
}

var (
	timeOnlyRe  = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)
	isoPrefixRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{1,2}):(\d{2})`)
)

func padClock(hh, mm string) string {
	h, err := strconv.Atoi(hh)
	if err != nil {
		return hh + ":" + mm
	}
	return fmt.Sprintf("%02d:%s", h, mm)
}

// SerialToTime converts an Excel date serial to UTC time. The serial's
// fractional part is the time of day.
func SerialToTime(serial float64) time.Time {
	secs := math.Round((serial - excelEpochOffset) * 86400)
	return time.Unix(int64(secs), 0).UTC()
}

// ParseSheetNameDate resolves a worksheet tab name to a canonical
// YYYY-MM-DD, or ok=false if the name is not a recognized date.
func ParseSheetNameDate(name string) (string, bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", false
	}
	for _, layout := range sheetNameLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), true
		}
	}
	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), true
		}
	}
	return "", false
}

// FormatDate normalizes a cell to YYYY-MM-DD. Unparseable text comes back
// unchanged so the server can report it against the original value.
func FormatDate(c model.Cell) string {
	switch c.Kind {
	case model.CellEmpty:
		return ""
	case model.CellNumber:
		return SerialToTime(math.Floor(c.Number)).Format(dateLayout)
	default:
		s := strings.TrimSpace(c.Text)
		if s == "" {
			return ""
		}
		for _, layout := range textDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(dateLayout)
			}
		}
		for _, layout := range lenientLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(dateLayout)
			}
		}
		return c.Text
	}
}

// FormatTime normalizes a cell to HH:mm, rounded to the nearest minute.
// A serial >= 1 is a full datetime, only its fractional part is used.
func FormatTime(c model.Cell) string {
	switch c.Kind {
	case model.CellEmpty:
		return ""
	case model.CellNumber:
		frac := c.Number
		if frac >= 1 {
			frac -= math.Floor(frac)
		}
		minutes := int(math.Round(frac*1440)) % 1440
		return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	default:
		s := strings.TrimSpace(c.Text)
		if m := timeOnlyRe.FindStringSubmatch(s); m != nil {
			return padClock(m[1], m[2])
		}
		if m := isoPrefixRe.FindStringSubmatch(s); m != nil {
			return padClock(m[2], m[3])
		}
		return c.Text
	}
}

// FormatDateTime resolves a cell to DD/MM/YYYY HH:mm. The date comes from
// the cell itself when it encodes a full datetime; otherwise dateContext
// (the sheet's inferred YYYY-MM-DD) completes a bare time of day. With a
// time but no date available the bare HH:mm is returned.
func FormatDateTime(c model.Cell, dateContext string) string {
	switch c.Kind {
	case model.CellEmpty:
		return ""
	case model.CellNumber:
		if c.Number >= 1 {
			days := math.Floor(c.Number)
			minutes := int(math.Round((c.Number - days) * 1440))
			if minutes == 1440 {
				days++
				minutes = 0
			}
			t := SerialToTime(days).Add(time.Duration(minutes) * time.Minute)
			return t.Format(displayDateTime)
		}
		return joinDateTime(dateContext, FormatTime(c))
	default:
		s := strings.TrimSpace(c.Text)
		if m := isoPrefixRe.FindStringSubmatch(s); m != nil {
			t, err := time.Parse(dateLayout, m[1])
			if err != nil {
				return c.Text
			}
			return t.Format(displayDate) + " " + padClock(m[2], m[3])
		}
		if m := timeOnlyRe.FindStringSubmatch(s); m != nil {
			return joinDateTime(dateContext, padClock(m[1], m[2]))
		}
		return c.Text
	}
}

func joinDateTime(dateContext, hhmm string) string {
	if hhmm == "" {
		return ""
	}
	if dateContext == "" {
		return hhmm
	}
	t, err := time.Parse(dateLayout, dateContext)
	if err != nil {
		return hhmm
	}
	return t.Format(displayDate) + " " + hhmm
}
