// date_parser.go
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

const (
	// markerNoLaterThan flags "died no later than <date>" phrasing.
	markerNoLaterThan = "不晚于"
	// markerRange joins the two ends of a date range.
	markerRange = "至"

	UnknownMonthBucket = "未知/跨月"
)

var dateExtractPattern = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)

// ExtractDates pulls every YYYY-MM-DD / YYYY/M/D shaped substring out
// of free text. An out-of-range month or day inside a date-shaped
// substring is a data-integrity violation, not messy text, so it is
// returned as an error instead of being skipped.
func ExtractDates(text string) ([]models.ParsedDate, error) {
	matches := dateExtractPattern.FindAllStringSubmatch(text, -1)
	dates := make([]models.ParsedDate, 0, len(matches))
	for _, m := range matches {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 {
			return nil, fmt.Errorf("invalid month %d in date text %q", month, text)
		}
		if day < 1 || day > 31 {
			return nil, fmt.Errorf("invalid day %d in date text %q", day, text)
		}
		dates = append(dates, models.ParsedDate{Year: year, Month: month, Day: day})
	}
	return dates, nil
}

// GetDeathMonthBucket classifies a raw death-date cell into a month
// label ("1月".."12月") or the unknown/cross-month bucket.
//
// "不晚于" texts bucket by the first embedded date; "至" ranges bucket
// only when both ends share year and month (year equality is checked
// deliberately, a 2024-12至2025-01 range is cross-month).
func GetDeathMonthBucket(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return UnknownMonthBucket, nil
	}

	dates, err := ExtractDates(text)
	if err != nil {
		return "", err
	}

	if strings.Contains(text, markerNoLaterThan) {
		if len(dates) >= 1 {
			return monthLabel(dates[0].Month), nil
		}
		return UnknownMonthBucket, nil
	}
	if strings.Contains(text, markerRange) {
		if len(dates) >= 2 && dates[0].Year == dates[1].Year && dates[0].Month == dates[1].Month {
			return monthLabel(dates[0].Month), nil
		}
		return UnknownMonthBucket, nil
	}
	if len(dates) >= 1 {
		return monthLabel(dates[0].Month), nil
	}
	return UnknownMonthBucket, nil
}

func monthLabel(month int) string {
	return fmt.Sprintf("%d月", month)
}

// ParseDeathDate resolves a raw death-date cell to its first embedded
// calendar date, nil when the text carries none. Range and
// no-later-than wording is ignored here, the first date wins.
func ParseDeathDate(text string) (*models.ParsedDate, error) {
	dates, err := ExtractDates(text)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	d := dates[0]
	return &d, nil
}

// IsImpreciseDeathDate reports whether the raw text used range or
// no-later-than phrasing. Imprecise dates are excluded from daily and
// weekly clustering but still count toward the average interval.
func IsImpreciseDeathDate(text string) bool {
	return strings.Contains(text, markerNoLaterThan) || strings.Contains(text, markerRange)
}
