// time_stats.go
package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

const dayFormat = "2006-01-02"

// ComputeTimeStats derives clustering, gap and interval statistics
// over the year's death dates. Precise dates feed the daily/weekly
// clustering and the longest gap; imprecise dates (range or
// no-later-than wording) only widen the distinct-date set backing the
// average interval.
func ComputeTimeStats(rows []models.Row, year int, cfg *TableConfig) (models.TimeStats, error) {
	dateColumn, err := cfg.ResolveField(year, FieldDeathDate)
	if err != nil {
		return models.TimeStats{}, err
	}
	nameColumn, err := cfg.ResolveField(year, FieldName)
	if err != nil {
		return models.TimeStats{}, err
	}
	if err := requireColumn(rows, dateColumn); err != nil {
		return models.TimeStats{}, err
	}
	if err := requireColumn(rows, nameColumn); err != nil {
		return models.TimeStats{}, err
	}

	allDates := map[string]bool{}
	namesByDay := map[string][]string{}
	namesByWeek := map[string][]string{}
	seenInWeek := map[string]bool{}

	for i, row := range rows {
		raw := row[dateColumn]
		date, err := ParseDeathDate(raw)
		if err != nil {
			return models.TimeStats{}, fmt.Errorf("row %d: %v", i, err)
		}
		if date == nil {
			continue
		}
		day := time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, time.UTC)
		dayKey := day.Format(dayFormat)
		allDates[dayKey] = true

		if IsImpreciseDeathDate(raw) {
			continue
		}
		name := row[nameColumn]
		namesByDay[dayKey] = append(namesByDay[dayKey], name)

		weekKey := weekStart(day).Format(dayFormat)
		if !seenInWeek[weekKey+"|"+name] {
			seenInWeek[weekKey+"|"+name] = true
			namesByWeek[weekKey] = append(namesByWeek[weekKey], name)
		}
	}

	stats := models.TimeStats{}
	if len(allDates) > 0 {
		avg := float64(daysInYear(year)) / float64(len(allDates))
		stats.AvgInterval = &avg
	}
	if len(namesByDay) == 0 {
		return stats, nil
	}

	stats.MaxDeathsInOneDay = maxDayClusters(namesByDay)
	stats.MaxDeathsInOneWeek = maxWeekClusters(namesByWeek)
	stats.LongestGap = longestGap(namesByDay)
	return stats, nil
}

// weekStart returns the most recent Monday on or before the date;
// Sunday closes the previous week.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func daysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// maxDayClusters reports every date tied at the maximum same-day
// death count, in chronological order.
func maxDayClusters(namesByDay map[string][]string) *models.MaxDeathsDay {
	max := 0
	for _, names := range namesByDay {
		if len(names) > max {
			max = len(names)
		}
	}
	result := &models.MaxDeathsDay{Count: max}
	for _, day := range sortedKeys(namesByDay) {
		if len(namesByDay[day]) == max {
			result.Dates = append(result.Dates, models.DateCluster{Date: day, Names: namesByDay[day]})
		}
	}
	return result
}

func maxWeekClusters(namesByWeek map[string][]string) *models.MaxDeathsWeek {
	max := 0
	for _, names := range namesByWeek {
		if len(names) > max {
			max = len(names)
		}
	}
	result := &models.MaxDeathsWeek{Count: max}
	for _, week := range sortedKeys(namesByWeek) {
		if len(namesByWeek[week]) != max {
			continue
		}
		start, _ := time.Parse(dayFormat, week)
		weekRange := week + markerRange + start.AddDate(0, 0, 6).Format(dayFormat)
		result.Weeks = append(result.Weeks, models.WeekCluster{WeekRange: weekRange, Names: namesByWeek[week]})
	}
	return result
}

// longestGap finds the widest run of empty days strictly between two
// adjacent precise death dates. Ties keep the first pair in
// chronological scan order; no positive gap yields nil.
func longestGap(namesByDay map[string][]string) *models.LongestGap {
	days := sortedKeys(namesByDay)
	if len(days) < 2 {
		return nil
	}

	var best *models.LongestGap
	for i := 0; i+1 < len(days); i++ {
		current, _ := time.Parse(dayFormat, days[i])
		next, _ := time.Parse(dayFormat, days[i+1])
		gap := int(next.Sub(current).Hours()/24) - 1
		if gap > 0 && (best == nil || gap > best.Days) {
			best = &models.LongestGap{Days: gap, Start: days[i], End: days[i+1]}
		}
	}
	return best
}
