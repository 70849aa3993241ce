// column_sorter.go
package main

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

// sortableRow decorates a row with its original position and the
// comparable value derived for the sorted column. A nil value marks
// the row unparseable for that column.
type sortableRow struct {
	index int
	row   models.Row
	value *float64
}

// SortRows returns a stably sorted copy of rows. A nil or incomplete
// directive, or a column with no configured type for the year, yields
// a shallow copy in original order. Unparseable rows always trail the
// parseable ones, keeping their original relative order, regardless
// of direction.
//
// Money columns read the rate table live at call time; the caller
// re-sorts after a rate refresh.
func SortRows(rows []models.Row, year int, directive *models.SortDirective, cfg *TableConfig, rates RateTable) []models.Row {
	sorted := make([]models.Row, len(rows))
	copy(sorted, rows)

	if directive == nil || directive.Key == "" || directive.Direction == "" {
		return sorted
	}
	colType, ok := cfg.ColumnType(year, directive.Key)
	if !ok {
		return sorted
	}

	decorated := make([]sortableRow, len(rows))
	for i, row := range rows {
		decorated[i] = sortableRow{
			index: i,
			row:   row,
			value: comparableValue(row[directive.Key], colType, directive.Metric, rates),
		}
	}

	desc := directive.Direction == models.SortDesc
	sort.SliceStable(decorated, func(i, j int) bool {
		a, b := decorated[i], decorated[j]
		aOk := a.value != nil && !math.IsNaN(*a.value) && !math.IsInf(*a.value, 0)
		bOk := b.value != nil && !math.IsNaN(*b.value) && !math.IsInf(*b.value, 0)
		if aOk != bOk {
			return aOk
		}
		if !aOk {
			return a.index < b.index
		}
		if *a.value != *b.value {
			if desc {
				return *a.value > *b.value
			}
			return *a.value < *b.value
		}
		return a.index < b.index
	})

	for i, d := range decorated {
		sorted[i] = d.row
	}
	return sorted
}

func comparableValue(text string, colType models.ColumnType, metric string, rates RateTable) *float64 {
	switch colType {
	case models.ColumnDate:
		return dateValue(text)
	case models.ColumnFlexDate:
		return flexDateValue(text)
	case models.ColumnAge:
		if age := ParseAge(text); age != nil {
			return floatPtr(float64(*age))
		}
	case models.ColumnNumber:
		cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return floatPtr(v)
		}
	case models.ColumnMoney:
		if money := ParseMoney(text); money != nil {
			if rate, ok := rates[money.Currency]; ok {
				return floatPtr(money.Magnitude * rate)
			}
		}
	case models.ColumnRecord:
		if !IsRecordMetric(metric) {
			return nil
		}
		return RecordMetric(ParseRecord(text), metric)
	}
	return nil
}

var strictDateLayouts = []string{"2006-01-02", "2006-1-2", "2006/01/02", "2006/1/2"}

// dateValue handles cells that are exactly one date.
func dateValue(text string) *float64 {
	text = strings.TrimSpace(text)
	for _, layout := range strictDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return floatPtr(float64(t.Unix()))
		}
	}
	return nil
}

// flexDateValue handles free-text cells (ranges, 不晚于 wording) by
// ordering on the first embedded date. An integrity error from the
// extractor degrades to unparseable here: sorting is presentational
// and must not fail mid-comparison.
func flexDateValue(text string) *float64 {
	date, err := ParseDeathDate(text)
	if err != nil || date == nil {
		return nil
	}
	t := time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, time.UTC)
	return floatPtr(float64(t.Unix()))
}
