// aggregate.go
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pivolan/go_utils"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

// Panel kinds understood by the aggregation engine.
const (
	PanelMonthOfDeath    = "monthOfDeath"
	PanelAgeDistribution = "ageDistribution"
	PanelMainWinsTier    = "mainWinsTier"
	PanelCategorical     = "categorical"
	PanelCauseTags       = "causeTags"
	PanelRaceVenue       = "raceVenue"
)

const (
	UnknownLabel = "未知"

	causePrefix = "原因/"
	venuePrefix = "殒命赛场/"
)

// raceVenueVocabulary is the closed set of venue buckets, in
// presentation order: flat race, jump race, pre-race.
var raceVenueVocabulary = []string{"平地", "障碍", "赛前"}

// Aggregate computes every requested panel for one year. Field
// resolution failures, panels without required fields and rows
// missing a resolved column are configuration/integrity errors: the
// whole call fails, no partial result is returned.
func Aggregate(rows []models.Row, year int, panels []models.Panel, cfg *TableConfig) (map[string]models.PanelResult, error) {
	results := make(map[string]models.PanelResult, len(panels))
	for _, panel := range panels {
		if len(panel.Fields) == 0 {
			return nil, fmt.Errorf("panel %q declares no required fields", panel.Name)
		}
		columns := make(map[string]string, len(panel.Fields))
		for _, field := range panel.Fields {
			column, err := cfg.ResolveField(year, field)
			if err != nil {
				return nil, fmt.Errorf("panel %q: %v", panel.Name, err)
			}
			if err := requireColumn(rows, column); err != nil {
				return nil, fmt.Errorf("panel %q: %v", panel.Name, err)
			}
			columns[field] = column
		}

		result, err := aggregatePanel(rows, panel, columns)
		if err != nil {
			return nil, err
		}
		results[panel.Name] = result
	}
	return results, nil
}

func requireColumn(rows []models.Row, column string) error {
	for i, row := range rows {
		if _, ok := row[column]; !ok {
			return fmt.Errorf("row %d is missing column %q", i, column)
		}
	}
	return nil
}

func aggregatePanel(rows []models.Row, panel models.Panel, columns map[string]string) (models.PanelResult, error) {
	switch panel.Kind {
	case PanelMonthOfDeath:
		return aggregateMonths(rows, panel, columns[panel.Fields[0]])
	case PanelAgeDistribution:
		return aggregateAges(rows, panel, columns[panel.Fields[0]]), nil
	case PanelMainWinsTier:
		return aggregateTiers(rows, panel, columns[panel.Fields[0]]), nil
	case PanelCategorical:
		return aggregateCategorical(rows, panel, columns[panel.Fields[0]]), nil
	case PanelCauseTags:
		return aggregateTags(rows, panel, columns[panel.Fields[0]]), nil
	case PanelRaceVenue:
		return aggregateVenues(rows, panel, columns[panel.Fields[0]]), nil
	}
	return models.PanelResult{}, fmt.Errorf("panel %q has unknown kind %q", panel.Name, panel.Kind)
}

// aggregateMonths buckets death dates into the fixed 1月..12月 list;
// the unknown/cross-month bucket trails only when non-empty.
func aggregateMonths(rows []models.Row, panel models.Panel, column string) (models.PanelResult, error) {
	counts := map[string]int{}
	for _, row := range rows {
		bucket, err := GetDeathMonthBucket(row[column])
		if err != nil {
			return models.PanelResult{}, fmt.Errorf("panel %q: %v", panel.Name, err)
		}
		counts[bucket]++
	}

	result := models.PanelResult{Title: panel.Name}
	for month := 1; month <= 12; month++ {
		label := monthLabel(month)
		result.Categories = append(result.Categories, label)
		result.Counts = append(result.Counts, counts[label])
	}
	if counts[UnknownMonthBucket] > 0 {
		result.Categories = append(result.Categories, UnknownMonthBucket)
		result.Counts = append(result.Counts, counts[UnknownMonthBucket])
	}
	return result, nil
}

// aggregateAges emits one bucket per integer age from the observed
// minimum to maximum, zero counts included, and always a trailing
// unknown bucket.
func aggregateAges(rows []models.Row, panel models.Panel, column string) models.PanelResult {
	counts := map[int]int{}
	unknown := 0
	min, max := 0, 0
	for _, row := range rows {
		age := ParseAge(row[column])
		if age == nil {
			unknown++
			continue
		}
		if len(counts) == 0 || *age < min {
			min = *age
		}
		if len(counts) == 0 || *age > max {
			max = *age
		}
		counts[*age]++
	}

	result := models.PanelResult{Title: panel.Name}
	if len(counts) > 0 {
		for age := min; age <= max; age++ {
			result.Categories = append(result.Categories, strconv.Itoa(age))
			result.Counts = append(result.Counts, counts[age])
		}
	}
	result.Categories = append(result.Categories, UnknownLabel)
	result.Counts = append(result.Counts, unknown)
	return result
}

// aggregateTiers always yields the three grade buckets in fixed
// order, zero-filled.
func aggregateTiers(rows []models.Row, panel models.Panel, column string) models.PanelResult {
	counts := map[string]int{}
	for _, row := range rows {
		counts[ClassifyMainWins(row[column])]++
	}
	result := models.PanelResult{Title: panel.Name}
	for _, tier := range []string{TierG1, TierG2G3, TierUngraded} {
		result.Categories = append(result.Categories, tier)
		result.Counts = append(result.Counts, counts[tier])
	}
	return result
}

// aggregateCategorical buckets free-form values (gender, coat,
// breed), substituting the unknown label for blank cells, ordered by
// descending count.
func aggregateCategorical(rows []models.Row, panel models.Panel, column string) models.PanelResult {
	counts := map[string]int{}
	for _, row := range rows {
		value := strings.TrimSpace(row[column])
		if value == "" {
			value = UnknownLabel
		}
		counts[value]++
	}
	return sortedByCount(panel.Name, counts)
}

// aggregateTags is multi-label: one row may contribute to several
// cause buckets.
func aggregateTags(rows []models.Row, panel models.Panel, column string) models.PanelResult {
	counts := map[string]int{}
	for _, row := range rows {
		for _, tag := range ExtractTags(row[column], causePrefix) {
			counts[tag]++
		}
	}
	return sortedByCount(panel.Name, counts)
}

// aggregateVenues counts race-death venue tags against the closed
// vocabulary, zero-filled in fixed order. Tags outside the vocabulary
// are ignored.
func aggregateVenues(rows []models.Row, panel models.Panel, column string) models.PanelResult {
	counts := map[string]int{}
	for _, row := range rows {
		for _, tag := range ExtractTags(row[column], venuePrefix) {
			if go_utils.InArray(tag, raceVenueVocabulary) {
				counts[tag]++
			}
		}
	}
	result := models.PanelResult{Title: panel.Name}
	for _, venue := range raceVenueVocabulary {
		result.Categories = append(result.Categories, venue)
		result.Counts = append(result.Counts, counts[venue])
	}
	return result
}

// sortedByCount orders free-form buckets by descending count, label
// ascending as a deterministic tie-break.
func sortedByCount(title string, counts map[string]int) models.PanelResult {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	result := models.PanelResult{Title: title}
	for _, label := range labels {
		result.Categories = append(result.Categories, label)
		result.Counts = append(result.Counts, counts[label])
	}
	return result
}
