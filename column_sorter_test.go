package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

func testTableConfig() *TableConfig {
	return DefaultTableConfig()
}

func namesOf(rows []models.Row) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row["马名"]
	}
	return names
}

func TestSortRowsNilDirectiveKeepsOrder(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "年龄": "5岁"},
		{"马名": "B", "年龄": "3岁"},
	}
	sorted := SortRows(rows, 2025, nil, testTableConfig(), DefaultRates)
	assert.Equal(t, []string{"A", "B"}, namesOf(sorted))
	// a new slice, not the caller's
	sorted[0] = models.Row{"马名": "X"}
	assert.Equal(t, "A", rows[0]["马名"])
}

func TestSortRowsUnknownColumnKeepsOrder(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "调教师": "某某"},
		{"马名": "B", "调教师": "某某"},
	}
	directive := &models.SortDirective{Key: "调教师", Direction: models.SortAsc}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	assert.Equal(t, []string{"A", "B"}, namesOf(sorted))
}

func TestSortRowsAgeAscUnparseableTrail(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "年龄": "7岁"},
		{"马名": "B", "年龄": "不详"},
		{"马名": "C", "年龄": "3岁"},
		{"马名": "D", "年龄": ""},
		{"马名": "E", "年龄": "5岁"},
	}
	directive := &models.SortDirective{Key: "年龄", Direction: models.SortAsc}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	assert.Equal(t, []string{"C", "E", "A", "B", "D"}, namesOf(sorted))

	// unparseable rows trail in original order under desc too
	directive.Direction = models.SortDesc
	sorted = SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	assert.Equal(t, []string{"A", "E", "C", "B", "D"}, namesOf(sorted))
}

func TestSortRowsStability(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "年龄": "5岁"},
		{"马名": "B", "年龄": "3岁"},
		{"马名": "C", "年龄": "5岁"},
		{"马名": "D", "年龄": "3岁"},
	}
	directive := &models.SortDirective{Key: "年龄", Direction: models.SortAsc}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	assert.Equal(t, []string{"B", "D", "A", "C"}, namesOf(sorted))
}

func TestSortRowsFlexDate(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "死亡日期": "2025-05-20"},
		{"马名": "B", "死亡日期": "不晚于2025-02-01"},
		{"马名": "C", "死亡日期": "2025-03-01至2025-03-20"},
		{"马名": "D", "死亡日期": "日期不详"},
	}
	directive := &models.SortDirective{Key: "死亡日期", Direction: models.SortAsc}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	assert.Equal(t, []string{"B", "C", "A", "D"}, namesOf(sorted))
}

func TestSortRowsMoneyConversion(t *testing.T) {
	rates := RateTable{"JPY": 1, "USD": 155.8}
	rows := []models.Row{
		{"马名": "A", "总奖金": "6000万円"},
		{"马名": "B", "总奖金": "3万USD"},
		{"马名": "C", "总奖金": "未知"},
	}
	directive := &models.SortDirective{Key: "总奖金", Direction: models.SortDesc}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), rates)

	// 6000万円 = 6e7 JPY, 3万USD = 30000*155.8 = 4.674e6 JPY
	assert.Equal(t, []string{"A", "B", "C"}, namesOf(sorted))

	// a currency missing from the table is unparseable, not zero
	delete(rates, "USD")
	sorted = SortRows(rows, 2025, directive, testTableConfig(), rates)
	assert.Equal(t, []string{"A", "B", "C"}, namesOf(sorted))
	directive.Direction = models.SortAsc
	sorted = SortRows(rows, 2025, directive, testTableConfig(), rates)
	assert.Equal(t, []string{"A", "B", "C"}, namesOf(sorted))
}

func TestSortRowsRecordMetric(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "战绩": "37-11-4-3"},
		{"马名": "B", "战绩": "10-5-1-0"},
		{"马名": "C", "战绩": "0-0-0-0"},
		{"马名": "D", "战绩": "不详"},
	}
	directive := &models.SortDirective{Key: "战绩", Direction: models.SortDesc, Metric: "winRate"}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	// 0.5 > 0.297; zero starts and no pattern trail in original order
	assert.Equal(t, []string{"B", "A", "C", "D"}, namesOf(sorted))
}

func TestSortRowsRecordInvalidMetric(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "战绩": "37-11-4-3"},
		{"马名": "B", "战绩": "10-5-1-0"},
	}
	directive := &models.SortDirective{Key: "战绩", Direction: models.SortAsc, Metric: "podiums"}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	// every row unparseable -> original order preserved
	assert.Equal(t, []string{"A", "B"}, namesOf(sorted))
}

func TestSortRowsDateColumn(t *testing.T) {
	rows := []models.Row{
		{"马名": "A", "出生日期": "2019-04-12"},
		{"马名": "B", "出生日期": "2015/6/3"},
		{"马名": "C", "出生日期": "未知"},
	}
	directive := &models.SortDirective{Key: "出生日期", Direction: models.SortAsc}
	sorted := SortRows(rows, 2025, directive, testTableConfig(), DefaultRates)
	require.Equal(t, []string{"B", "A", "C"}, namesOf(sorted))
}
