// table_config.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

// Canonical field names used by the aggregation and statistics
// engines. Each dataset year maps them to its actual column names.
const (
	FieldName       = "name"
	FieldDeathDate  = "deathDate"
	FieldAge        = "age"
	FieldGender     = "gender"
	FieldCoat       = "coat"
	FieldBreed      = "breed"
	FieldMainWins   = "mainWins"
	FieldCauseStats = "causeStats"
	FieldPrize      = "prize"
	FieldRecord     = "record"
)

type ColumnSpec struct {
	Type models.ColumnType `json:"type"`
}

// YearConfig carries everything column-identity related for one
// dataset year: sortable column types, canonical field resolution and
// the ordered panel list.
type YearConfig struct {
	Columns map[string]ColumnSpec `json:"columns"`
	Fields  map[string]string     `json:"fields"`
	Panels  []models.Panel        `json:"panels"`
}

type TableConfig struct {
	Years map[string]YearConfig `json:"years"`
}

// LoadTableConfig reads a per-year table config from a JSON file. An
// empty path falls back to the built-in default config.
func LoadTableConfig(path string) (*TableConfig, error) {
	if path == "" {
		return DefaultTableConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table config: %v", err)
	}
	cfg := &TableConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse table config %s: %v", path, err)
	}
	if len(cfg.Years) == 0 {
		return nil, fmt.Errorf("table config %s declares no years", path)
	}
	return cfg, nil
}

// ColumnType resolves the sort type configured for a (year, column)
// pair. A column is sortable iff this lookup succeeds.
func (c *TableConfig) ColumnType(year int, column string) (models.ColumnType, bool) {
	yc, ok := c.Years[strconv.Itoa(year)]
	if !ok {
		return "", false
	}
	spec, ok := yc.Columns[column]
	if !ok {
		return "", false
	}
	return spec.Type, true
}

// ResolveField maps a canonical field name to the year's actual
// column name. A missing mapping is a configuration error, not a
// data-quality gap.
func (c *TableConfig) ResolveField(year int, canonical string) (string, error) {
	yc, ok := c.Years[strconv.Itoa(year)]
	if !ok {
		return "", fmt.Errorf("no table config for year %d", year)
	}
	column, ok := yc.Fields[canonical]
	if !ok || column == "" {
		return "", fmt.Errorf("year %d: no column mapping for field %q", year, canonical)
	}
	return column, nil
}

func (c *TableConfig) Panels(year int) []models.Panel {
	return c.Years[strconv.Itoa(year)].Panels
}

// YearList returns the configured years in ascending order.
func (c *TableConfig) YearList() []int {
	years := make([]int, 0, len(c.Years))
	for y := range c.Years {
		if n, err := strconv.Atoi(y); err == nil {
			years = append(years, n)
		}
	}
	sort.Ints(years)
	return years
}

func defaultPanels() []models.Panel {
	return []models.Panel{
		{Name: "死亡月份分布", Kind: PanelMonthOfDeath, Fields: []string{FieldDeathDate}},
		{Name: "马匹年龄分布", Kind: PanelAgeDistribution, Fields: []string{FieldAge}},
		{Name: "主要胜利分级", Kind: PanelMainWinsTier, Fields: []string{FieldMainWins}},
		{Name: "性别分布", Kind: PanelCategorical, Fields: []string{FieldGender}},
		{Name: "毛色分布", Kind: PanelCategorical, Fields: []string{FieldCoat}},
		{Name: "品种分布", Kind: PanelCategorical, Fields: []string{FieldBreed}},
		{Name: "死亡原因分布", Kind: PanelCauseTags, Fields: []string{FieldCauseStats}},
		{Name: "殒命赛场类型", Kind: PanelRaceVenue, Fields: []string{FieldCauseStats}},
	}
}

func defaultYearConfig() YearConfig {
	return YearConfig{
		Columns: map[string]ColumnSpec{
			"死亡日期": {Type: models.ColumnFlexDate},
			"出生日期": {Type: models.ColumnDate},
			"年龄":   {Type: models.ColumnAge},
			"总奖金":  {Type: models.ColumnMoney},
			"战绩":   {Type: models.ColumnRecord},
		},
		Fields: map[string]string{
			FieldName:       "马名",
			FieldDeathDate:  "死亡日期",
			FieldAge:        "年龄",
			FieldGender:     "性别",
			FieldCoat:       "毛色",
			FieldBreed:      "品种",
			FieldMainWins:   "主要胜利",
			FieldCauseStats: "统计标签",
			FieldPrize:      "总奖金",
			FieldRecord:     "战绩",
		},
		Panels: defaultPanels(),
	}
}

// DefaultTableConfig covers the dataset years shipped with the site.
// Column names happen to coincide across these years, each still gets
// its own entry because nothing guarantees that for future years.
func DefaultTableConfig() *TableConfig {
	cfg := &TableConfig{Years: map[string]YearConfig{}}
	for _, year := range []string{"2024", "2025"} {
		cfg.Years[year] = defaultYearConfig()
	}
	return cfg
}
