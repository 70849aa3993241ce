package models

// Row is one memorial entry: column name -> raw cell text.
// Column names vary per dataset year, access goes through the
// canonical field mapping in the year's table config.
type Row map[string]string

type ColumnType string

const (
	ColumnDate     ColumnType = "date"
	ColumnFlexDate ColumnType = "flexDate"
	ColumnAge      ColumnType = "age"
	ColumnNumber   ColumnType = "number"
	ColumnMoney    ColumnType = "money"
	ColumnRecord   ColumnType = "record"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortDirective selects a column and direction. Metric is only
// meaningful when the resolved column type is record.
type SortDirective struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
	Metric    string        `json:"metric,omitempty"`
}

// ParsedDate is a date extracted from free text. Month and day are
// range-checked on extraction, calendar validity beyond that is not.
type ParsedDate struct {
	Year  int
	Month int
	Day   int
}

// MoneyValue is a prize sum in its source currency.
type MoneyValue struct {
	Currency  string
	Magnitude float64
}

// RecordValue is a starts-win-second-third race record.
type RecordValue struct {
	Starts int
	Win    int
	Second int
	Third  int
}

// Panel is one requested visualization block for a year. Fields lists
// the canonical field names the panel needs resolved.
type Panel struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Fields []string `json:"fields"`
}

// PanelResult is the aggregated output for one panel: parallel
// category/count slices in presentation order.
type PanelResult struct {
	Title      string
	Categories []string
	Counts     []int
}

type DateCluster struct {
	Date  string
	Names []string
}

type WeekCluster struct {
	WeekRange string
	Names     []string
}

type MaxDeathsDay struct {
	Count int
	Dates []DateCluster
}

type MaxDeathsWeek struct {
	Count int
	Weeks []WeekCluster
}

type LongestGap struct {
	Days  int
	Start string
	End   string
}

// TimeStats is computed fresh per (year, row set); nil members mean
// the statistic could not be derived from the data.
type TimeStats struct {
	MaxDeathsInOneDay  *MaxDeathsDay
	MaxDeathsInOneWeek *MaxDeathsWeek
	LongestGap         *LongestGap
	AvgInterval        *float64
}
