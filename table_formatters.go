// table_formatters.go
package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

// GenerateMemorialTable renders rows in the given column order. Cells
// absent from a row render empty.
func GenerateMemorialTable(rows []models.Row, columns []string) string {
	t := table.NewWriter()

	header := table.Row{}
	for _, column := range columns {
		header = append(header, column)
	}
	t.AppendHeader(header)

	for _, row := range rows {
		cells := table.Row{}
		for _, column := range columns {
			cells = append(cells, row[column])
		}
		t.AppendRows([]table.Row{cells})
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GeneratePanelTable renders one aggregated panel as a two-column
// category/count table.
func GeneratePanelTable(result models.PanelResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{result.Title, "数量"})
	for i, category := range result.Categories {
		t.AppendRows([]table.Row{{category, result.Counts[i]}})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTimeStatsTable renders the time statistics block; absent
// statistics render as a dash.
func GenerateTimeStatsTable(stats models.TimeStats) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"统计项", "值"})

	if stats.MaxDeathsInOneDay != nil {
		descriptions := make([]string, 0, len(stats.MaxDeathsInOneDay.Dates))
		for _, cluster := range stats.MaxDeathsInOneDay.Dates {
			descriptions = append(descriptions, cluster.Date+": "+strings.Join(cluster.Names, "、"))
		}
		t.AppendRows([]table.Row{{
			"单日最多死亡",
			fmt.Sprintf("%d (%s)", stats.MaxDeathsInOneDay.Count, strings.Join(descriptions, "; ")),
		}})
	} else {
		t.AppendRows([]table.Row{{"单日最多死亡", "-"}})
	}

	if stats.MaxDeathsInOneWeek != nil {
		descriptions := make([]string, 0, len(stats.MaxDeathsInOneWeek.Weeks))
		for _, cluster := range stats.MaxDeathsInOneWeek.Weeks {
			descriptions = append(descriptions, cluster.WeekRange+": "+strings.Join(cluster.Names, "、"))
		}
		t.AppendRows([]table.Row{{
			"单周最多死亡",
			fmt.Sprintf("%d (%s)", stats.MaxDeathsInOneWeek.Count, strings.Join(descriptions, "; ")),
		}})
	} else {
		t.AppendRows([]table.Row{{"单周最多死亡", "-"}})
	}

	if stats.LongestGap != nil {
		t.AppendRows([]table.Row{{
			"最长间隔",
			fmt.Sprintf("%d天 (%s ~ %s)", stats.LongestGap.Days, stats.LongestGap.Start, stats.LongestGap.End),
		}})
	} else {
		t.AppendRows([]table.Row{{"最长间隔", "-"}})
	}

	if stats.AvgInterval != nil {
		t.AppendRows([]table.Row{{"平均间隔", fmt.Sprintf("%.2f天", *stats.AvgInterval)}})
	} else {
		t.AppendRows([]table.Row{{"平均间隔", "-"}})
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}
