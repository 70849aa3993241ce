package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/HatsuSumi/Racehorse-Memorial/config"
	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
	"github.com/HatsuSumi/Racehorse-Memorial/plot"
)

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	tableCfg, err := LoadTableConfig(cfg.TableConfig)
	if err != nil {
		log.Fatalln("cannot load table config", err)
	}

	rates := loadRates(cfg)

	for _, year := range tableCfg.YearList() {
		if err := generateYear(year, cfg, tableCfg, rates); err != nil {
			log.Fatalln("year", year, "failed:", err)
		}
	}
	fmt.Println("done")
}

// loadRates resolves the live rate table: fresh cache, then remote
// refresh, then the shipped defaults. A refresh failure is logged and
// degraded, never fatal.
func loadRates(cfg *config.Config) RateTable {
	ttl := time.Duration(cfg.RatesTTLHours) * time.Hour
	if rates, ok := LoadCachedRates(cfg.RatesCache, ttl); ok {
		return rates
	}
	if cfg.RatesURL == "" {
		return DefaultRates
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rates, err := FetchRates(ctx, cfg.RatesURL)
	if err != nil {
		log.Printf("rates refresh failed, using defaults: %v", err)
		return DefaultRates
	}
	if err := SaveRatesCache(cfg.RatesCache, cfg.BaseCurrency, rates); err != nil {
		log.Printf("cannot save rates cache: %v", err)
	}
	return rates
}

// loadRows prefers the local dataset directory and falls back to the
// remote dataset when DATA_URL is configured.
func loadRows(cfg *config.Config, year int) ([]models.Row, error) {
	rows, err := LoadYearRows(cfg.DataDir, year)
	if err == nil || cfg.DataURL == "" {
		return rows, err
	}
	log.Printf("local dataset for %d unavailable (%v), fetching remote", year, err)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return FetchYearRows(ctx, cfg.DataURL, year)
}

func generateYear(year int, cfg *config.Config, tableCfg *TableConfig, rates RateTable) error {
	rows, err := loadRows(cfg, year)
	if err != nil {
		return err
	}
	fmt.Printf("year %d: %d rows\n", year, len(rows))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}

	// Memorial table, death date ascending.
	dateColumn, err := tableCfg.ResolveField(year, FieldDeathDate)
	if err != nil {
		return err
	}
	sorted := SortRows(rows, year, &models.SortDirective{
		Key:       dateColumn,
		Direction: models.SortAsc,
	}, tableCfg, rates)

	columns, err := displayColumns(year, tableCfg)
	if err != nil {
		return err
	}
	memorialTable := GenerateMemorialTable(sorted, columns)
	fmt.Println(memorialTable)
	tablePath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%d_memorial.txt", year))
	if err := os.WriteFile(tablePath, []byte(memorialTable), 0644); err != nil {
		return err
	}

	// Panels.
	panels := tableCfg.Panels(year)
	results, err := Aggregate(rows, year, panels, tableCfg)
	if err != nil {
		return err
	}
	chartPath, err := RenderYearCharts(year, panels, results, cfg.OutputDir)
	if err != nil {
		return err
	}
	fmt.Println("charts written to", chartPath)

	for _, panel := range panels {
		result := results[panel.Name]
		if !isBarPanel(panel.Kind) {
			continue
		}
		png, err := plot.DrawPanelBar(plot.NewDataPanelForGraph(result.Categories, result.Counts, "数量", result.Title))
		if err != nil {
			log.Printf("year %d: panel %q png failed: %v", year, panel.Name, err)
			continue
		}
		pngPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%d_%s.png", year, slugify(panel.Name)))
		if err := os.WriteFile(pngPath, png, 0644); err != nil {
			return err
		}
	}

	// Time statistics.
	stats, err := ComputeTimeStats(rows, year, tableCfg)
	if err != nil {
		return err
	}
	statsTable := GenerateTimeStatsTable(stats)
	fmt.Println(statsTable)
	statsPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%d_time_stats.txt", year))
	return os.WriteFile(statsPath, []byte(statsTable), 0644)
}

// displayColumns derives the memorial table column order from the
// year's canonical field mapping.
func displayColumns(year int, tableCfg *TableConfig) ([]string, error) {
	columns := []string{}
	for _, field := range []string{
		FieldName, FieldDeathDate, FieldAge, FieldGender,
		FieldCoat, FieldBreed, FieldMainWins, FieldRecord, FieldPrize,
	} {
		column, err := tableCfg.ResolveField(year, field)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, nil
}
