// text_parsers.go
package main

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pivolan/go_utils"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

var agePattern = regexp.MustCompile(`(\d+)\s*岁`)

// ParseAge extracts "<n>岁" from an age cell, nil when absent.
func ParseAge(text string) *int {
	m := agePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	age, _ := strconv.Atoi(m[1])
	return &age
}

// currencyToken maps a trailing text token to an ISO-ish currency
// code. Order matters: specific tokens first, the bare 元 fallback
// last because 欧元/港元/美元 all end with it.
type currencyToken struct {
	Token string
	Code  string
}

var currencyTokens = []currencyToken{
	{"日元", "JPY"},
	{"日圆", "JPY"},
	{"円", "JPY"},
	{"JPY", "JPY"},
	{"美元", "USD"},
	{"美金", "USD"},
	{"USD", "USD"},
	{"港元", "HKD"},
	{"港币", "HKD"},
	{"HKD", "HKD"},
	{"欧元", "EUR"},
	{"EUR", "EUR"},
	{"英镑", "GBP"},
	{"GBP", "GBP"},
	{"澳元", "AUD"},
	{"AUD", "AUD"},
	{"人民币", "CNY"},
	{"CNY", "CNY"},
	{"元", "CNY"},
}

var (
	moneyYiPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)亿`)
	moneyWanPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)万`)
	moneyTailPattern = regexp.MustCompile(`(\d+)\s*$`)
)

// ParseMoney parses mixed Chinese numeral-unit money text such as
// "6000万円" or "1.2亿3500万日元". The magnitude is the sum of the
// 亿 component, the 万 component and a trailing bare digit run. A cell
// without a recognizable trailing currency token is unparseable.
func ParseMoney(text string) *models.MoneyValue {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	code := ""
	body := ""
	for _, ct := range currencyTokens {
		if strings.HasSuffix(text, ct.Token) {
			code = ct.Code
			body = strings.TrimSpace(strings.TrimSuffix(text, ct.Token))
			break
		}
	}
	if code == "" {
		return nil
	}

	magnitude := 0.0
	matched := false
	if m := moneyYiPattern.FindStringSubmatch(body); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		magnitude += v * 1e8
		matched = true
	}
	if m := moneyWanPattern.FindStringSubmatch(body); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		magnitude += v * 1e4
		matched = true
	}
	if m := moneyTailPattern.FindStringSubmatch(body); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		magnitude += v
		matched = true
	}
	if !matched {
		return nil
	}
	return &models.MoneyValue{Currency: code, Magnitude: magnitude}
}

var recordPattern = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*-\s*(\d+)\s*-\s*(\d+)`)

// ParseRecord parses a "starts-win-second-third" race record, nil
// when the dash pattern is absent.
func ParseRecord(text string) *models.RecordValue {
	m := recordPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	starts, _ := strconv.Atoi(m[1])
	win, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])
	third, _ := strconv.Atoi(m[4])
	return &models.RecordValue{Starts: starts, Win: win, Second: second, Third: third}
}

var recordMetrics = []string{
	"winRate", "starts", "win", "second", "third", "placeRate", "showRate", "unplaced",
}

func IsRecordMetric(name string) bool {
	return go_utils.InArray(name, recordMetrics)
}

// RecordMetric derives the named performance number from a record.
// Raw counters are always available; rate metrics and unplaced need a
// positive starts count, otherwise nil.
func RecordMetric(r *models.RecordValue, metric string) *float64 {
	if r == nil {
		return nil
	}
	switch metric {
	case "starts":
		return floatPtr(float64(r.Starts))
	case "win":
		return floatPtr(float64(r.Win))
	case "second":
		return floatPtr(float64(r.Second))
	case "third":
		return floatPtr(float64(r.Third))
	}
	if r.Starts <= 0 {
		return nil
	}
	showed := r.Win + r.Second + r.Third
	switch metric {
	case "winRate":
		return floatPtr(float64(r.Win) / float64(r.Starts))
	case "placeRate":
		return floatPtr(float64(r.Win+r.Second) / float64(r.Starts))
	case "showRate":
		return floatPtr(float64(showed) / float64(r.Starts))
	case "unplaced":
		return floatPtr(float64(r.Starts - showed))
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

const (
	TierG1       = "G1"
	TierG2G3     = "G2/G3"
	TierUngraded = "无分级"
)

var (
	g1Markers = []string{"（G1）", "（Jpn1）", "（JG1）", "（地方G1）"}
	g2Markers = []string{
		"（G2）", "（G3）", "（Jpn2）", "（Jpn3）", "（JG2）", "（JG3）",
		"（地方G2）", "（地方G3）", "（BG1）", "（BG2）", "（BG3）",
	}
)

// ClassifyMainWins grades a main-wins cell by its parenthesized race
// grade markers. Listed and open-class markers stay ungraded.
func ClassifyMainWins(text string) string {
	for _, marker := range g1Markers {
		if strings.Contains(text, marker) {
			return TierG1
		}
	}
	for _, marker := range g2Markers {
		if strings.Contains(text, marker) {
			return TierG2G3
		}
	}
	return TierUngraded
}

// ExtractTags splits a |-delimited statistics cell, keeps the tags
// carrying the given prefix, strips it and de-duplicates while
// preserving first-seen order.
func ExtractTags(text, prefix string) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, part := range strings.Split(text, "|") {
		part = strings.TrimSpace(part)
		if part == "" || !strings.HasPrefix(part, prefix) {
			continue
		}
		tag := strings.TrimPrefix(part, prefix)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
