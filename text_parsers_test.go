package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	age := ParseAge("5岁")
	require.NotNil(t, age)
	assert.Equal(t, 5, *age)

	age = ParseAge("约 12 岁")
	require.NotNil(t, age)
	assert.Equal(t, 12, *age)

	assert.Nil(t, ParseAge("未知"))
	assert.Nil(t, ParseAge(""))
}

func TestParseMoney(t *testing.T) {
	money := ParseMoney("6000万円")
	require.NotNil(t, money)
	assert.Equal(t, "JPY", money.Currency)
	assert.Equal(t, 6000.0*1e4, money.Magnitude)

	money = ParseMoney("3万USD")
	require.NotNil(t, money)
	assert.Equal(t, "USD", money.Currency)
	assert.Equal(t, 30000.0, money.Magnitude)

	money = ParseMoney("1.2亿3500万2000日元")
	require.NotNil(t, money)
	assert.Equal(t, "JPY", money.Currency)
	assert.Equal(t, 1.2*1e8+3500*1e4+2000, money.Magnitude)
}

func TestParseMoneyBareYuanFallsBackToCNY(t *testing.T) {
	money := ParseMoney("500万元")
	require.NotNil(t, money)
	assert.Equal(t, "CNY", money.Currency)
	assert.Equal(t, 500.0*1e4, money.Magnitude)

	// 港元 must win over the bare 元 fallback.
	money = ParseMoney("500万港元")
	require.NotNil(t, money)
	assert.Equal(t, "HKD", money.Currency)
}

func TestParseMoneyUnparseable(t *testing.T) {
	assert.Nil(t, ParseMoney(""))
	assert.Nil(t, ParseMoney("不详"))
	// magnitude without any currency token
	assert.Nil(t, ParseMoney("6000万"))
	// currency token without any magnitude component
	assert.Nil(t, ParseMoney("若干円"))
}

func TestParseRecord(t *testing.T) {
	record := ParseRecord("37-11-4-3")
	require.NotNil(t, record)
	assert.Equal(t, 37, record.Starts)
	assert.Equal(t, 11, record.Win)
	assert.Equal(t, 4, record.Second)
	assert.Equal(t, 3, record.Third)

	record = ParseRecord("37 - 11 - 4 - 3（日本）")
	require.NotNil(t, record)
	assert.Equal(t, 37, record.Starts)

	assert.Nil(t, ParseRecord("37-11-4"))
	assert.Nil(t, ParseRecord("不详"))
}

func TestRecordMetric(t *testing.T) {
	record := ParseRecord("37-11-4-3")
	require.NotNil(t, record)

	assert.InDelta(t, 11.0/37.0, *RecordMetric(record, "winRate"), 1e-12)
	assert.InDelta(t, 15.0/37.0, *RecordMetric(record, "placeRate"), 1e-12)
	assert.InDelta(t, 18.0/37.0, *RecordMetric(record, "showRate"), 1e-12)
	assert.Equal(t, 19.0, *RecordMetric(record, "unplaced"))
	assert.Equal(t, 37.0, *RecordMetric(record, "starts"))
	assert.Equal(t, 11.0, *RecordMetric(record, "win"))
	assert.Equal(t, 4.0, *RecordMetric(record, "second"))
	assert.Equal(t, 3.0, *RecordMetric(record, "third"))
}

func TestRecordMetricZeroStarts(t *testing.T) {
	record := ParseRecord("0-0-0-0")
	require.NotNil(t, record)

	// raw counters stay available, derived metrics do not
	assert.Equal(t, 0.0, *RecordMetric(record, "starts"))
	assert.Equal(t, 0.0, *RecordMetric(record, "win"))
	assert.Nil(t, RecordMetric(record, "winRate"))
	assert.Nil(t, RecordMetric(record, "placeRate"))
	assert.Nil(t, RecordMetric(record, "showRate"))
	assert.Nil(t, RecordMetric(record, "unplaced"))
}

func TestRecordMetricInvalid(t *testing.T) {
	record := ParseRecord("37-11-4-3")
	assert.Nil(t, RecordMetric(record, "podiums"))
	assert.Nil(t, RecordMetric(nil, "winRate"))
	assert.False(t, IsRecordMetric("podiums"))
	assert.True(t, IsRecordMetric("showRate"))
}

func TestClassifyMainWins(t *testing.T) {
	assert.Equal(t, TierG1, ClassifyMainWins("有马纪念（G1）"))
	assert.Equal(t, TierG1, ClassifyMainWins("中山大障碍（JG1）"))
	assert.Equal(t, TierG1, ClassifyMainWins("东京大赏典（地方G1）"))
	assert.Equal(t, TierG2G3, ClassifyMainWins("京都新闻杯（G2）"))
	assert.Equal(t, TierG2G3, ClassifyMainWins("北海道二岁优骏（BG1）"))
	assert.Equal(t, TierG2G3, ClassifyMainWins("小仓大赏典（Jpn3）"))
	// Listed races are deliberately not graded.
	assert.Equal(t, TierUngraded, ClassifyMainWins("白百合赏（L）"))
	assert.Equal(t, TierUngraded, ClassifyMainWins(""))
}

func TestExtractTags(t *testing.T) {
	text := "原因/骨折|殒命赛场/平地|原因/骨折|其他/备注|原因/安乐死"
	assert.Equal(t, []string{"骨折", "安乐死"}, ExtractTags(text, "原因/"))
	assert.Equal(t, []string{"平地"}, ExtractTags(text, "殒命赛场/"))
	assert.Empty(t, ExtractTags("", "原因/"))
	assert.Empty(t, ExtractTags(" | | ", "原因/"))
}
