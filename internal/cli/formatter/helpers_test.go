package formatter

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, " 42.5%", FormatPercent(42.5))
	assert.Equal(t, "100.0%", FormatPercent(100))
	assert.Equal(t, "  0.0%", FormatPercent(0))
}

func TestFormatDelta_SignAndZero(t *testing.T) {
	assert.Equal(t, "+3.2 pp", stripANSI(FormatDelta(3.2)))
	assert.Equal(t, "-30.0 pp", stripANSI(FormatDelta(-30)))
	assert.Equal(t, "±0.0 pp", stripANSI(FormatDelta(-0.01)))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "40h", FormatHours(40))
	assert.Equal(t, "12.5h", FormatHours(12.5))
	assert.Equal(t, "0h", FormatHours(-2))
}

func TestFormatDayPtr(t *testing.T) {
	d := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-06", FormatDayPtr(&d))
	assert.Equal(t, "--", FormatDayPtr(nil))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderBox_TitleUppercased(t *testing.T) {
	out := stripANSI(RenderBox("status", "body"))
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}

func TestRenderTree_AlignsBadges(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "Boiler", Level: 1},
		{Title: "Retube", Code: "BLR-1", Level: 2, Detail: "40%"},
		{Title: "Hydrotest", Level: 2, IsLast: true, Detail: "100%"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "├─ Boiler", lines[0])
	assert.Contains(t, lines[1], "│  ├─ BLR-1 Retube")
	assert.Contains(t, lines[2], "│  └─ Hydrotest")
	col := func(line, badge string) int { return utf8.RuneCountInString(line[:strings.Index(line, badge)]) }
	assert.Equal(t, col(lines[1], "[ 40% ]"), col(lines[2], "[ 100% ]"))
	assert.Empty(t, RenderTree(nil))
}

func TestRenderTree_DoneItemsAreChecked(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{{Title: "Hydrotest", Level: 1, IsLast: true, Done: true}}))
	assert.Equal(t, "└─ ✔ Hydrotest\n", out)
}

func TestRiskIndicator(t *testing.T) {
	assert.Equal(t, "● CRITICAL", stripANSI(RiskIndicator(domain.RiskCritical)))
	assert.Equal(t, "● ON TRACK", stripANSI(RiskIndicator(domain.RiskOnTrack)))
	assert.Equal(t, "● UNKNOWN", stripANSI(RiskIndicator(domain.RiskLevel("weird"))))
}
