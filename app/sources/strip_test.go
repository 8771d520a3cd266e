package sources

import (
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "삼성전자 실적 발표", "삼성전자 실적 발표"},
		{"bold highlighting", "<b>삼성전자</b> 실적 발표", "삼성전자 실적 발표"},
		{"nested tags", "<div><b>LG</b>전자 <i>신제품</i></div>", "LG전자 신제품"},
		{"quote entity", "&quot;역대급&quot; 실적", `"역대급" 실적`},
		{"ampersand entity", "S&amp;P 500", "S&P 500"},
		{"collapsed whitespace", "  news \n\t update  ", "news update"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripTags(tt.input); got != tt.expected {
				t.Errorf("stripTags(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
