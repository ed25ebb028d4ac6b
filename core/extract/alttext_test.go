package extract

import (
	"strings"
	"testing"

	"newscard-api/core/domain"
)

func TestCleanAltText(t *testing.T) {
	profile := DefaultSiteProfile()
	long := strings.Repeat("字", 150)
	hundred := strings.Repeat("x", 100)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", domain.SentinelNoAltText},
		{"blank", "   ", domain.SentinelNoAltText},
		{"full width brackets", "市長出席記者會（資料照／中天新聞）", "資料照／中天新聞"},
		{"longest full width match", "（短）與（較長的說明文字）", "較長的說明文字"},
		{"full width beats longer ascii", "(a much longer ascii caption)（短）", "短"},
		{"ascii parentheses", "Flood waters (Reuters)", "Reuters"},
		{"lenticular brackets", "畫面【記者林小華攝】", "記者林小華攝"},
		{"square brackets", "Photo [AP]", "AP"},
		{"truncated", long, strings.Repeat("字", 100) + "..."},
		{"exactly one hundred", hundred, hundred},
		{"plain", "市長視察災區", "市長視察災區"},
		{"screen capture in brackets", "影片截圖（翻攝畫面）", "資料來源:中天新聞網"},
		{"screen capture plain", "翻攝畫面 市長", "資料來源:中天新聞網"},
		{"screen capture after brackets", "（資料照）翻攝畫面", "資料來源:中天新聞網"},
		{"screen capture outside ascii brackets", "翻攝畫面 (Reuters)", "資料來源:中天新聞網"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanAltText(tt.raw, profile); got != tt.want {
				t.Errorf("CleanAltText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanAltText_CustomProfile(t *testing.T) {
	profile := DefaultSiteProfile()
	profile.ScreenCaptureMarker = "screen grab"
	profile.ScreenCaptureAttribution = "Source: Example News"

	if got := CleanAltText("(screen grab)", profile); got != "Source: Example News" {
		t.Errorf("CleanAltText() = %q", got)
	}
}
