package extract

import (
	"testing"
)

func mustParse(t *testing.T, raw string) *Document {
	t.Helper()
	doc, err := ParseHTML([]byte(raw))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	return doc
}

func TestDocument_Position(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<img id="a" src="a.jpg">
		<div><img id="b" src="b.jpg"><p><img id="c" src="c.jpg"></p></div>
	</body></html>`)

	if got := doc.Images().Length(); got != 3 {
		t.Fatalf("expected 3 images, got %d", got)
	}
	for want, id := range []string{"#a", "#b", "#c"} {
		if got := doc.Position(doc.Find(id)); got != want {
			t.Errorf("Position(%s) = %d, want %d", id, got, want)
		}
	}
	if got := doc.Position(doc.Find("#missing")); got != -1 {
		t.Errorf("Position of empty selection = %d, want -1", got)
	}
}

func TestDocument_ContentScope(t *testing.T) {
	tests := []struct {
		name          string
		html          string
		requireImages bool
		wantTag       string
	}{
		{
			name:          "article with images",
			html:          `<body><article><img src="a.jpg"></article></body>`,
			requireImages: true,
			wantTag:       "article",
		},
		{
			name:          "article without images is skipped when images are required",
			html:          `<body><article><p>x</p></article><main><img src="a.jpg"></main></body>`,
			requireImages: true,
			wantTag:       "main",
		},
		{
			name:          "article without images wins when images are not required",
			html:          `<body><article><p>x</p></article><main><img src="a.jpg"></main></body>`,
			requireImages: false,
			wantTag:       "article",
		},
		{
			name:          "falls back to body",
			html:          `<body><div><img src="a.jpg"></div></body>`,
			requireImages: true,
			wantTag:       "body",
		},
		{
			name:          "class substring match",
			html:          `<body><div class="story-content-wrap"><img src="a.jpg"></div></body>`,
			requireImages: true,
			wantTag:       "div",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			scope := doc.contentScope(tt.requireImages)
			if got := scope.Nodes[0].Data; got != tt.wantTag {
				t.Errorf("scope tag = %q, want %q", got, tt.wantTag)
			}
		})
	}
}
