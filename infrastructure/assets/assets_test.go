package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"newscard-api/core/layout"
)

// recordingLogger captures warnings
type recordingLogger struct {
	mu    sync.Mutex
	warns []map[string]interface{}
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Error(string, map[string]interface{}) {}
func (l *recordingLogger) Warn(_ string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fields)
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	path := filepath.Join(dir, "bg.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoad_FilesPresent(t *testing.T) {
	dir := t.TempDir()
	cfg := layout.DefaultConfig()
	cfg.Title.FontRegular = writeFile(t, dir, "Regular.ttf", goregular.TTF)
	cfg.Title.FontBold = writeFile(t, dir, "Bold.otf", gobold.TTF)
	cfg.Image.SourceFontPath = writeFile(t, dir, "Source.ttf", goregular.TTF)
	cfg.Canvas.BackgroundPath = writePNG(t, dir, 192, 108)

	logger := &recordingLogger{}
	p := Load(cfg, logger)

	assert.Empty(t, logger.warns)
	assert.True(t, p.HasFont(layout.FontRegular))
	assert.True(t, p.HasFont(layout.FontBold))
	assert.True(t, p.HasFont(layout.FontSource))

	face := p.Face(layout.FontBold, 40)
	require.NotNil(t, face)
	assert.Positive(t, face.Metrics().Height.Ceil())

	bg := p.Background()
	require.NotNil(t, bg)
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), bg.Bounds())
	_, _, b, _ := bg.At(960, 540).RGBA()
	assert.InDelta(t, 255, int(b>>8), 2)
}

func TestLoad_MissingAssetsFallBack(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.Title.FontRegular = "/nonexistent/Regular.ttf"
	cfg.Title.FontBold = ""
	cfg.Image.SourceFontPath = "/nonexistent/DFT_8.TTC"
	cfg.Canvas.BackgroundPath = "/nonexistent/bg.jpg"

	logger := &recordingLogger{}
	p := Load(cfg, logger)

	assert.Len(t, logger.warns, 4)
	assert.False(t, p.HasFont(layout.FontRegular))
	assert.NotNil(t, p.Face(layout.FontRegular, 28))
	assert.NotNil(t, p.Face(layout.FontSource, 36))
	assert.Nil(t, p.Background())
}

func TestLoad_CorruptFont(t *testing.T) {
	dir := t.TempDir()
	cfg := layout.DefaultConfig()
	cfg.Title.FontRegular = writeFile(t, dir, "Broken.ttf", []byte("not a font"))
	cfg.Image.SourceFontPath = writeFile(t, dir, "Broken.ttc", []byte("not a collection"))

	logger := &recordingLogger{}
	p := Load(cfg, logger)

	assert.False(t, p.HasFont(layout.FontRegular))
	assert.False(t, p.HasFont(layout.FontSource))
	assert.NotNil(t, p.Face(layout.FontRegular, 20))
}

func TestProvider_FacesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	cfg := layout.DefaultConfig()
	cfg.Title.FontRegular = writeFile(t, dir, "Regular.ttf", goregular.TTF)

	p := Load(cfg, nil)
	a := p.Face(layout.FontRegular, 20)
	b := p.Face(layout.FontRegular, 20)
	assert.NotSame(t, a, b)
}

func TestProvider_ServesCompositor(t *testing.T) {
	dir := t.TempDir()
	cfg := layout.DefaultConfig()
	cfg.Title.FontRegular = writeFile(t, dir, "Regular.ttf", goregular.TTF)
	cfg.Canvas.BackgroundPath = writePNG(t, dir, 1920, 1080)

	compositor := layout.NewCompositor(cfg, Load(cfg, nil))
	canvas, report := compositor.Render(layout.RenderInput{
		Title:   "Typhoon closes schools",
		Content: "Schools and offices close across the north as the storm approaches.",
	})

	assert.Equal(t, image.Rect(0, 0, 1920, 1080), canvas.Bounds())
	assert.Positive(t, report.Title.Height)
	// Outside the white area the background shows through
	_, _, b, _ := canvas.At(5, 5).RGBA()
	assert.InDelta(t, 255, int(b>>8), 2)
}
