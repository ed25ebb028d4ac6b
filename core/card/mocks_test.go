package card

import (
	"context"
	"image"
	"image/color"
	"sync"

	"newscard-api/core/domain"
	coreerrors "newscard-api/core/errors"
)

// mockPageFetcher serves canned pages
type mockPageFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls int
}

func (m *mockPageFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	page, ok := m.pages[url]
	if !ok {
		return nil, &coreerrors.FetchError{URL: url, StatusCode: 404}
	}
	return []byte(page), nil
}

// mockImageFetcher returns a solid image for known URLs and nil otherwise
type mockImageFetcher struct {
	mu     sync.Mutex
	images map[string]image.Image
	calls  []string
}

func (m *mockImageFetcher) FetchImage(ctx context.Context, url string) image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	return m.images[url]
}

func (m *mockImageFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockAccentColor records the image it was asked about
type mockAccentColor struct {
	mu  sync.Mutex
	url string
}

func (m *mockAccentColor) ExtractColor(ctx context.Context, imageURL string, img image.Image) (*domain.RGBColor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = imageURL
	return &domain.RGBColor{R: 200, G: 10, B: 10}, nil
}

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
