package assets

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/webp"

	"go-shatter/internal/defs"
)

// ImageManager управляет загрузкой и кэшированием изображений страницы.
// Если файла нет, изображение рисуется процедурно, чтобы страница
// всегда была разрушаемой.
type ImageManager struct {
	images map[string]image.Image
}

// NewImageManager создает новый экземпляр ImageManager.
func NewImageManager() *ImageManager {
	return &ImageManager{images: make(map[string]image.Image)}
}

// Decode читает PNG, JPEG или WebP.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	log.Printf("[Assets] Decoded %s (%s, %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// loadSingleImage загружает одно изображение; при ошибке — заглушка.
func (m *ImageManager) loadSingleImage(def defs.ImageDefinition) image.Image {
	if img, ok := m.images[def.ID]; ok {
		return img
	}
	var img image.Image
	if def.Path != "" {
		decoded, err := Decode(def.Path)
		if err != nil {
			log.Printf("[Assets] Warning: %v (using placeholder for %s)", err, def.ID)
		} else {
			img = decoded
		}
	}
	if img == nil {
		img = Placeholder(def.Slug, int(def.Width), int(def.Height))
	}
	m.images[def.ID] = img
	return img
}

// LoadPageImages загружает все изображения страницы.
func (m *ImageManager) LoadPageImages(page *defs.PageDefinition) {
	for _, def := range page.Images {
		m.loadSingleImage(def)
	}
}

// Image возвращает изображение по id блока.
func (m *ImageManager) Image(id string) (image.Image, bool) {
	img, ok := m.images[id]
	return img, ok
}

// Len — число изображений в кэше.
func (m *ImageManager) Len() int {
	return len(m.images)
}

// Cleanup очищает кэш.
func (m *ImageManager) Cleanup() {
	clear(m.images)
}

// Placeholder рисует градиент с диагональной сеткой, цвета берутся из
// хэша слага, так что у каждого изображения свой узнаваемый вид.
func Placeholder(slug string, w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	hash := fnv.New32a()
	hash.Write([]byte(slug))
	sum := hash.Sum32()
	from := color.RGBA{uint8(sum), uint8(sum >> 8), uint8(sum >> 16), 255}
	to := color.RGBA{255 - from.R/2, 255 - from.G/2, 255 - from.B/2, 255}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(x+y) / float64(w+h)
			c := color.RGBA{
				R: lerp8(from.R, to.R, t),
				G: lerp8(from.G, to.G, t),
				B: lerp8(from.B, to.B, t),
				A: 255,
			}
			if (x+y)%32 == 0 || (x-y+h*32)%32 == 0 {
				c = color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
