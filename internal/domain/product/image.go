// internal/domain/product/image.go
package product

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// ErrImageNotFound is returned when a product has no readable image file
var ErrImageNotFound = errors.New("product image not found")

// ImageStore resolves product images on local disk and renders resized copies
type ImageStore struct {
	basePath string
	maxWidth int
	log      *logrus.Logger
}

// NewImageStore creates an image store rooted at basePath
func NewImageStore(basePath string, maxWidth int, log *logrus.Logger) *ImageStore {
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return &ImageStore{
		basePath: basePath,
		maxWidth: maxWidth,
		log:      log,
	}
}

// Path returns the file to serve for the product. A positive width or height
// selects a resized copy, generated on first use and kept under thumbs/.
func (s *ImageStore) Path(p *Product, width, height int) (string, error) {
	name := p.Image
	if name == "" || strings.Contains(name, "..") || filepath.Base(name) != name {
		return "", ErrImageNotFound
	}

	original := filepath.Join(s.basePath, name)
	if _, err := os.Stat(original); err != nil {
		s.log.WithField("path", original).Warn("Product image missing on disk")
		return "", ErrImageNotFound
	}

	width, height = s.clamp(width), s.clamp(height)
	if width == 0 && height == 0 {
		return original, nil
	}

	thumbnail := filepath.Join(s.basePath, "thumbs", fmt.Sprintf("%dx%d", width, height), name)
	if _, err := os.Stat(thumbnail); err == nil {
		return thumbnail, nil
	}

	if err := s.generateThumbnail(original, thumbnail, width, height); err != nil {
		return "", err
	}
	return thumbnail, nil
}

func (s *ImageStore) generateThumbnail(src, dst string, width, height int) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)
	if err := imaging.Save(resized, dst); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}

	s.log.WithFields(logrus.Fields{"path": dst, "width": width, "height": height}).Info("Generated product thumbnail")
	return nil
}

func (s *ImageStore) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if s.maxWidth > 0 && v > s.maxWidth {
		return s.maxWidth
	}
	return v
}
