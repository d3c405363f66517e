package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"scrimhub/internal/config"
	"scrimhub/internal/models"
	"scrimhub/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	defaultImageUploadDir = "/tmp/scrimhub/uploads/images"
	defaultMaxUploadMB    = 10
	masterMaxSize         = 2048
	jpegQuality           = 82
	webpQuality           = 70
)

// variantSizes is the ladder of renditions produced for every upload.
var variantSizes = []int{256, 640, 1080}

type UploadImageInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

type ImageService struct {
	imageRepo     repository.ImageRepository
	uploadDir     string
	maxUploadSize int64
}

func NewImageService(imageRepo repository.ImageRepository, cfg *config.Config) *ImageService {
	uploadDir := defaultImageUploadDir
	maxUploadMB := defaultMaxUploadMB
	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadMB = cfg.ImageMaxUploadSizeMB
		}
	}
	return &ImageService{
		imageRepo:     imageRepo,
		uploadDir:     uploadDir,
		maxUploadSize: int64(maxUploadMB) * 1024 * 1024,
	}
}

// Upload validates and decodes the payload, then writes the master plus the
// resize ladder as webp and jpeg, addressed by the content hash. Re-uploading
// identical bytes returns the existing record.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (*models.Image, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSize {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSize/(1024*1024)))
	}
	if !isAllowedImageMIME(http.DetectContentType(in.Content)) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	sum := sha256.Sum256(in.Content)
	hash := hex.EncodeToString(sum[:])

	if existing, err := s.imageRepo.GetByHash(ctx, hash); err == nil {
		return existing, nil
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	master := resizeToFit(decoded, masterMaxSize)
	bounds := master.Bounds()

	img := &models.Image{
		Hash:             hash,
		UserID:           in.UserID,
		OriginalFilename: in.Filename,
		SizeBytes:        int64(len(in.Content)),
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, err
	}

	sizes := append([]int{masterMaxSize}, variantSizes...)
	for _, size := range sizes {
		rendition := master
		if size != masterMaxSize {
			rendition = resizeToFit(master, size)
		}
		for _, enc := range []struct {
			format string
			fn     func(image.Image) ([]byte, error)
		}{{"webp", encodeWebP}, {"jpeg", encodeJPEG}} {
			data, err := enc.fn(rendition)
			if err != nil {
				return nil, models.NewInternalError(err)
			}
			rel := filepath.Join(hash, fmt.Sprintf("%d.%s", size, enc.format))
			if err := writeFile(filepath.Join(s.uploadDir, rel), data); err != nil {
				return nil, models.NewInternalError(err)
			}
			variant := &models.ImageVariant{
				ImageID: img.ID,
				SizePx:  size,
				Format:  enc.format,
				Path:    rel,
			}
			if err := s.imageRepo.AddVariant(ctx, variant); err != nil {
				return nil, err
			}
		}
	}

	return s.imageRepo.GetByHash(ctx, hash)
}

func (s *ImageService) GetByHash(ctx context.Context, hash string) (*models.Image, error) {
	if !isValidImageHash(hash) {
		return nil, models.NewValidationError("Invalid image hash")
	}
	return s.imageRepo.GetByHash(ctx, hash)
}

// ResolveVariant maps (hash, size, format) to the file path to serve,
// falling back to the nearest larger rendition.
func (s *ImageService) ResolveVariant(ctx context.Context, hash string, sizePx int, format string) (string, error) {
	if !isValidImageHash(hash) {
		return "", models.NewValidationError("Invalid image hash")
	}
	if format != "webp" && format != "jpeg" {
		return "", models.NewValidationError("Unsupported format")
	}

	variant, err := s.imageRepo.GetVariant(ctx, hash, sizePx, format)
	if err == nil {
		return filepath.Join(s.uploadDir, variant.Path), nil
	}
	if !repository.IsNotFound(err) {
		return "", err
	}
	for _, size := range append(variantSizes, masterMaxSize) {
		if size <= sizePx {
			continue
		}
		if v, err := s.imageRepo.GetVariant(ctx, hash, size, format); err == nil {
			return filepath.Join(s.uploadDir, v.Path), nil
		}
	}
	return "", models.NewNotFoundError("Image variant", hash)
}

// MasterURL is the URL stored on posts and avatars. The engine only ever
// keeps these strings, never image IDs.
func (s *ImageService) MasterURL(hash string) string {
	return fmt.Sprintf("/media/i/%s/%d.webp", hash, masterMaxSize)
}

func (s *ImageService) VariantURL(hash string, sizePx int, format string) string {
	return fmt.Sprintf("/media/i/%s/%d.%s", hash, sizePx, format)
}

func isValidImageHash(hash string) bool {
	if len(hash) != 64 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0])) {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

// resizeToFit scales src down so the longest edge is at most maxSize,
// preserving aspect ratio. Images already within bounds pass through.
func resizeToFit(src image.Image, maxSize int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return src
	}

	scale := float64(maxSize) / float64(w)
	if h > w {
		scale = float64(maxSize) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
