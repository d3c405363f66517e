package server

import (
	"io"
	"strconv"
	"strings"

	"scrimhub/internal/models"
	"scrimhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ImageResponse is the API shape for an uploaded image and its renditions.
type ImageResponse struct {
	ID        uint              `json:"id"`
	Hash      string            `json:"hash"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	SizeBytes int64             `json:"size_bytes"`
	URL       string            `json:"url"`
	Variants  map[string]string `json:"variants"`
}

// UploadImage handles POST /api/images/upload
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	uploaded, err := s.imageService.Upload(c.UserContext(), service.UploadImageInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(s.toImageResponse(uploaded))
}

// GetImage handles GET /api/images/:hash
func (s *Server) GetImage(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))

	img, err := s.imageService.GetByHash(c.UserContext(), hash)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(s.toImageResponse(img))
}

// ServeImageVariant handles GET /media/i/:hash/:file where file is
// "<size>.<format>", e.g. 640.webp. Missing sizes fall back to the nearest
// larger rendition.
func (s *Server) ServeImageVariant(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))
	file := c.Params("file")

	sizeStr, format, found := strings.Cut(file, ".")
	if !found {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid variant path"))
	}
	sizePx, err := strconv.Atoi(sizeStr)
	if err != nil || sizePx <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid variant size"))
	}

	path, err := s.imageService.ResolveVariant(c.UserContext(), hash, sizePx, format)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.SendFile(path)
}

func (s *Server) toImageResponse(image *models.Image) ImageResponse {
	variants := make(map[string]string, len(image.Variants))
	for _, v := range image.Variants {
		variants[strconv.Itoa(v.SizePx)+"."+v.Format] = s.imageService.VariantURL(image.Hash, v.SizePx, v.Format)
	}
	return ImageResponse{
		ID:        image.ID,
		Hash:      image.Hash,
		Width:     image.Width,
		Height:    image.Height,
		SizeBytes: image.SizeBytes,
		URL:       s.imageService.MasterURL(image.Hash),
		Variants:  variants,
	}
}
