package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
)

// MaxUploadSize is the largest file the image host accepts from us.
const MaxUploadSize = 5 * 1024 * 1024 // 5 MiB

// uploadField is the multipart form field the host expects the file under.
const uploadField = "image"

// uploadResponse represents the envelope returned by the image host.
type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// ImageHost uploads images to an external hosting endpoint and returns the
// public URL. The upload is a pass-through: no resizing or re-encoding.
type ImageHost struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewImageHost(endpoint, apiKey string) *ImageHost {
	logger := log.With().Str("component", "imageHost").Logger()
	return &ImageHost{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// Upload validates the file and forwards it to the image host. Validation
// is ordered and short-circuits: content type first, then size. Nothing
// leaves the process when validation fails.
func (h *ImageHost) Upload(ctx context.Context, file models.Upload) (string, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", errs.NewInvalidFileTypeError(file.ContentType)
	}
	if file.Size > MaxUploadSize {
		return "", errs.NewFileTooLargeError(file.Size, MaxUploadSize)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(uploadField, file.Name)
	if err != nil {
		return "", errs.NewUploadFailedError(err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return "", errs.NewUploadFailedError(err)
	}
	if err := writer.Close(); err != nil {
		return "", errs.NewUploadFailedError(err)
	}

	url := fmt.Sprintf("%s?key=%s", h.endpoint, h.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", errs.NewUploadFailedError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error().Err(err).Str("file", file.Name).Msg("image upload request failed")
		return "", errs.NewUploadFailedError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewUploadFailedError(err)
	}

	if resp.StatusCode != http.StatusOK {
		h.logger.Error().
			Int("status", resp.StatusCode).
			Str("file", file.Name).
			Msg("image host returned non-200 status")
		return "", errs.NewUploadFailedError(fmt.Errorf("image host returned status %d", resp.StatusCode))
	}

	var envelope uploadResponse
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return "", errs.NewUploadFailedError(err)
	}
	if !envelope.Success || envelope.Data.URL == "" {
		return "", errs.NewUploadFailedError(fmt.Errorf("image host reported failure"))
	}

	h.logger.Info().Str("file", file.Name).Str("url", envelope.Data.URL).Msg("image uploaded")
	return envelope.Data.URL, nil
}
