package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"landing-builder-backend/internal/metrics"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/internal/storage"
	"landing-builder-backend/pkg/logger"
	"landing-builder-backend/pkg/media"
	"landing-builder-backend/pkg/utils"
	"landing-builder-backend/pkg/validator"
)

var (
	ErrUploadTooLarge       = errors.New("file size exceeds maximum allowed size")
	ErrUploadEmpty          = errors.New("file is empty")
	ErrUnsupportedMediaType = errors.New("file type not allowed")
	ErrUploadFailed         = errors.New("upload failed")
)

// MP4-family types whose duration is read from the movie header.
var durationTypes = []string{"video/mp4", "video/quicktime", "video/x-m4v"}

type UploadService struct {
	store   storage.MediaStore
	maxSize int64
	now     func() time.Time
}

func NewUploadService(store storage.MediaStore, maxSize int64) *UploadService {
	return &UploadService{
		store:   store,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// UploadFile stores a multipart upload.
func (s *UploadService) UploadFile(ctx context.Context, file *multipart.FileHeader) (*models.UploadResponse, error) {
	if file == nil {
		return nil, ErrUploadEmpty
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		metrics.ObserveUpload(metrics.UploadRejected, 0)
		return nil, ErrUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		metrics.ObserveUpload(metrics.UploadFailed, 0)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer src.Close()

	return s.Upload(ctx, file.Filename, src)
}

// Upload validates r by its sniffed content type, stores it and returns its
// public URL. The original name only seeds the stored filename.
func (s *UploadService) Upload(ctx context.Context, originalName string, r io.Reader) (*models.UploadResponse, error) {
	spool, size, err := s.spool(r)
	if spool != nil {
		defer func() {
			spool.Close()
			os.Remove(spool.Name())
		}()
	}
	if err != nil {
		result := metrics.UploadFailed
		if errors.Is(err, ErrUploadTooLarge) || errors.Is(err, ErrUploadEmpty) {
			result = metrics.UploadRejected
		}
		metrics.ObserveUpload(result, 0)
		return nil, err
	}

	mime, err := mimetype.DetectReader(spool)
	if err != nil {
		metrics.ObserveUpload(metrics.UploadFailed, 0)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	contentType := mime.String()
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	if !validator.ValidateMediaContentType(contentType) {
		metrics.ObserveUpload(metrics.UploadRejected, 0)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	response := &models.UploadResponse{
		Filename:    s.generateFilename(originalName, mime.Extension()),
		ContentType: contentType,
		Size:        size,
	}

	if isDurationType(contentType) {
		if _, err := spool.Seek(0, io.SeekStart); err != nil {
			metrics.ObserveUpload(metrics.UploadFailed, 0)
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		duration, err := media.MP4Duration(spool)
		if err != nil {
			logger.Warn("Could not read video duration", map[string]interface{}{
				"filename": response.Filename,
				"error":    err.Error(),
			})
		} else {
			response.Duration = duration.Seconds()
		}
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		metrics.ObserveUpload(metrics.UploadFailed, 0)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	url, err := s.store.Put(ctx, response.Filename, spool, size, contentType)
	if err != nil {
		metrics.ObserveUpload(metrics.UploadFailed, 0)
		logger.Error(err, "Failed to store upload", map[string]interface{}{"filename": response.Filename})
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	response.URL = url
	metrics.ObserveUpload(metrics.UploadSuccess, size)
	return response, nil
}

// Delete removes a previously uploaded file. URLs the store does not manage
// are ignored.
func (s *UploadService) Delete(ctx context.Context, url string) error {
	key, ok := s.store.KeyFromURL(url)
	if !ok {
		return nil
	}
	return s.store.Delete(ctx, key)
}

// spool copies r to a temporary file so it can be sniffed, measured and
// streamed to the store. The returned file is positioned at its start.
func (s *UploadService) spool(r io.Reader) (*os.File, int64, error) {
	tmp, err := os.CreateTemp("", "landing-upload-*")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	size, err := io.Copy(tmp, src)
	if err != nil {
		return tmp, 0, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if s.maxSize > 0 && size > s.maxSize {
		return tmp, 0, ErrUploadTooLarge
	}
	if size == 0 {
		return tmp, 0, ErrUploadEmpty
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return tmp, 0, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return tmp, size, nil
}

// generateFilename builds "<slug>-<short id><ext>". Names are never reused,
// so a later upload cannot replace media another page still points at.
func (s *UploadService) generateFilename(originalName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	cleaned := utils.GenerateSlug(base)
	if cleaned == "" {
		cleaned = "media"
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s/%s-%s%s", s.now().UTC().Format("2006/01"), cleaned, id, ext)
}

func isDurationType(contentType string) bool {
	for _, t := range durationTypes {
		if contentType == t {
			return true
		}
	}
	return false
}
