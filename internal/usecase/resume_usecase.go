package usecase

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/metrics"
	"github.com/ruhienterprises/careers-api/internal/service"
	"github.com/ruhienterprises/careers-api/internal/util"
	"github.com/sirupsen/logrus"
)

const MaxResumeSize int64 = 5 * 1024 * 1024

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// resumeTypes maps accepted MIME types to the extension used when the
// original filename has none.
var resumeTypes = map[string]string{
	ContentTypePDF:  "pdf",
	ContentTypeDOCX: "docx",
}

type ResumeFile struct {
	Filename    string
	ContentType string // as declared by the client
	Size        int64
	Body        []byte
}

type ResumeUsecase struct {
	storage      service.StorageServiceInterface
	pdf          service.PDFServiceInterface
	cacheControl string
	now          func() time.Time
}

// NewResumeUsecase builds the upload handler. pdf may be nil to skip the
// page check.
func NewResumeUsecase(storage service.StorageServiceInterface, pdf service.PDFServiceInterface, cacheControl string) *ResumeUsecase {
	return &ResumeUsecase{storage: storage, pdf: pdf, cacheControl: cacheControl, now: time.Now}
}

// Validate runs every local check. It never touches the network.
func (uc *ResumeUsecase) Validate(file ResumeFile) error {
	contentType := normalizeContentType(file.ContentType)
	if _, ok := resumeTypes[contentType]; !ok {
		return resumeError("Please upload a PDF or Microsoft Word (.docx) file")
	}

	size := file.Size
	if n := int64(len(file.Body)); n > size {
		size = n
	}
	if size > MaxResumeSize {
		return resumeError("File size must be less than 5MB")
	}
	if size == 0 {
		return resumeError("The selected file is empty")
	}

	if !contentMatches(contentType, file.Body) {
		return resumeError("File content does not match a PDF or Word document")
	}
	if contentType == ContentTypePDF && uc.pdf != nil {
		pages, err := uc.pdf.PageCount(file.Body)
		if err != nil || pages == 0 {
			return resumeError("The PDF could not be read")
		}
	}
	return nil
}

// Upload validates the file, stores it under a fresh key without
// overwriting, and returns its public URL.
func (uc *ResumeUsecase) Upload(ctx context.Context, file ResumeFile) (*dto.ResumeUploadDTO, error) {
	if err := uc.Validate(file); err != nil {
		metrics.ResumeUploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	contentType := normalizeContentType(file.ContentType)
	key := uc.storageKey(file.Filename, contentType)
	err := uc.storage.Upload(ctx, key, bytes.NewReader(file.Body), service.UploadOptions{
		ContentType:  contentType,
		CacheControl: uc.cacheControl,
		Upsert:       false,
	})
	if err != nil {
		metrics.ResumeUploads.WithLabelValues("failed").Inc()
		logrus.WithError(err).WithField("key", key).Error("resume upload failed")
		return nil, fmt.Errorf("upload resume: %w: %w", ErrUpstream, err)
	}

	metrics.ResumeUploads.WithLabelValues("stored").Inc()
	return &dto.ResumeUploadDTO{
		URL:         uc.storage.PublicURL(key),
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(file.Body)),
	}, nil
}

// storageKey is "<unix millis>-<random token>.<ext>".
func (uc *ResumeUsecase) storageKey(filename, contentType string) string {
	ext := sanitizeExt(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = resumeTypes[contentType]
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s.%s", uc.now().UnixMilli(), token, ext)
}

func sanitizeExt(ext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeContentType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}

// contentMatches sniffs the bytes and accepts the declared type or one of
// its parents. A .docx may sniff as a plain zip container.
func contentMatches(contentType string, body []byte) bool {
	for m := mimetype.Detect(body); m != nil; m = m.Parent() {
		if m.Is(contentType) {
			return true
		}
		if contentType == ContentTypeDOCX && m.Is("application/zip") {
			return true
		}
	}
	return false
}

func resumeError(message string) error {
	return util.NewFormError(message, map[string]string{"resume": message})
}
