package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"courseforge/internal/repository"
)

// Policy rejections are distinguishable from generic upload failures so the
// caller can surface a specific message.
var (
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported media type")
)

var allowedMediaPrefixes = []string{"image/", "video/", "audio/", "application/pdf"}

// MediaService stores uploaded binaries and hands back durable public URLs
type MediaService struct {
	mediaRepo repository.MediaRepo
	baseURL   string
	maxSize   int64
}

// NewMediaService creates a new media service
func NewMediaService(mediaRepo repository.MediaRepo, baseURL string, maxSize int64) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxSize:   maxSize,
	}
}

// Upload validates and stores a binary asset, returning its public URL.
// size may be -1 when unknown; the stream is then capped at the limit.
func (s *MediaService) Upload(name, contentType string, size int64, source io.Reader) (string, error) {
	if size > s.maxSize {
		return "", ErrFileTooLarge
	}
	if !allowedType(contentType) {
		return "", ErrUnsupportedType
	}

	// Cap the stream as well; Content-Length is advisory.
	limited := &limitedReader{r: source, remaining: s.maxSize}
	id, err := s.mediaRepo.Upload(name, contentType, limited)
	if err != nil {
		if limited.exceeded {
			return "", ErrFileTooLarge
		}
		return "", err
	}
	if limited.exceeded {
		return "", ErrFileTooLarge
	}

	return fmt.Sprintf("%s/v1/media/%s/%s", s.baseURL, id, name), nil
}

// Open returns a stored asset's content stream and metadata
func (s *MediaService) Open(id string) (io.ReadCloser, *repository.MediaFile, error) {
	return s.mediaRepo.Open(id)
}

func allowedType(contentType string) bool {
	for _, prefix := range allowedMediaPrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// limitedReader errors once more than remaining bytes have been read.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		l.exceeded = true
		return 0, ErrFileTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		l.exceeded = true
		return n, ErrFileTooLarge
	}
	return n, err
}
