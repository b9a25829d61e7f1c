package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go-worktrack/internal/shared/apperror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Class is the sub directory an upload is filed under.
type Class string

const (
	ClassPolicy  Class = "policies"
	ClassInvoice Class = "invoices"
	ClassCareer  Class = "careers"
	ClassWiki    Class = "wiki"
)

const MimePDF = "application/pdf"

var (
	ErrEmptyUpload = apperror.New(apperror.CodeValidation, "uploaded file is empty", http.StatusBadRequest)
	ErrTooLarge    = apperror.New(apperror.CodeValidation, "uploaded file is too large", http.StatusBadRequest)
	ErrBadPath     = apperror.New(apperror.CodeInvalidInput, "invalid file path", http.StatusBadRequest)
	ErrNotFound    = apperror.New(apperror.CodeNotFound, "file not found", http.StatusNotFound)
)

// Upload is a file received from a client.
type Upload struct {
	FileName string
	Size     int64
	Content  io.ReadSeeker
}

// Object describes a stored file. Path is relative to the store root.
type Object struct {
	Path         string
	OriginalName string
	Size         int64
	ContentType  string
}

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Store interface {
	Save(ctx context.Context, class Class, upload Upload) (Object, error)
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	Remove(ctx context.Context, relPath string) error
}

type localStore struct {
	root    string
	maxSize int64
	now     func() time.Time
	logger  *zap.Logger
}

func NewLocalStore(root string, maxSize int64, logger ...*zap.Logger) (Store, error) {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStore{root: abs, maxSize: maxSize, now: time.Now, logger: l}, nil
}

// GenerateName builds YYYYMMDD_HHMMSS_<8 hex><ext> from the original file name.
func GenerateName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s%s", now.Format("20060102_150405"), suffix, ext)
}

// Sniff detects the content type from the leading bytes and rewinds content.
func Sniff(content io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(content)
	if err != nil {
		return "", err
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}

func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func IsPDF(contentType string) bool {
	return contentType == MimePDF
}

func (s *localStore) Save(ctx context.Context, class Class, upload Upload) (Object, error) {
	if upload.Content == nil || upload.Size == 0 {
		return Object{}, ErrEmptyUpload
	}
	if s.maxSize > 0 && upload.Size > s.maxSize {
		return Object{}, ErrTooLarge
	}

	contentType, err := Sniff(upload.Content)
	if err != nil {
		return Object{}, err
	}

	dir := filepath.Join(s.root, string(class))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Object{}, err
	}

	name := GenerateName(upload.FileName, s.now())
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Object{}, err
	}

	written, err := io.Copy(dst, upload.Content)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return Object{}, err
	}

	rel := path.Join(string(class), name)
	s.logger.Debug("file stored",
		zap.String("path", rel),
		zap.String("original_name", upload.FileName),
		zap.Int64("size", written),
	)

	return Object{
		Path:         rel,
		OriginalName: filepath.Base(upload.FileName),
		Size:         written,
		ContentType:  contentType,
	}, nil
}

func (s *localStore) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *localStore) Remove(ctx context.Context, relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// resolve maps a stored relative path to an absolute one inside the root.
func (s *localStore) resolve(relPath string) (string, error) {
	if relPath == "" || filepath.IsAbs(relPath) {
		return "", ErrBadPath
	}
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrBadPath
	}
	return full, nil
}
