package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"file-exchange-api/config"
	"file-exchange-api/internal/application/ports"
	domain "file-exchange-api/internal/domain/file"
	"file-exchange-api/internal/domain/user"
	"file-exchange-api/internal/infrastructure/mq"
)

var ErrInvalidFileType = errors.New("invalid file type")

const maxBaseNameLen = 100

var windowsReserved = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

type FileService struct {
	blob           ports.BlobStore
	fileRepository domain.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger

	allowedExtensions map[string]struct{}
}

func NewFileService(
	blob ports.BlobStore,
	fileRepository domain.Repository,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	cfg config.Storage,
) ports.FileService {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &FileService{
		blob:           blob,
		fileRepository: fileRepository,
		mq:             rbMQ,
		mCounter:       mCounter,
		logger:         logger,

		allowedExtensions: allowed,
	}
}

// Upload validates the extension, writes the bytes through the blob
// store and registers the file. The role gate runs upstream; the
// uploader here is already known to be an ops user.
func (fs *FileService) Upload(
	ctx context.Context,
	uploader *user.User,
	in *multipart.FileHeader,
) (*domain.StoredFile, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.Filename), "."))
	if _, ok := fs.allowedExtensions[ext]; !ok || ext == "" {
		return nil, ErrInvalidFileType
	}

	filename := filepath.Base(sanitizeFileName(in.Filename))
	storageKey := genStorageKey(filename, uploader.ID)

	f, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	if _, err = fs.blob.Save(storageKey, f); err != nil {
		return nil, err
	}

	out, err := fs.fileRepository.CreateFile(ctx, domain.StoredFile{
		Filename:   filename,
		StorageKey: storageKey,
		UploadedBy: uploader.ID,
	})
	if err != nil {
		return nil, err
	}

	fs.notifyUploaded(out)
	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return out, nil
}

func (fs *FileService) ListFiles(ctx context.Context) (domain.StoredFiles, error) {
	return fs.fileRepository.FetchFiles(ctx)
}

func (fs *FileService) FileByID(ctx context.Context, id domain.ID) (*domain.StoredFile, error) {
	return fs.fileRepository.FetchFileByID(ctx, id)
}

func (fs *FileService) FilePath(f *domain.StoredFile) (string, error) {
	return fs.blob.Path(f.StorageKey)
}

func (fs *FileService) notifyUploaded(f *domain.StoredFile) {
	e := mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Kind:    mq.KindUploadNotice,
		Subject: "New file available",
		Body:    f.Filename,
	}
	select {
	case fs.mq.GetInputChan() <- e:
	default:
		fs.logger.Warn("notification queue full, event dropped", zap.String("kind", e.Kind))
	}
}

// genStorageKey: "documents/YYYY/MM/DD/<ts-nanosec>/<user-id>/<filename>.ext"
func genStorageKey(filename string, uploader user.ID) string {
	now := time.Now().UTC()
	return fmt.Sprintf(
		"documents/%04d/%02d/%02d/%s/%d/%s",
		now.Year(), int(now.Month()), now.Day(),
		now.Format("20060102T150405.000000000Z"),
		uploader,
		filename,
	)
}

// sanitizeFileName makes the display name safe ASCII, keeping the
// extension.
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	rawExt := path.Ext(s)
	base := strings.TrimSuffix(s, rawExt)
	ext := strings.ToLower(rawExt)
	if ext == "." {
		ext = ""
	}

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		case r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
