package catalog

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rcooper/trailhead-backend/models"
)

// DefaultMaxUploadBytes caps accepted images at 3 MiB.
const DefaultMaxUploadBytes int64 = 3 << 20

// Upload rejections. Non-fatal: the pipeline turns them into field errors.
var (
	ErrUploadType     = errors.New("image must be a JPEG or PNG")
	ErrUploadTooLarge = errors.New("image exceeds the size limit")
)

// FormFile is one incoming multipart file. Size is the declared size from
// the part header; the gate enforces the cap on the actual bytes as well.
type FormFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Namer produces a storage name from the upload time and the original
// filename. It must be a pure function so naming schemes stay testable and
// swappable.
type Namer func(now time.Time, original string) string

// TimestampNamer prefixes the original base name with the UTC upload time,
// with ':' and '.' flattened so the name is safe on any filesystem. The
// nanosecond stamp makes collisions between concurrent uploads a
// negligible, accepted risk.
func TimestampNamer(now time.Time, original string) string {
	stamp := now.UTC().Format("2006-01-02T15:04:05.000000000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return stamp + filepath.Base(original)
}

// UploadGate validates an incoming file and writes it to a kind-specific
// directory. The MIME check sniffs content; the client-declared type is
// recorded but never trusted.
type UploadGate struct {
	maxBytes int64
	allowed  []string
	namer    Namer
	now      func() time.Time
}

func NewUploadGate(maxBytes int64, namer Namer) *UploadGate {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadGate{
		maxBytes: maxBytes,
		allowed:  []string{"image/jpeg", "image/png"},
		namer:    namer,
		now:      time.Now,
	}
}

// Accept validates file and, if it passes, writes it under dir and returns
// the stored file record. ErrUploadType and ErrUploadTooLarge signal
// rejection; no file remains on disk after a rejection. Any other error is
// a storage failure.
func (g *UploadGate) Accept(file FormFile, dir string) (*models.StoredFile, error) {
	if file.Size > g.maxBytes {
		return nil, ErrUploadTooLarge
	}

	// DetectReader consumes the sniffed prefix; tee it so the stored file
	// is complete.
	var header bytes.Buffer
	mtype, err := mimetype.DetectReader(io.TeeReader(file.Content, &header))
	if err != nil {
		return nil, err
	}
	if !mimetype.EqualsAny(mtype.String(), g.allowed...) {
		return nil, ErrUploadType
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	now := g.now()
	name := g.namer(now, file.Name)
	path := filepath.Join(dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	content := io.MultiReader(&header, file.Content)
	written, err := io.Copy(dst, io.LimitReader(content, g.maxBytes+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	if written > g.maxBytes {
		// Declared size lied; the capped copy caught it.
		os.Remove(path)
		return nil, ErrUploadTooLarge
	}

	return &models.StoredFile{
		OriginalName: file.Name,
		MimeType:     mtype.String(),
		Size:         written,
		StorageName:  name,
		Path:         path,
		StoredAt:     now,
	}, nil
}
