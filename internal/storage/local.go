// Package storage menyimpan berkas unggahan (foto, audio, bukti transaksi) di disk lokal.
package storage

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindPhoto      Kind = "photos"
	KindAudio      Kind = "audio"
	KindAttachment Kind = "transactions"
)

const (
	maxMediaSize      = 10 << 20
	maxAttachmentSize = 5 << 20
	maxPhotoDimension = 1024

	// PublicPrefix adalah prefix URL yang dilayani app.Static.
	PublicPrefix = "/uploads"
)

type rule struct {
	exts    map[string]bool
	maxSize int64
	prefix  string
}

var rules = map[Kind]rule{
	KindPhoto: {
		exts:    map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true},
		maxSize: maxMediaSize,
		prefix:  "photo-",
	},
	KindAudio: {
		exts:    map[string]bool{".mp3": true, ".wav": true, ".m4a": true, ".ogg": true},
		maxSize: maxMediaSize,
		prefix:  "audio-",
	},
	KindAttachment: {
		exts:    map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".pdf": true},
		maxSize: maxAttachmentSize,
		prefix:  "proof-",
	},
}

type LocalStore struct {
	root string
	log  *zap.Logger
}

func NewLocalStore(root string, log *zap.Logger) (*LocalStore, error) {
	for kind := range rules {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("gagal membuat folder upload %s: %w", kind, err)
		}
	}
	return &LocalStore{root: root, log: log}, nil
}

func (s *LocalStore) Root() string { return s.root }

// Save memvalidasi lalu menyimpan berkas. Nilai kembali adalah path publik, mis. /uploads/photos/photo-<uuid>.jpg.
func (s *LocalStore) Save(file *multipart.FileHeader, kind Kind, field string) (string, error) {
	r, ok := rules[kind]
	if !ok {
		return "", apperr.Internal(fmt.Errorf("jenis berkas tidak dikenal: %s", kind))
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !r.exts[ext] {
		return "", apperr.Validation(field, fmt.Sprintf("Format berkas %s tidak didukung", ext))
	}
	if file.Size > r.maxSize {
		return "", apperr.Validation(field, fmt.Sprintf("Ukuran berkas melebihi %d MB", r.maxSize>>20))
	}

	src, err := file.Open()
	if err != nil {
		return "", apperr.Internal(err)
	}
	defer src.Close()

	if kind == KindPhoto {
		return s.savePhoto(src, r.prefix, field)
	}
	return s.saveRaw(src, kind, r.prefix+uuid.NewString()+ext)
}

func (s *LocalStore) saveRaw(src io.Reader, kind Kind, name string) (string, error) {
	dst, err := os.Create(filepath.Join(s.root, string(kind), name))
	if err != nil {
		return "", apperr.Internal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", apperr.Internal(err)
	}
	return path.Join(PublicPrefix, string(kind), name), nil
}

// savePhoto menormalkan foto: orientasi EXIF, maksimal 1024px, disimpan sebagai JPEG.
func (s *LocalStore) savePhoto(src io.Reader, prefix, field string) (string, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperr.Validation(field, "Berkas foto tidak dapat dibaca")
	}
	img = fitPhoto(img)

	name := prefix + uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.root, string(KindPhoto), name), imaging.JPEGQuality(85)); err != nil {
		return "", apperr.Internal(err)
	}
	return path.Join(PublicPrefix, string(KindPhoto), name), nil
}

func fitPhoto(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxPhotoDimension && b.Dy() <= maxPhotoDimension {
		return img
	}
	return imaging.Fit(img, maxPhotoDimension, maxPhotoDimension, imaging.Lanczos)
}

// Remove menghapus berkas berdasarkan path publik. Berkas yang sudah tidak ada diabaikan,
// kegagalan lain hanya dicatat.
func (s *LocalStore) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		full, err := s.resolve(p)
		if err != nil {
			s.log.Warn("path berkas ditolak", zap.String("path", p), zap.Error(err))
			continue
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			s.log.Warn("gagal menghapus berkas", zap.String("path", p), zap.Error(err))
		}
	}
}

// resolve memetakan /uploads/<kind>/<nama> ke path di disk dan menolak path di luar root.
func (s *LocalStore) resolve(public string) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+public), PublicPrefix+"/")
	if rel == "" || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("path di luar folder upload: %s", public)
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	within, err := filepath.Rel(s.root, full)
	if err != nil || within == "." || strings.HasPrefix(within, "..") {
		return "", fmt.Errorf("path di luar folder upload: %s", public)
	}
	return full, nil
}
