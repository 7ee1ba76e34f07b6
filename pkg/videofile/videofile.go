// Package videofile validates candidate video uploads and derives object
// storage keys. It is pure metadata logic; the actual byte transfer belongs
// to the storage client.
package videofile

import (
	"crypto/rand"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MaxSize is the upload cap in bytes.
const MaxSize = 100 << 20 // 100 MiB

var (
	ErrTooLarge        = errors.New("video file size must be less than 100MB")
	ErrUnsupportedType = errors.New("only MP4, MOV, AVI, and WebM video formats are allowed")
)

var allowedTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true, // .mov
	"video/x-msvideo": true, // .avi
	"video/webm":      true,
}

// Validate checks the candidate-supplied file metadata. It must be called
// before any bytes are sent to storage.
func Validate(filename string, size int64, contentType string) error {
	if size > MaxSize {
		return ErrTooLarge
	}
	ct := contentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if !allowedTypes[ct] {
		return ErrUnsupportedType
	}
	return nil
}

const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// StorageKey derives a collision-resistant object key from a millisecond
// timestamp, a random base36 suffix and the original file extension.
// Collisions are treated as negligible, not eliminated; the storage client
// additionally refuses to overwrite existing keys.
func StorageKey(filename string) string {
	suffix := make([]byte, 13)
	if _, err := rand.Read(suffix); err != nil {
		panic(fmt.Sprintf("videofile: rand.Read: %v", err))
	}
	for i, b := range suffix {
		suffix[i] = keyAlphabet[int(b)%len(keyAlphabet)]
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
