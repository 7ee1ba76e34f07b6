package videofile

import (
	"regexp"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		size        int64
		contentType string
		wantErr     error
	}{
		{"mp4 ok", "intro.mp4", 5 << 20, "video/mp4", nil},
		{"mov ok", "intro.mov", 5 << 20, "video/quicktime", nil},
		{"avi ok", "intro.avi", 5 << 20, "video/x-msvideo", nil},
		{"webm ok", "intro.webm", 5 << 20, "video/webm", nil},
		{"exactly max size", "intro.mp4", MaxSize, "video/mp4", nil},
		{"one byte too large", "intro.mp4", MaxSize + 1, "video/mp4", ErrTooLarge},
		{"way too large", "intro.mp4", 2 * MaxSize, "video/mp4", ErrTooLarge},
		{"image rejected", "photo.png", 1 << 20, "image/png", ErrUnsupportedType},
		{"mkv rejected", "intro.mkv", 1 << 20, "video/x-matroska", ErrUnsupportedType},
		{"empty type rejected", "intro.mp4", 1 << 20, "", ErrUnsupportedType},
		{"case-insensitive type", "intro.mp4", 1 << 20, "VIDEO/MP4", nil},
		{"type with params", "intro.webm", 1 << 20, "video/webm; codecs=vp9", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.filename, tc.size, tc.contentType)
			if err != tc.wantErr {
				t.Fatalf("Validate(%q, %d, %q) = %v, want %v", tc.filename, tc.size, tc.contentType, err, tc.wantErr)
			}
		})
	}
}

var keyRE = regexp.MustCompile(`^\d{13}-[a-z0-9]{13}\.mp4$`)

func TestStorageKeyShape(t *testing.T) {
	key := StorageKey("My Intro Video.MP4")
	if !keyRE.MatchString(key) {
		t.Fatalf("key %q does not match <millis>-<suffix>.mp4", key)
	}
}

func TestStorageKeyKeepsExtension(t *testing.T) {
	for _, name := range []string{"a.mov", "b.webm", "c.avi"} {
		key := StorageKey(name)
		want := name[strings.IndexByte(name, '.'):]
		if !strings.HasSuffix(key, want) {
			t.Fatalf("key %q for %q should end in %q", key, name, want)
		}
	}
}

func TestStorageKeyNoExtension(t *testing.T) {
	key := StorageKey("intro")
	if strings.Contains(key, ".") {
		t.Fatalf("key %q for extensionless file should have no extension", key)
	}
}

func TestStorageKeysDiffer(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key := StorageKey("intro.mp4")
		if seen[key] {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = true
	}
}
