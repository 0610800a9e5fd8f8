package upload

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Transport stores one object under key and returns the URL it is reachable at.
type Transport interface {
	Name() string
	Put(ctx context.Context, key string, data []byte) (string, error)
}

var (
	unsafeSegment = regexp.MustCompile(`[^a-z0-9_-]+`)
	unsafeExt     = regexp.MustCompile(`[^a-z0-9]+`)
)

const (
	defaultExt   = "bin"
	maxExtLength = 10
)

// ObjectKey names an upload "<uuid>.<ext>", nested under a sanitized category folder when one is given.
func ObjectKey(filename, category string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	ext = unsafeExt.ReplaceAllString(ext, "")
	if len(ext) > maxExtLength {
		ext = ext[:maxExtLength]
	}
	if ext == "" {
		ext = defaultExt
	}

	name := uuid.NewString() + "." + ext
	if folder := sanitizeFolder(category); folder != "" {
		return folder + "/" + name
	}
	return name
}

func sanitizeFolder(category string) string {
	folder := unsafeSegment.ReplaceAllString(strings.ToLower(strings.TrimSpace(category)), "-")
	return strings.Trim(folder, "-")
}

func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		out += "/" + p
	}
	return out
}
