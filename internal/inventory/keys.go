package inventory

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// Prefix returns the key prefix holding every file of namespace ns:
// "users/<ns>/files/".
func Prefix(ns string) string {
	return common.UsersPrefix + "/" + ns + "/" + common.FilesSegment + "/"
}

// ObjectKey builds the key for a file uploaded at t:
// "users/<ns>/files/<unixMillis>-<filename>". filename must be a base name;
// any "/" in it is replaced with "_" so the key stays inside the prefix.
func ObjectKey(ns string, t time.Time, filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	return Prefix(ns) + strconv.FormatInt(t.UnixMilli(), 10) + "-" + filename
}

// DisplayName recovers the original filename from key: the last path
// segment with one leading "<digits>-" upload stamp removed.
func DisplayName(key string) string {
	name := key
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		name = key[i+1:]
	}

	stamp, rest, ok := strings.Cut(name, "-")
	if !ok || stamp == "" {
		return name
	}
	for _, r := range stamp {
		if r < '0' || r > '9' {
			return name
		}
	}
	return rest
}

// BelongsTo reports whether key names a file directly under ns's prefix.
func BelongsTo(key, ns string) bool {
	rest, ok := strings.CutPrefix(key, Prefix(ns))
	return ok && rest != "" && !strings.Contains(rest, "/")
}
