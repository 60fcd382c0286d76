package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// FileKey creates an MD5 key from a file's name, size and last-modified
// timestamp, used to detect files already tracked by an upload buffer.
func FileKey(name string, size int64, lastModified int64) string {
	return hashString(fmt.Sprintf("%s|%d|%d", strings.TrimSpace(strings.ToLower(name)), size, lastModified))
}

// HashString returns the MD5 hash of an arbitrary string.
func HashString(input string) string {
	return hashString(strings.TrimSpace(strings.ToLower(input)))
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
