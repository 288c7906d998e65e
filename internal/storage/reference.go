package storage

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

const uploadMarker = "/upload/"

var (
	versionSegment        = regexp.MustCompile(`^v\d+$`)
	transformationSegment = regexp.MustCompile(`^[a-z]{1,3}_[^/,]+(,[a-z]{1,3}_[^/,]+)*$`)
)

// MediaRef points at one stored object. PublicID doubles as the object key.
type MediaRef struct {
	URL          string
	PublicID     string
	ContentType  string
	ResourceType string
	Size         int64
}

// BuildURL issues the public URL for publicID: {base}/upload/v{unix}/{publicID}{ext}.
func BuildURL(baseURL, publicID, ext string, version time.Time) string {
	return fmt.Sprintf("%s%sv%d/%s%s",
		strings.TrimSuffix(baseURL, "/"),
		uploadMarker,
		version.Unix(),
		publicID,
		ext)
}

// PublicIDFromURL resolves a previously issued URL back to its public id using
// only the URL's structure. Leading version and transformation segments after
// "/upload/" are skipped and the extension of the last segment is dropped.
func PublicIDFromURL(mediaURL string) (string, bool) {
	idx := strings.Index(mediaURL, uploadMarker)
	if idx < 0 {
		return "", false
	}

	rest := mediaURL[idx+len(uploadMarker):]
	if cut := strings.IndexAny(rest, "?#"); cut >= 0 {
		rest = rest[:cut]
	}

	segments := strings.Split(strings.Trim(rest, "/"), "/")
	segments = segments[leadingSegments(segments):]
	if len(segments) == 0 || segments[0] == "" {
		return "", false
	}

	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], path.Ext(segments[last]))
	if segments[last] == "" {
		return "", false
	}

	for _, s := range segments {
		if s == "" || s == "." || s == ".." {
			return "", false
		}
	}

	return strings.Join(segments, "/"), true
}

// transformationKeys are the parameter prefixes accepted in an unversioned URL.
var transformationKeys = map[string]bool{
	"a": true, "ar": true, "b": true, "bo": true, "c": true, "co": true, "d": true,
	"dpr": true, "e": true, "f": true, "fl": true, "g": true, "h": true, "l": true,
	"o": true, "q": true, "r": true, "t": true, "u": true, "w": true, "x": true,
	"y": true, "z": true,
}

func isKnownTransformation(segment string) bool {
	if !transformationSegment.MatchString(segment) {
		return false
	}
	for _, param := range strings.Split(segment, ",") {
		key, _, _ := strings.Cut(param, "_")
		if !transformationKeys[key] {
			return false
		}
	}
	return true
}

// leadingSegments counts the segments that precede the public id. When a
// version segment is present everything up to it must be a transformation.
// Without one only segments built from known transformation keys are skipped,
// so folders such as my_media stay part of the id.
func leadingSegments(segments []string) int {
	for i, s := range segments {
		if versionSegment.MatchString(s) {
			return i + 1
		}
		if !transformationSegment.MatchString(s) {
			break
		}
	}

	n := 0
	for n < len(segments)-1 && isKnownTransformation(segments[n]) {
		n++
	}
	return n
}
