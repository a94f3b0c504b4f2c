package common

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/stratolab/strato/internal/logger"
)

var (
	// leadingVersionRe matches a version segment at the start of a URL
	// path, capturing the trailing separator so it can be kept.
	leadingVersionRe = regexp.MustCompile(`^/v[0-9]+\.[0-9]+(/|$)`)
	// embeddedVersionRe matches a version segment anywhere in an href.
	embeddedVersionRe = regexp.MustCompile(`/v[0-9]+\.[0-9]+/`)
	// trailingVersionRe matches a version segment at the end of an href.
	trailingVersionRe = regexp.MustCompile(`/v[0-9]+\.[0-9]+$`)
	// versionNumberRe extracts the major.minor pair from a matched segment.
	versionNumberRe = regexp.MustCompile(`[0-9]+\.[0-9]`)
)

// IDFromHref returns the id portion of an href as an int.
//
// Given: "http://www.foo.com/bar/123?q=4"
// Returns: 123
//
// To support local hrefs, the argument can also be a bare id:
// Given: "123"
// Returns: 123
func IDFromHref(href string) (int, error) {
	if id, err := strconv.Atoi(href); err == nil {
		return id, nil
	}

	logger.Debugf("Attempting to treat %s as a URL", href)

	parsed, err := url.Parse(href)
	if err != nil {
		return 0, &InvalidHrefError{Href: href}
	}

	segments := strings.Split(parsed.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" {
			continue
		}
		id, err := strconv.Atoi(segments[i])
		if err != nil {
			break
		}
		return id, nil
	}

	logger.Debugf("Failed to parse ID from %s", href)
	return 0, &InvalidHrefError{Href: href}
}

// RemoveVersionFromHref removes the first api version segment from the href.
//
// Given: "http://www.strato.dev/v1.1/123"
// Returns: "http://www.strato.dev/123"
//
// Given: "http://www.strato.dev/v1.1"
// Returns: "http://www.strato.dev"
//
// Returns NoVersionInHrefError when the path carries no version
// segment. The caller asked for a rewrite, so silently returning the
// href unchanged would hide a broken link.
func RemoveVersionFromHref(href string) (string, error) {
	parsed, err := url.Parse(href)
	if err != nil {
		return "", &InvalidHrefError{Href: href}
	}

	newPath := leadingVersionRe.ReplaceAllString(parsed.Path, "$1")
	if newPath == parsed.Path {
		return "", &NoVersionInHrefError{Href: href}
	}

	parsed.Path = newPath
	return parsed.String(), nil
}

// VersionFromHref returns the api version in the href as "major.minor".
// If no version is found, "1.0" is returned. Unlike
// RemoveVersionFromHref this is a lenient read: the version is used to
// pick a representation and the default is always safe.
//
// Given: "http://www.strato.dev/123"
// Returns: "1.0"
//
// Given: "http://www.strato.dev/v1.1"
// Returns: "1.1"
func VersionFromHref(href string) string {
	segment := embeddedVersionRe.FindString(href)
	if segment == "" {
		segment = trailingVersionRe.FindString(href)
	}
	if segment == "" {
		return "1.0"
	}
	return versionNumberRe.FindString(segment)
}
