package common

import (
	"fmt"
	"strconv"
)

// Marked is implemented by list elements addressable by a pagination marker.
type Marked interface {
	MarkerID() string
}

// parseLimitParam parses the textual limit query parameter, defaulting
// to maxLimit when absent.
func parseLimitParam(limitParam string, maxLimit int) (int, error) {
	if limitParam == "" {
		return maxLimit, nil
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		return 0, &BadRequestError{Message: "limit param must be an integer"}
	}
	return limit, nil
}

// Limited returns a slice of items according to the requested offset
// and limit query parameters, given in their raw textual form ("" when
// absent). A limit of 0, or one above maxLimit, falls back to maxLimit.
// Negative or non-integer values yield a BadRequestError. Windows past
// the end of items produce a short or empty result, never an error.
func Limited[T any](items []T, offsetParam, limitParam string, maxLimit int) ([]T, error) {
	offset := 0
	if offsetParam != "" {
		parsed, err := strconv.Atoi(offsetParam)
		if err != nil {
			return nil, &BadRequestError{Message: "offset param must be an integer"}
		}
		offset = parsed
	}

	limit, err := parseLimitParam(limitParam, maxLimit)
	if err != nil {
		return nil, err
	}

	if limit < 0 {
		return nil, &BadRequestError{Message: "limit param must be positive"}
	}
	if offset < 0 {
		return nil, &BadRequestError{Message: "offset param must be positive"}
	}

	if limit == 0 {
		limit = maxLimit
	}
	limit = min(maxLimit, limit)

	return window(items, offset, limit), nil
}

// LimitedByMarker returns a slice of items resuming after the item
// whose MarkerID equals marker ("" means start from the beginning).
// The scan is in list order and the first match wins when ids repeat.
// A marker matching no item yields a BadRequestError. Note that unlike
// Limited, a limit of exactly 0 keeps its literal meaning here and
// produces an empty page.
func LimitedByMarker[T Marked](items []T, marker, limitParam string, maxLimit int) ([]T, error) {
	limit, err := parseLimitParam(limitParam, maxLimit)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, &BadRequestError{Message: "limit param must be positive"}
	}
	limit = min(maxLimit, limit)

	startIndex := 0
	if marker != "" {
		startIndex = -1
		for i, item := range items {
			if item.MarkerID() == marker {
				startIndex = i + 1
				break
			}
		}
		if startIndex < 0 {
			return nil, &BadRequestError{Message: fmt.Sprintf("marker [%s] not found", marker)}
		}
	}

	return window(items, startIndex, limit), nil
}

// window clips [offset, offset+limit) to the bounds of items.
func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if remaining := end - offset; limit < remaining {
		end = offset + limit
	}
	return items[offset:end]
}
