package http

import (
	"hotelres/pkg/config"
	apperrors "hotelres/pkg/errors"
	"net/http"
	"strconv"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset), nil
}

// Page returns the window [offset, offset+limit) of items, clamped to its bounds.
func Page[T any](items []T, limit int, offset int64) []T {
	n := int64(len(items))
	if offset >= n {
		return []T{}
	}
	end := offset + int64(limit)
	if end > n {
		end = n
	}
	return items[offset:end]
}
