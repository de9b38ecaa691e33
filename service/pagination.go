package application

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

// ParsePagination reads page and limit query values. Missing values take the
// defaults; anything else must be a whole number of at least 1, and limit may
// not exceed domain.MaxLimit.
func ParsePagination(rawPage, rawLimit string) (int64, int64, error) {
	page, err := parsePositive("page", rawPage, domain.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err := parsePositive("limit", rawLimit, domain.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, checkPagination(page, limit)
}

func parsePositive(name, raw string, fallback int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return 0, errors.Validation(errors.InvalidPagination, fmt.Sprintf("%s must be a positive integer", name))
	}
	return value, nil
}

func checkPagination(page, limit int64) error {
	if page < 1 {
		return errors.Validation(errors.InvalidPagination, "page must be a positive integer")
	}
	if limit < 1 {
		return errors.Validation(errors.InvalidPagination, "limit must be a positive integer")
	}
	if limit > domain.MaxLimit {
		return errors.Validation(errors.InvalidPagination, fmt.Sprintf("limit must not exceed %d", domain.MaxLimit))
	}
	// (page-1)*limit must stay representable as a skip.
	if page-1 > math.MaxInt64/limit {
		return errors.Validation(errors.InvalidPagination, "page is out of range")
	}
	return nil
}
