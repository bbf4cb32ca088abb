package pagination

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gallery-backend/internal/validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the first row index of the page.
func (p Params) Offset() int {
	offset, _ := Window(p.Page, p.Limit)
	return offset
}

// Meta is the pagination block returned alongside a listed page.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewMeta describes the page p of a collection holding total rows.
func NewMeta(p Params, total int) Meta {
	return Meta{
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: PageCount(total, p.Limit),
	}
}

// Window converts a 1-based page into a row offset and limit.
func Window(page, limit int) (offset, size int) {
	return (page - 1) * limit, limit
}

// PageCount returns ceil(total/limit).
func PageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Parse reads raw page/limit query values. Empty values take the defaults; anything that is
// not a positive integer is rejected rather than clamped.
func Parse(rawPage, rawLimit string) (Params, error) {
	var fields []validation.FieldError

	page, fe := parsePositive("page", rawPage, DefaultPage)
	if fe != nil {
		fields = append(fields, *fe)
	}
	limit, fe := parsePositive("limit", rawLimit, DefaultLimit)
	if fe != nil {
		fields = append(fields, *fe)
	} else if limit > MaxLimit {
		fields = append(fields, validation.FieldError{
			Field:   "limit",
			Rule:    "max",
			Message: fmt.Sprintf("limit must be at most %d", MaxLimit),
		})
	}
	if len(fields) == 0 && page-1 > math.MaxInt/limit {
		fields = append(fields, validation.FieldError{
			Field:   "page",
			Rule:    "range",
			Message: "page is out of range",
		})
	}
	if len(fields) > 0 {
		return Params{}, &validation.Error{Fields: fields}
	}
	return Params{Page: page, Limit: limit}, nil
}

func parsePositive(name, raw string, def int) (int, *validation.FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validation.FieldError{Field: name, Rule: "numeric", Message: name + " must be an integer"}
	}
	if v < 1 {
		return 0, &validation.FieldError{Field: name, Rule: "min", Message: name + " must be at least 1"}
	}
	return v, nil
}
