package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// SortField and SortOrder are closed enumerations. The only way to obtain a
// value is through NewListParams, which checks the raw input against the
// allow-lists below, so interpolating them into a statement cannot inject
// anything.
type SortField string

type SortOrder string

const (
	SortByName        SortField = "name"
	SortByType        SortField = "type"
	SortByHabitat     SortField = "habitat"
	SortByDangerLevel SortField = "danger_level"
	SortByCreatedAt   SortField = "created_at"
	SortByUpdatedAt   SortField = "updated_at"

	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Column returns the SQL identifier backing the sort field.
func (f SortField) Column() string { return string(f) }

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 200
)

var allowedSortFields = map[string]SortField{
	"name":         SortByName,
	"type":         SortByType,
	"habitat":      SortByHabitat,
	"danger_level": SortByDangerLevel,
	"created_at":   SortByCreatedAt,
	"updated_at":   SortByUpdatedAt,
}

// ListParams is the validated, bounded parameter set for the creature list.
// Offset always equals (Page-1)*Limit.
type ListParams struct {
	Page           int
	Limit          int
	Offset         int
	Type           string
	MinDangerLevel string
	Search         string
	Habitat        string
	SortBy         SortField
	SortOrder      SortOrder
}

// NewListParams validates raw query-string input into ListParams. Checks run
// in declared order and the first failure wins; no partial value is returned
// on error.
func NewListParams(query url.Values) (ListParams, error) {
	var p ListParams

	page, err := intParam(query, "page", DefaultPage)
	if err != nil || page < 1 {
		return ListParams{}, ValidationError{Field: "page", Msg: `Invalid or missing "page" parameter`, Err: err}
	}
	p.Page = page

	limit, err := intParam(query, "limit", DefaultLimit)
	if err != nil || limit < 1 {
		return ListParams{}, ValidationError{Field: "limit", Msg: `Invalid or missing "limit" parameter`, Err: err}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	p.Limit = limit

	p.Type = strings.TrimSpace(query.Get("type"))
	p.MinDangerLevel = strings.TrimSpace(query.Get("minDangerLevel"))
	p.Search = strings.TrimSpace(query.Get("search"))
	p.Habitat = strings.TrimSpace(query.Get("habitat"))

	sortBy := strings.TrimSpace(query.Get("sortBy"))
	if sortBy == "" {
		sortBy = string(SortByName)
	}
	field, ok := allowedSortFields[sortBy]
	if !ok {
		return ListParams{}, ValidationError{Field: "sortBy", Msg: `Invalid "sortBy" parameter`}
	}
	p.SortBy = field

	sortOrder := strings.ToUpper(strings.TrimSpace(query.Get("sortOrder")))
	if sortOrder == "" {
		sortOrder = string(SortAsc)
	}
	switch SortOrder(sortOrder) {
	case SortAsc, SortDesc:
		p.SortOrder = SortOrder(sortOrder)
	default:
		return ListParams{}, ValidationError{Field: "sortOrder", Msg: `Invalid "sortOrder" parameter`}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p, nil
}

func intParam(query url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
