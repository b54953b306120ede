package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Wire parameter names shared by the HTTP API and the view-state codec.
const (
	ParamSortColumn = "sort-column"
	ParamSortOrder  = "sort-order"
	ParamPage       = "page"
	ParamPageSize   = "pageSize"

	matchPrefix = "match."
	anyPrefix   = "any."
)

// Pattern returns the scalar pattern of a value.
func (v Value) Pattern() string { return v.pattern }

// List returns the accepted values of a list value.
func (v Value) List() []string { return v.list }

// IsList reports whether the value is a list.
func (v Value) IsList() bool { return v.isList }

// EncodeSort writes s into values; a nil sort removes both parameters.
func EncodeSort(values url.Values, s *Sort) {
	if s == nil || s.Column == "" {
		values.Del(ParamSortColumn)
		values.Del(ParamSortOrder)
		return
	}
	values.Set(ParamSortColumn, s.Column)
	values.Set(ParamSortOrder, string(s.Direction))
}

// DecodeSort reads a sort from values. A missing column means no sort; a
// missing or invalid order defaults to ascending.
func DecodeSort(values url.Values) *Sort {
	column := strings.TrimSpace(values.Get(ParamSortColumn))
	if column == "" {
		return nil
	}
	dir, err := ParseDirection(values.Get(ParamSortOrder))
	if err != nil {
		dir = Asc
	}
	return &Sort{Column: column, Direction: dir}
}

// EncodePage writes the page window into values.
func EncodePage(values url.Values, p Page) {
	values.Set(ParamPage, strconv.Itoa(p.Number))
	values.Set(ParamPageSize, strconv.Itoa(p.Size))
}

// DecodePage reads the page window, using def for missing or non-positive values.
func DecodePage(values url.Values, def Page) Page {
	p := def
	if n, err := strconv.Atoi(values.Get(ParamPage)); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(values.Get(ParamPageSize)); err == nil && n > 0 {
		p.Size = n
	}
	return p
}

// EncodeFilters writes non-noop filters as match.<field>=pattern or repeated any.<field>=value.
func EncodeFilters(values url.Values, filters Filters) {
	for field, v := range filters {
		if field == "" || v.IsNoop() {
			continue
		}
		if v.isList {
			for _, item := range v.list {
				values.Add(anyPrefix+field, item)
			}
			continue
		}
		values.Set(matchPrefix+field, v.pattern)
	}
}

// DecodeFilters reads filters written by EncodeFilters.
func DecodeFilters(values url.Values) Filters {
	filters := Filters{}
	for key, vals := range values {
		switch {
		case strings.HasPrefix(key, matchPrefix) && len(vals) > 0:
			filters[strings.TrimPrefix(key, matchPrefix)] = Match(vals[0])
		case strings.HasPrefix(key, anyPrefix):
			filters[strings.TrimPrefix(key, anyPrefix)] = AnyOf(vals...)
		}
	}
	return filters
}
