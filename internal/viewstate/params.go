package viewstate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Query parameter names of the persisted view.
const (
	ParamTab    = "tab"
	ParamColumn = "column"
	ParamQuery  = "query"
)

// Defaults applied when a parameter is absent.
const (
	DefaultTab      = taskstore.StatusOpen
	DefaultPage     = 1
	DefaultPageSize = 20
)

// Params is the persisted subset of the view state.
type Params struct {
	Tab    taskstore.TaskStatus
	Sort   *query.Sort
	Column string
	Query  string
	Page   query.Page
}

// DefaultParams returns the view used when nothing is persisted.
func DefaultParams() Params {
	return Params{
		Tab:  DefaultTab,
		Page: query.Page{Number: DefaultPage, Size: DefaultPageSize},
	}
}

// Encode renders p as query parameters. page and pageSize are written only in
// pagination mode.
func (p Params) Encode(infinite bool) url.Values {
	values := url.Values{}
	if p.Tab != "" {
		values.Set(ParamTab, string(p.Tab))
	}
	query.EncodeSort(values, p.Sort)
	if p.Column != "" && p.Query != "" {
		values.Set(ParamColumn, p.Column)
		values.Set(ParamQuery, p.Query)
	}
	if !infinite {
		query.EncodePage(values, p.Page)
	}
	return values
}

// String returns the encoded query string.
func (p Params) String(infinite bool) string {
	return p.Encode(infinite).Encode()
}

// DecodeParams reads a view from query parameters. Missing or invalid values
// fall back to defaults; an unknown tab is replaced by the default tab.
func DecodeParams(values url.Values) Params {
	p := DefaultParams()

	if tab := taskstore.TaskStatus(strings.TrimSpace(values.Get(ParamTab))); tab.IsValid() {
		p.Tab = tab
	}
	p.Sort = query.DecodeSort(values)
	if p.Sort != nil && !query.Sortable(p.Sort.Column) {
		p.Sort = nil
	}
	p.Column = strings.TrimSpace(values.Get(ParamColumn))
	p.Query = values.Get(ParamQuery)
	if p.Column == "" || p.Query == "" || !query.HasField(p.Column) {
		p.Column, p.Query = "", ""
	}
	p.Page = query.DecodePage(values, p.Page)
	return p
}

// ParseParams parses an encoded query string such as "tab=closed&page=2".
// A leading "?" is ignored.
func ParseParams(raw string) (Params, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if err != nil {
		return Params{}, fmt.Errorf("parse view query: %w", err)
	}
	return DecodeParams(values), nil
}

// ParseView parses a persisted view. A view carrying page parameters was saved
// in pagination mode; otherwise fallback decides the mode. A view without
// pageSize keeps size.
func ParseView(raw string, size int, fallback bool) (p Params, infinite bool, err error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if err != nil {
		return Params{}, fallback, fmt.Errorf("parse view query: %w", err)
	}
	p = DecodeParams(values)
	if !values.Has(query.ParamPageSize) && size > 0 {
		p.Page.Size = size
	}
	return p, fallback && !values.Has(query.ParamPage), nil
}
