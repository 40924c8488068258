// Package query translates inbound list-request parameters (filters,
// operators, search, sort, pagination) into store queries. It is shared by
// every collection endpoint; each entity contributes a Spec naming the
// columns a caller may touch, so unknown fields are dropped instead of being
// spliced into SQL.
package query

import (
	"strings"
	"time"
)

// Reserved keys are control parameters, never filter predicates.
var reservedKeys = map[string]struct{}{
	"select":      {},
	"sort":        {},
	"page":        {},
	"limit":       {},
	"search":      {},
	"searchField": {},
	"startDate":   {},
	"endDate":     {},
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Operator is a comparison recognized as a bracket suffix, e.g.
// rating[gte]=3 or status[in]=active,prospect.
type Operator string

const (
	OpEq  Operator = "eq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

var operatorSQL = map[Operator]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// Spec is the per-entity whitelist the builder consults. Keys are the
// API-level field names, values the store column names.
type Spec struct {
	Columns     map[string]string
	Searchable  []string
	Sortable    map[string]string
	DateColumn  string
	DefaultSort string
}

// Condition is one resolved filter predicate.
type Condition struct {
	Column string
	Op     Operator
	Values []string
}

// Params is a parsed, whitelisted list request.
type Params struct {
	Conditions    []Condition
	SearchTerm    string
	SearchColumns []string
	SelectColumns []string
	OrderBy       []string
	Page          int
	Limit         int
	StartDate     *time.Time
	EndDate       *time.Time

	dateColumn string
}

// Parse builds Params from the raw query-string map. Unknown fields and
// unknown operators are ignored; control keys never leak into the filter.
func Parse(raw map[string]string, spec Spec) Params {
	params := Params{
		Page:       DefaultPage,
		Limit:      DefaultLimit,
		dateColumn: spec.DateColumn,
	}

	for key, value := range raw {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		field, op := splitOperator(key)
		column, known := spec.Columns[field]
		if !known {
			continue
		}
		condition := Condition{Column: column, Op: op}
		if op == OpIn {
			condition.Values = splitList(value)
			if len(condition.Values) == 0 {
				continue
			}
		} else {
			condition.Values = []string{value}
		}
		params.Conditions = append(params.Conditions, condition)
	}

	if term := strings.TrimSpace(raw["search"]); term != "" {
		params.SearchTerm = term
		params.SearchColumns = spec.Searchable
		if field := strings.TrimSpace(raw["searchField"]); field != "" {
			if column, known := spec.Columns[field]; known {
				params.SearchColumns = []string{column}
			}
		}
	}

	for _, field := range splitList(raw["select"]) {
		if column, known := spec.Columns[field]; known {
			params.SelectColumns = append(params.SelectColumns, column)
		}
	}

	for _, field := range splitList(raw["sort"]) {
		direction := " ASC"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			direction = " DESC"
		}
		if column, known := spec.Sortable[field]; known {
			params.OrderBy = append(params.OrderBy, column+direction)
		}
	}
	if len(params.OrderBy) == 0 && spec.DefaultSort != "" {
		params.OrderBy = []string{spec.DefaultSort}
	}

	params.Page = parsePositive(raw["page"], DefaultPage)
	params.Limit = parsePositive(raw["limit"], DefaultLimit)

	if spec.DateColumn != "" {
		start, startOK := parseDate(raw["startDate"])
		end, endOK := parseDate(raw["endDate"])
		if startOK && endOK {
			params.StartDate = &start
			params.EndDate = &end
		}
	}

	return params
}

// Skip is the row offset implied by the 1-based page number.
func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

// DropColumn removes any caller-supplied predicate on the given column.
// Controllers use it before composing the ownership scope so team members
// cannot widen their visibility through a filter on the owner field.
func (p *Params) DropColumn(column string) {
	kept := p.Conditions[:0]
	for _, condition := range p.Conditions {
		if condition.Column != column {
			kept = append(kept, condition)
		}
	}
	p.Conditions = kept
}

func splitOperator(key string) (string, Operator) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, OpEq
	}
	field := key[:open]
	op := Operator(key[open+1 : len(key)-1])
	switch op {
	case OpGt, OpGte, OpLt, OpLte, OpIn:
		return field, op
	}
	// Unknown operator: treat the whole key as an unknown field so the
	// whitelist lookup drops it.
	return key, OpEq
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func parsePositive(raw string, fallback int) int {
	value := 0
	for _, r := range strings.TrimSpace(raw) {
		if r < '0' || r > '9' {
			return fallback
		}
		value = value*10 + int(r-'0')
		if value > 1<<30 {
			return fallback
		}
	}
	if value < 1 {
		return fallback
	}
	return value
}

func parseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
