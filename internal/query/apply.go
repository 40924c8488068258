package query

import (
	"strings"

	"gorm.io/gorm"
)

// ApplyFilter attaches the predicate part of the request: whitelisted
// conditions, the search clause and the date range. The same filtered query
// feeds both the page fetch and the total count.
func (p Params) ApplyFilter(tx *gorm.DB) *gorm.DB {
	for _, condition := range p.Conditions {
		if condition.Op == OpIn {
			tx = tx.Where(condition.Column+" IN ?", condition.Values)
			continue
		}
		tx = tx.Where(condition.Column+" "+operatorSQL[condition.Op]+" ?", condition.Values[0])
	}

	if p.SearchTerm != "" && len(p.SearchColumns) > 0 {
		clauses := make([]string, 0, len(p.SearchColumns))
		args := make([]any, 0, len(p.SearchColumns))
		pattern := "%" + strings.ToLower(p.SearchTerm) + "%"
		for _, column := range p.SearchColumns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}

	if p.StartDate != nil && p.EndDate != nil && p.dateColumn != "" {
		tx = tx.Where(p.dateColumn+" >= ? AND "+p.dateColumn+" <= ?", *p.StartDate, *p.EndDate)
	}

	return tx
}

// ApplyPage attaches field selection, ordering and the pagination window.
func (p Params) ApplyPage(tx *gorm.DB) *gorm.DB {
	if len(p.SelectColumns) > 0 {
		columns := make([]string, 0, len(p.SelectColumns)+1)
		columns = append(columns, "id")
		for _, column := range p.SelectColumns {
			if column != "id" {
				columns = append(columns, column)
			}
		}
		tx = tx.Select(columns)
	}
	for _, order := range p.OrderBy {
		tx = tx.Order(order)
	}
	return tx.Offset(p.Skip()).Limit(p.Limit)
}
