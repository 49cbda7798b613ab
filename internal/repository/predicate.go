package repository

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/nimbus-rentals/service-rental/internal/query"
)

// sqlCondition is one WHERE fragment with its bind arguments.
type sqlCondition struct {
	expr string
	args []any
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// columnFor maps a predicate field to a column. Fields outside the known
// map pass through uninterpreted as long as they are plain identifiers.
func columnFor(field string, columns map[string]string) (string, error) {
	if col, ok := columns[field]; ok {
		return col, nil
	}
	if identifierPattern.MatchString(field) {
		return field, nil
	}
	return "", fmt.Errorf("invalid field name: %s", field)
}

// conditionsFor translates the storage-agnostic predicate into SQL WHERE
// fragments. Clause order is deterministic (sorted by field), so equal
// criteria sets always produce the same query.
func conditionsFor(pred *query.Predicate, columns map[string]string) ([]sqlCondition, error) {
	if pred == nil {
		return nil, nil
	}

	var conds []sqlCondition
	for _, clause := range pred.Clauses() {
		col, err := columnFor(clause.Field, columns)
		if err != nil {
			return nil, err
		}

		switch clause.Kind {
		case query.KindEqual, query.KindBool:
			conds = append(conds, sqlCondition{expr: col + " = ?", args: []any{clause.Values[0]}})
		case query.KindIn:
			conds = append(conds, sqlCondition{expr: col + " IN ?", args: []any{clause.Values}})
		case query.KindRange:
			if clause.Min != nil {
				conds = append(conds, sqlCondition{expr: col + " >= ?", args: []any{clause.Min}})
			}
			if clause.Max != nil {
				conds = append(conds, sqlCondition{expr: col + " <= ?", args: []any{clause.Max}})
			}
		default:
			return nil, fmt.Errorf("unsupported clause kind %d for field %s", clause.Kind, clause.Field)
		}
	}
	return conds, nil
}

// orderFor renders the sort specification as an ORDER BY expression, or
// the given default when no sort was requested.
func orderFor(sort []query.SortField, columns map[string]string, defaultOrder string) (string, error) {
	if len(sort) == 0 {
		return defaultOrder, nil
	}

	parts := make([]string, 0, len(sort))
	for _, sf := range sort {
		col, err := columnFor(sf.Field, columns)
		if err != nil {
			return "", err
		}
		if sf.Descending {
			parts = append(parts, col+" DESC")
		} else {
			parts = append(parts, col+" ASC")
		}
	}
	return strings.Join(parts, ", "), nil
}

// applyConditions chains the WHERE fragments onto a gorm query.
func applyConditions(tx *gorm.DB, conds []sqlCondition) *gorm.DB {
	for _, c := range conds {
		tx = tx.Where(c.expr, c.args...)
	}
	return tx
}
