// Package query translates the list endpoint's filter and sort parameters
// into SQL fragments and in-memory ordering over cereal records.
package query

import (
	"fmt"
	"sort"
	"strconv"

	"cereal-api/internal/model"
)

// Operator is a single-column comparison operator.
type Operator int

const (
	OpEqual Operator = iota
	OpGreaterThan
	OpLessOrEqual
	OpGreaterOrEqual
	OpNotEqual
)

// ParseOperator maps the wire representation of an operator to its tag.
// Unrecognized input falls back to equality, matching the behavior the
// clients already depend on.
func ParseOperator(s string) Operator {
	switch s {
	case ">":
		return OpGreaterThan
	case "<=":
		return OpLessOrEqual
	case ">=":
		return OpGreaterOrEqual
	case "!=":
		return OpNotEqual
	default:
		return OpEqual
	}
}

// SQL returns the operator's SQL spelling.
func (op Operator) SQL() string {
	switch op {
	case OpGreaterThan:
		return ">"
	case OpLessOrEqual:
		return "<="
	case OpGreaterOrEqual:
		return ">="
	case OpNotEqual:
		return "!="
	default:
		return "="
	}
}

// textColumns sort ascending; every other known column sorts descending.
var textColumns = map[string]bool{
	"name": true,
	"mfr":  true,
	"type": true,
}

var numericColumns = map[string]bool{
	"calories": true,
	"protein":  true,
	"fat":      true,
	"sodium":   true,
	"fiber":    true,
	"carbo":    true,
	"sugars":   true,
	"potass":   true,
	"vitamins": true,
	"shelf":    true,
	"weight":   true,
	"cups":     true,
	"rating":   true,
}

// ValidColumn reports whether name is a known cereal column. Filter columns
// are checked against this allow-list before being interpolated into SQL.
func ValidColumn(name string) bool {
	return textColumns[name] || numericColumns[name]
}

// Filter is a single-column comparison against the cereals table.
type Filter struct {
	Column string
	Value  string
	Op     Operator
}

// Where returns the WHERE clause for the filter along with its bind
// argument. The column name must already be validated with ValidColumn.
// Values that parse as numbers are bound as float64 so comparisons against
// numeric columns keep their numeric semantics.
func (f Filter) Where() (string, []any) {
	clause := fmt.Sprintf(" WHERE %s %s $1", f.Column, f.Op.SQL())

	if numericColumns[f.Column] {
		if n, err := strconv.ParseFloat(f.Value, 64); err == nil {
			return clause, []any{n}
		}
	}

	return clause, []any{f.Value}
}

// SortCereals orders the slice in place: text columns ascending, numeric
// columns descending. An unknown sortBy is a validation error; an empty
// sortBy leaves the slice untouched.
func SortCereals(cereals []model.Cereal, sortBy string) error {
	if sortBy == "" {
		return nil
	}

	switch {
	case textColumns[sortBy]:
		sort.SliceStable(cereals, func(i, j int) bool {
			return textValue(&cereals[i], sortBy) < textValue(&cereals[j], sortBy)
		})
	case numericColumns[sortBy]:
		sort.SliceStable(cereals, func(i, j int) bool {
			return numericValue(&cereals[i], sortBy) > numericValue(&cereals[j], sortBy)
		})
	default:
		return model.ErrInvalidSortColumn
	}

	return nil
}

func textValue(c *model.Cereal, column string) string {
	switch column {
	case "name":
		return c.Name
	case "mfr":
		return c.Mfr
	default:
		return c.Type
	}
}

func numericValue(c *model.Cereal, column string) float64 {
	switch column {
	case "calories":
		return float64(c.Calories)
	case "protein":
		return float64(c.Protein)
	case "fat":
		return float64(c.Fat)
	case "sodium":
		return float64(c.Sodium)
	case "fiber":
		return c.Fiber
	case "carbo":
		return c.Carbo
	case "sugars":
		return float64(c.Sugars)
	case "potass":
		return float64(c.Potass)
	case "vitamins":
		return float64(c.Vitamins)
	case "shelf":
		return float64(c.Shelf)
	case "weight":
		return c.Weight
	case "cups":
		return c.Cups
	default:
		return c.Rating
	}
}
