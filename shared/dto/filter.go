package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// GetWhereClause renders the filter as a named-parameter predicate. A like
// filter with an empty value renders nothing, so optional query string
// filters can be added unconditionally.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	if symbol, ok := comparisons[f.Operator]; ok {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, symbol, argName), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		if text := fmt.Sprint(f.Value); f.Value != nil && text != "" {
			args[argName] = "%" + text + "%"

			return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, argName), args
		}

		return "", args
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if !val.IsValid() || (val.Kind() != reflect.Slice && val.Kind() != reflect.Array) {
			args[argName] = f.Value

			return fmt.Sprintf("%s IN (:%s)", column, argName), args
		}

		if val.Len() == 0 {
			return "FALSE", args
		}

		named := make([]string, val.Len())

		for idx := range val.Len() {
			name := argName + "_" + strconv.Itoa(idx)
			args[name] = val.Index(idx).Interface()
			named[idx] = ":" + name
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var where string

		var arg map[string]any

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+operator+" ")), args
}

// RangeFilters turns optional min and max query values into inclusive bounds
// on field. Values that do not parse as numbers are skipped.
func RangeFilters(table, field, minValue, maxValue string) []any {
	filters := []any{}

	bounds := []struct {
		raw      string
		operator string
		suffix   string
	}{
		{raw: minValue, operator: FilterOperatorGreaterEq, suffix: "_min"},
		{raw: maxValue, operator: FilterOperatorLessEq, suffix: "_max"},
	}

	for _, bound := range bounds {
		value, err := strconv.ParseFloat(strings.TrimSpace(bound.raw), 64)
		if err != nil {
			continue
		}

		filters = append(filters, Filter{
			ArgName:  field + bound.suffix,
			Field:    field,
			Value:    value,
			Operator: bound.operator,
			Table:    table,
		})
	}

	return filters
}
