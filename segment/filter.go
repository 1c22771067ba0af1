package segment

import (
	"fmt"

	"github.com/pivolan/go_utils"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// A Condition is one declarative predicate on a named field. Conditions in a
// filter are AND-combined and applied before bucketing.
type Condition struct {
	field  string
	op     string
	number float64
	values []string
	flag   bool
}

const (
	opEq    = "eq"
	opNe    = "ne"
	opLt    = "lt"
	opLe    = "le"
	opGt    = "gt"
	opGe    = "ge"
	opOneOf = "in"
	opFlag  = "flag"
)

func NumEq(field string, v float64) Condition { return Condition{field: field, op: opEq, number: v} }
func NumNe(field string, v float64) Condition { return Condition{field: field, op: opNe, number: v} }
func NumLt(field string, v float64) Condition { return Condition{field: field, op: opLt, number: v} }
func NumLe(field string, v float64) Condition { return Condition{field: field, op: opLe, number: v} }
func NumGt(field string, v float64) Condition { return Condition{field: field, op: opGt, number: v} }
func NumGe(field string, v float64) Condition { return Condition{field: field, op: opGe, number: v} }

// OneOf keeps records whose string field equals any of the given values.
func OneOf(field string, values ...string) Condition {
	return Condition{field: field, op: opOneOf, values: values}
}

// FlagIs keeps records whose bool field has the wanted value.
func FlagIs(field string, want bool) Condition {
	return Condition{field: field, op: opFlag, flag: want}
}

func (c Condition) predicate() (func(models.Customer) bool, error) {
	switch c.op {
	case opEq, opNe, opLt, opLe, opGt, opGe:
		get, ok := numericFields[c.field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not numeric, have %v", ErrInvalidFilter, c.field, FieldNames())
		}
		op, want := c.op, c.number
		return func(rec models.Customer) bool {
			v := get(rec)
			switch op {
			case opEq:
				return v == want
			case opNe:
				return v != want
			case opLt:
				return v < want
			case opLe:
				return v <= want
			case opGt:
				return v > want
			default:
				return v >= want
			}
		}, nil
	case opOneOf:
		get, ok := stringFields[c.field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not a string field", ErrInvalidFilter, c.field)
		}
		if len(c.values) == 0 {
			return nil, fmt.Errorf("%w: no values for field %q", ErrInvalidFilter, c.field)
		}
		values := c.values
		return func(rec models.Customer) bool {
			return go_utils.InArray(get(rec), values)
		}, nil
	case opFlag:
		get, ok := boolFields[c.field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not a flag", ErrInvalidFilter, c.field)
		}
		want := c.flag
		return func(rec models.Customer) bool {
			return get(rec) == want
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, c.op)
}

// compileFilter turns the condition list into a single predicate. A nil or
// empty list keeps everything.
func compileFilter(conds []Condition) (func(models.Customer) bool, error) {
	if len(conds) == 0 {
		return func(models.Customer) bool { return true }, nil
	}
	preds := make([]func(models.Customer) bool, 0, len(conds))
	for _, cond := range conds {
		p, err := cond.predicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return func(rec models.Customer) bool {
		for _, p := range preds {
			if !p(rec) {
				return false
			}
		}
		return true
	}, nil
}
