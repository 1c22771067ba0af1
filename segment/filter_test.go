package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

func TestFilterConditions(t *testing.T) {
	dataset := sampleCustomers()
	tests := []struct {
		name    string
		conds   []Condition
		wantIDs []int64
	}{
		{"balance eq zero", []Condition{NumEq("balance", 0)}, []int64{1, 4, 7}},
		{"balance gt", []Condition{NumGt("balance", 140000)}, []int64{3, 9}},
		{"age le", []Condition{NumLe("age", 29)}, []int64{8, 10}},
		{"age lt", []Condition{NumLt("age", 29)}, []int64{10}},
		{"products ne one", []Condition{NumNe("products_number", 1)}, []int64{3, 4, 6, 7, 8, 9}},
		{"credit ge 800", []Condition{NumGe("credit_score", 800)}, []int64{5, 7}},
		{"one country", []Condition{OneOf("country", "Germany")}, []int64{8}},
		{"two countries", []Condition{OneOf("country", "Germany", "Spain")}, []int64{2, 5, 6, 8}},
		{"flag churned", []Condition{FlagIs("churned", true)}, []int64{1, 3, 6, 8}},
		{"and combined", []Condition{OneOf("country", "France"), FlagIs("churned", true)}, []int64{1, 3}},
		{"nil filter keeps all", nil, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := compileFilter(tt.conds)
			assert.NoError(t, err)
			got := []int64{}
			for _, c := range dataset {
				if pred(c) {
					got = append(got, c.ID)
				}
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestAtRiskProfileFilter(t *testing.T) {
	dataset := sampleCustomers()
	dataset = append(dataset, models.Customer{ID: 11, Country: "France", Balance: 0, ProductsNumber: 1, HasCreditCard: false, Churned: true})

	pred, err := compileFilter([]Condition{
		NumEq("balance", 0),
		FlagIs("has_credit_card", false),
		NumEq("products_number", 1),
	})
	assert.NoError(t, err)
	got := []int64{}
	for _, c := range dataset {
		if pred(c) {
			got = append(got, c.ID)
		}
	}
	assert.Equal(t, []int64{11}, got)
}

func TestFilterErrors(t *testing.T) {
	tests := []struct {
		name  string
		conds []Condition
	}{
		{"numeric op on string field", []Condition{NumEq("country", 1)}},
		{"numeric op on unknown field", []Condition{NumGt("surname_length", 3)}},
		{"one-of on numeric field", []Condition{OneOf("balance", "0")}},
		{"one-of without values", []Condition{OneOf("country")}},
		{"flag on string field", []Condition{FlagIs("gender", true)}},
		{"unknown operator", []Condition{{field: "balance", op: "between"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileFilter(tt.conds)
			assert.ErrorIs(t, err, ErrInvalidFilter)

			_, err = Aggregate(sampleCustomers(), Spec{Filter: tt.conds})
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestFieldNamesSortedAndComplete(t *testing.T) {
	names := FieldNames()
	assert.Len(t, names, 13) // twelve table columns plus derived clv_score
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
	assert.Contains(t, names, "clv_score")
	assert.Contains(t, names, "balance")
	assert.Contains(t, names, "churned")
}
