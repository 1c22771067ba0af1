package segment

import (
	"sort"
	"strconv"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// Field accessors registered by column name. Bucketers and filter conditions
// reference fields declaratively by these names; anything else is a schema
// mismatch. clv_score is the only derived field.

var numericFields = map[string]func(models.Customer) float64{
	"id":               func(c models.Customer) float64 { return float64(c.ID) },
	"credit_score":     func(c models.Customer) float64 { return float64(c.CreditScore) },
	"age":              func(c models.Customer) float64 { return float64(c.Age) },
	"tenure":           func(c models.Customer) float64 { return float64(c.Tenure) },
	"balance":          func(c models.Customer) float64 { return c.Balance },
	"products_number":  func(c models.Customer) float64 { return float64(c.ProductsNumber) },
	"estimated_salary": func(c models.Customer) float64 { return c.EstimatedSalary },
	"clv_score":        CLVScore,
}

var stringFields = map[string]func(models.Customer) string{
	"country": func(c models.Customer) string { return c.Country },
	"gender":  func(c models.Customer) string { return c.Gender },
}

var boolFields = map[string]func(models.Customer) bool{
	"has_credit_card": func(c models.Customer) bool { return c.HasCreditCard },
	"is_active":       func(c models.Customer) bool { return c.IsActive },
	"churned":         func(c models.Customer) bool { return c.Churned },
}

// CLVScore is the customer-lifetime-value proxy: balance weighted by product
// count and tenure. Zero-balance customers score zero by construction.
func CLVScore(c models.Customer) float64 {
	return c.Balance * float64(c.ProductsNumber) * (1 + float64(c.Tenure)/10)
}

// FieldNames returns every addressable field name, sorted, for error messages.
func FieldNames() []string {
	names := make([]string, 0, len(numericFields)+len(stringFields)+len(boolFields))
	for name := range numericFields {
		names = append(names, name)
	}
	for name := range stringFields {
		names = append(names, name)
	}
	for name := range boolFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// valueLabel resolves a field of any kind to its printed value, for identity
// bucketing. The bool reports whether the field exists at all.
func valueLabel(field string) (func(models.Customer) string, bool) {
	if get, ok := stringFields[field]; ok {
		return get, true
	}
	if get, ok := numericFields[field]; ok {
		return func(c models.Customer) string {
			return strconv.FormatFloat(get(c), 'g', -1, 64)
		}, true
	}
	if get, ok := boolFields[field]; ok {
		return func(c models.Customer) string {
			return strconv.FormatBool(get(c))
		}, true
	}
	return nil, false
}
