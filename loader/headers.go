package loader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// HeaderAnalysis is the verdict on the first CSV row.
type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

var nonAlnum = regexp.MustCompile("[^a-zA-Z0-9]+")

// sanitizeHeader transliterates to ASCII, collapses everything non
// alphanumeric to single underscores and lowercases. "Crédit Score!" and
// "credit_score" come out the same.
func sanitizeHeader(header string) string {
	cleaned := nonAlnum.ReplaceAllString(unidecode.Unidecode(header), "_")
	cleaned = strings.Trim(cleaned, "_")
	return strings.ToLower(cleaned)
}

// AnalyzeHeaders inspects the first CSV row. When most fields look like
// column names it sanitizes them, otherwise the row is data and synthetic
// column_N names are generated.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}
	result := &HeaderAnalysis{
		Headers:      make([]string, len(firstRow)),
		FirstDataRow: firstRow,
	}

	headerLike := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLike++
		}
	}
	if float64(headerLike)/float64(len(firstRow)) >= 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}
	result.Headers = dedupeHeaders(result.Headers)
	return result
}

// isLikelyHeader rejects numbers and mostly-symbolic cells; a header needs a
// reasonable share of letters.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	letters, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return total > 0 && float64(letters)/float64(total) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

func cleanHeaderName(header string, index int) string {
	if !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	cleaned := sanitizeHeader(header)
	if cleaned == "" {
		return generateColumnName(index)
	}
	return cleaned
}

// dedupeHeaders suffixes repeated names with _1, _2, ...
func dedupeHeaders(headers []string) []string {
	seen := map[string]bool{}
	result := make([]string, len(headers))
	for i, header := range headers {
		name := header
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", header, n)
		}
		seen[name] = true
		result[i] = name
	}
	return result
}

// headerAliases maps the sanitized spellings seen in the wild churn exports
// onto the canonical column names.
var headerAliases = map[string]string{
	"id":               "id",
	"customer_id":      "id",
	"customerid":       "id",
	"credit_score":     "credit_score",
	"creditscore":      "credit_score",
	"country":          "country",
	"geography":        "country",
	"gender":           "gender",
	"age":              "age",
	"tenure":           "tenure",
	"balance":          "balance",
	"products_number":  "products_number",
	"numofproducts":    "products_number",
	"products":         "products_number",
	"has_credit_card":  "has_credit_card",
	"credit_card":      "has_credit_card",
	"hascrcard":        "has_credit_card",
	"is_active":        "is_active",
	"active_member":    "is_active",
	"isactivemember":   "is_active",
	"estimated_salary": "estimated_salary",
	"estimatedsalary":  "estimated_salary",
	"churned":          "churned",
	"churn":            "churned",
	"exited":           "churned",
}

// mapColumns resolves sanitized headers to canonical columns. Extra columns
// are ignored, missing required ones are an error.
func mapColumns(headers []string) (map[int]string, error) {
	byIndex := map[int]string{}
	found := map[string]bool{}
	for i, header := range headers {
		canonical, ok := headerAliases[header]
		if !ok {
			continue
		}
		if found[canonical] {
			return nil, fmt.Errorf("column %q mapped twice in header %v", canonical, headers)
		}
		byIndex[i] = canonical
		found[canonical] = true
	}
	missing := []string{}
	for _, col := range models.CustomerColumns {
		if !found[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("required columns missing from header: %v", missing)
	}
	return byIndex, nil
}
