package segment

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// A Bucketer maps every record to one discrete label. An ordered list of
// bucketers forms the composite segment key.
type Bucketer struct {
	column     string
	field      string
	kind       bucketerKind
	bands      []Band
	k          int
	trueLabel  string
	falseLabel string
}

type bucketerKind int

const (
	bucketField bucketerKind = iota
	bucketFlag
	bucketBands
	bucketNTile
)

// Band is an inclusive numeric range [Lo, Hi]. Use math.Inf for open ends.
type Band struct {
	Label string
	Lo    float64
	Hi    float64
}

// OtherBand labels records matched by no declared band.
const OtherBand = "other"

// ByField buckets by the printed value of a field (identity bucketing).
func ByField(field string) Bucketer {
	return Bucketer{column: field, field: field, kind: bucketField}
}

// ByFlag buckets a bool field into two named labels.
func ByFlag(column, field, trueLabel, falseLabel string) Bucketer {
	return Bucketer{column: column, field: field, kind: bucketFlag, trueLabel: trueLabel, falseLabel: falseLabel}
}

// ByBands buckets a numeric field into labeled inclusive ranges, scanned in
// declaration order. Records outside every band get the "other" label.
func ByBands(column, field string, bands []Band) Bucketer {
	return Bucketer{column: column, field: field, kind: bucketBands, bands: bands}
}

// ByNTile ranks records into k equal-frequency buckets Q1..Qk by a numeric
// field, ascending. Earlier buckets take the remainder records and ties keep
// their original order.
func ByNTile(column, field string, k int) Bucketer {
	return Bucketer{column: column, field: field, kind: bucketNTile, k: k}
}

// Column is the output dimension name of this bucketer.
func (b Bucketer) Column() string {
	return b.column
}

// labels assigns one label per record and reports the intrinsic label order
// when the bucketer has one (bands, ntile, flags, numeric identity). A nil
// order means plain lexicographic ordering of the labels.
func (b Bucketer) labels(records []models.Customer) ([]string, []string, error) {
	switch b.kind {
	case bucketField:
		get, ok := valueLabel(b.field)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unknown field %q, have %v", ErrInvalidBucketer, b.field, FieldNames())
		}
		out := make([]string, len(records))
		for i, c := range records {
			out[i] = get(c)
		}
		if _, numeric := numericFields[b.field]; numeric {
			return out, numericLabelOrder(out), nil
		}
		return out, nil, nil
	case bucketFlag:
		get, ok := boolFields[b.field]
		if !ok {
			return nil, nil, fmt.Errorf("%w: field %q is not a flag", ErrInvalidBucketer, b.field)
		}
		out := make([]string, len(records))
		for i, c := range records {
			if get(c) {
				out[i] = b.trueLabel
			} else {
				out[i] = b.falseLabel
			}
		}
		return out, []string{b.trueLabel, b.falseLabel}, nil
	case bucketBands:
		get, ok := numericFields[b.field]
		if !ok {
			return nil, nil, fmt.Errorf("%w: field %q is not numeric", ErrInvalidBucketer, b.field)
		}
		if err := validateBands(b.bands); err != nil {
			return nil, nil, err
		}
		out := make([]string, len(records))
		for i, c := range records {
			out[i] = bandLabel(b.bands, get(c))
		}
		order := make([]string, 0, len(b.bands)+1)
		for _, band := range b.bands {
			order = append(order, band.Label)
		}
		order = append(order, OtherBand)
		return out, order, nil
	case bucketNTile:
		get, ok := numericFields[b.field]
		if !ok {
			return nil, nil, fmt.Errorf("%w: field %q is not numeric", ErrInvalidBucketer, b.field)
		}
		if b.k < 1 {
			return nil, nil, fmt.Errorf("%w: ntile needs k >= 1, got %d", ErrInvalidBucketer, b.k)
		}
		return ntileLabels(records, get, b.k), ntileOrder(b.k), nil
	}
	return nil, nil, fmt.Errorf("%w: unknown bucketer kind", ErrInvalidBucketer)
}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: no bands declared", ErrInvalidBucketer)
	}
	seen := map[string]bool{}
	for _, band := range bands {
		if band.Label == "" {
			return fmt.Errorf("%w: band with empty label", ErrInvalidBucketer)
		}
		if seen[band.Label] {
			return fmt.Errorf("%w: duplicate band label %q", ErrInvalidBucketer, band.Label)
		}
		seen[band.Label] = true
	}
	return nil
}

func bandLabel(bands []Band, v float64) string {
	for _, band := range bands {
		if v >= band.Lo && v <= band.Hi {
			return band.Label
		}
	}
	return OtherBand
}

// ntileLabels implements NTILE: sort record indexes by score ascending with
// stable ties, then hand out bucket sizes of floor(n/k) plus one extra for
// the first n mod k buckets.
func ntileLabels(records []models.Customer, score func(models.Customer) float64, k int) []string {
	n := len(records)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return score(records[idx[a]]) < score(records[idx[b]])
	})
	labels := make([]string, n)
	base, extra := n/k, n%k
	pos := 0
	for bucket := 0; bucket < k; bucket++ {
		size := base
		if bucket < extra {
			size++
		}
		for j := 0; j < size; j++ {
			labels[idx[pos]] = "Q" + strconv.Itoa(bucket+1)
			pos++
		}
	}
	return labels
}

func ntileOrder(k int) []string {
	order := make([]string, k)
	for i := range order {
		order[i] = "Q" + strconv.Itoa(i+1)
	}
	return order
}

// numericLabelOrder ranks the distinct labels of a numeric identity bucketer
// by value, so a label of "10" sorts after "2" rather than before it.
func numericLabelOrder(labels []string) []string {
	values := map[string]float64{}
	for _, label := range labels {
		if _, ok := values[label]; ok {
			continue
		}
		v, err := strconv.ParseFloat(label, 64)
		if err != nil {
			return nil
		}
		values[label] = v
	}
	order := make([]string, 0, len(values))
	for label := range values {
		order = append(order, label)
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })
	return order
}
