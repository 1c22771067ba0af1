package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// GenerateCSV renders one aggregate result as CSV, header first.
func GenerateCSV(res *models.Result) string {
	buf := &strings.Builder{}
	w := csv.NewWriter(buf)
	w.Write(res.Columns())
	for _, row := range res.Rows {
		w.Write(rowStrings(res, row))
	}
	w.Flush()
	return buf.String()
}

// QueryExport is the JSON payload written per query run.
type QueryExport struct {
	Query       string                   `json:"query"`
	Title       string                   `json:"title"`
	GeneratedAt time.Time                `json:"generated_at"`
	Baseline    *float64                 `json:"baseline,omitempty"`
	Columns     []string                 `json:"columns"`
	Rows        []map[string]interface{} `json:"rows"`
}

// BuildExport flattens a result into the export payload. Rows become maps
// keyed by column name, optional measures appear only when populated.
func BuildExport(name, title string, res *models.Result) QueryExport {
	out := QueryExport{
		Query:       name,
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Columns:     res.Columns(),
	}
	if res.HasBaseline {
		baseline := res.Baseline
		out.Baseline = &baseline
	}
	for _, row := range res.Rows {
		m := map[string]interface{}{
			models.ColTotalCustomers:   row.TotalCustomers,
			models.ColChurnedCustomers: row.ChurnedCustomers,
			models.ColChurnRate:        row.ChurnRate,
		}
		for i, dim := range res.Dimensions {
			m[dim] = row.Labels[i]
		}
		if res.HasAverages {
			m[models.ColAvgBalance] = row.AvgBalance
			m[models.ColAvgSalary] = row.AvgSalary
		}
		if res.HasLostBalance {
			m[models.ColLostBalance] = row.LostBalance
		}
		if res.HasBaseline {
			m[models.ColVsBaseline] = row.VsBaseline
		}
		out.Rows = append(out.Rows, m)
	}
	return out
}

// ExportJSON writes any payload as indented JSON, creating the folder first.
func ExportJSON(filename string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create folder for %s: %v", filename, err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %v", filename, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("write %s: %v", filename, err)
	}
	log.Printf("exported %s", filename)
	return nil
}

// ExportText writes an already rendered table or CSV next to the JSON files.
func ExportText(filename, content string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create folder for %s: %v", filename, err)
	}
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %v", filename, err)
	}
	log.Printf("exported %s", filename)
	return nil
}

// TimestampedFilename keeps repeated runs of the same query apart.
func TimestampedFilename(baseDir, name, ext string) string {
	t := time.Now().Format("20060102_150405")
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s%s", name, t, ext))
}
