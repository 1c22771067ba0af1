package loader

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// FromSQLite reads the churn table from a SQLite file, the second file-backed
// source next to CSV. Column names go through the same alias mapping.
func FromSQLite(path, table string) ([]models.Customer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite file %s: %v", path, err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %v", path, err)
	}
	defer db.Close()

	columns, err := sqliteColumns(db, table)
	if err != nil {
		return nil, err
	}
	selectList, idColumn, err := canonicalSelectList(columns)
	if err != nil {
		return nil, fmt.Errorf("table %s: %v", table, err)
	}
	selectList = strings.ReplaceAll(selectList, "`", `"`)

	rows, err := db.Query(fmt.Sprintf(`SELECT %s FROM %s ORDER BY "%s"`, selectList, table, idColumn))
	if err != nil {
		return nil, fmt.Errorf("query %s: %v", table, err)
	}
	defer rows.Close()

	var out []customerRow
	for rows.Next() {
		var r customerRow
		err := rows.Scan(&r.ID, &r.CreditScore, &r.Country, &r.Gender, &r.Age, &r.Tenure,
			&r.Balance, &r.ProductsNumber, &r.HasCreditCard, &r.IsActive, &r.EstimatedSalary, &r.Churned)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %v", table, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return convertRows(out)
}

func sqliteColumns(db *sql.DB, table string) ([]columnInfo, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %v", table, err)
	}
	defer rows.Close()

	var columns []columnInfo
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, columnInfo{Field: name, Type: ctype})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}
	return columns, nil
}
