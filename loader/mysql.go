package loader

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

type columnInfo struct {
	Field string
	Type  string
}

func openMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mysql: %v", err)
	}
	return db, nil
}

// FromMySQL reads the churn table from MySQL. Column names are introspected
// with DESCRIBE and mapped through the same aliases the CSV path uses, so a
// table imported from any of the known exports works unchanged. Rows come
// back ordered by id to pin down tie-breaking.
func FromMySQL(dsn, table string) ([]models.Customer, error) {
	db, err := openMySQL(dsn)
	if err != nil {
		return nil, err
	}
	columns, err := describeTable(db, table)
	if err != nil {
		return nil, err
	}
	selectList, idColumn, err := canonicalSelectList(columns)
	if err != nil {
		return nil, fmt.Errorf("table %s: %v", table, err)
	}

	var rows []customerRow
	tx := db.Raw(fmt.Sprintf("SELECT %s FROM %s ORDER BY `%s`", selectList, table, idColumn))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan %s: %v", table, err)
	}
	return convertRows(rows)
}

func describeTable(db *gorm.DB, table string) ([]columnInfo, error) {
	tx := db.Raw(fmt.Sprintf("DESCRIBE %s", table))
	if tx.Error != nil {
		return nil, tx.Error
	}
	var columns []columnInfo
	if err := tx.Scan(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// canonicalSelectList builds "`DbCol` AS canonical" pairs in canonical column
// order, whatever order the table declares, and reports the source column
// holding the customer id. Positional scans rely on that order.
func canonicalSelectList(columns []columnInfo) (string, string, error) {
	source := map[string]string{}
	for _, col := range columns {
		canonical, ok := headerAliases[sanitizeHeader(col.Field)]
		if !ok {
			continue
		}
		if _, dup := source[canonical]; dup {
			return "", "", fmt.Errorf("column %q mapped twice", canonical)
		}
		source[canonical] = col.Field
	}
	missing := []string{}
	parts := make([]string, 0, len(models.CustomerColumns))
	for _, col := range models.CustomerColumns {
		from, ok := source[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		parts = append(parts, fmt.Sprintf("`%s` AS %s", from, col))
	}
	if len(missing) > 0 {
		return "", "", fmt.Errorf("required columns missing: %v", missing)
	}
	return strings.Join(parts, ", "), source["id"], nil
}

// customerRow carries flags as integers, MySQL hands them over as tinyint.
type customerRow struct {
	ID              int64
	CreditScore     int
	Country         string
	Gender          string
	Age             int
	Tenure          int
	Balance         float64
	ProductsNumber  int
	HasCreditCard   int64
	IsActive        int64
	EstimatedSalary float64
	Churned         int64
}

func convertRows(rows []customerRow) ([]models.Customer, error) {
	customers := make([]models.Customer, 0, len(rows))
	seen := map[int64]bool{}
	for _, r := range rows {
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate customer id %d", r.ID)
		}
		seen[r.ID] = true
		customers = append(customers, models.Customer{
			ID:              r.ID,
			CreditScore:     r.CreditScore,
			Country:         r.Country,
			Gender:          r.Gender,
			Age:             r.Age,
			Tenure:          r.Tenure,
			Balance:         r.Balance,
			ProductsNumber:  r.ProductsNumber,
			HasCreditCard:   r.HasCreditCard != 0,
			IsActive:        r.IsActive != 0,
			EstimatedSalary: r.EstimatedSalary,
			Churned:         r.Churned != 0,
		})
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("no rows in table")
	}
	return customers, nil
}
