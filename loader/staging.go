package loader

import (
	"fmt"
	"log"
	"strings"

	uuid "github.com/satori/go.uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

const insertBatchSize = 500

// ImportIntoMySQL creates a scratch table and batch-inserts the dataset into
// it, handy for cross-checking engine output against plain SQL. The staging
// table is the only thing this tool ever writes.
func ImportIntoMySQL(dsn string, dataset []models.Customer) (models.StagingTableName, error) {
	if len(dataset) == 0 {
		return "", fmt.Errorf("nothing to import")
	}
	db, err := openMySQL(dsn)
	if err != nil {
		return "", err
	}

	uid := uuid.NewV4()
	tableName := "churn_customers_" + strings.ReplaceAll(uid.String(), "-", "")[:8]

	if tx := db.Exec("DROP TABLE IF EXISTS " + tableName); tx.Error != nil {
		return "", tx.Error
	}
	ddl := fmt.Sprintf(`CREATE TABLE %s (
		id BIGINT PRIMARY KEY,
		credit_score INT,
		country VARCHAR(64),
		gender VARCHAR(16),
		age INT,
		tenure INT,
		balance DOUBLE,
		products_number INT,
		has_credit_card TINYINT(1),
		is_active TINYINT(1),
		estimated_salary DOUBLE,
		churned TINYINT(1)
	)`, tableName)
	if tx := db.Exec(ddl); tx.Error != nil {
		return "", fmt.Errorf("create table %s: %v", tableName, tx.Error)
	}

	insertHead := "INSERT INTO " + tableName + " (" + strings.Join(models.CustomerColumns, ", ") + ") VALUES "
	bar := progressbar.Default(int64(len(dataset)))
	for start := 0; start < len(dataset); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(dataset) {
			end = len(dataset)
		}
		placeholders := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*len(models.CustomerColumns))
		for _, c := range dataset[start:end] {
			placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args, c.ID, c.CreditScore, c.Country, c.Gender, c.Age, c.Tenure,
				c.Balance, c.ProductsNumber, c.HasCreditCard, c.IsActive, c.EstimatedSalary, c.Churned)
		}
		if tx := db.Exec(insertHead+strings.Join(placeholders, ","), args...); tx.Error != nil {
			return "", fmt.Errorf("insert batch at %d: %v", start, tx.Error)
		}
		bar.Add(end - start)
	}
	log.Printf("staged %d customers into %s", len(dataset), tableName)
	return models.StagingTableName(tableName), nil
}
