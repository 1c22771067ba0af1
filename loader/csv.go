package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decodinggithub/Barclays-Customer-Churn-Analysis-Retention-Gap-Insights/domain/models"
)

// ReadCSV loads the churn table from a CSV file, unpacking .zip/.gz/.lz4
// archives first. Malformed rows are skipped and counted, a duplicate
// customer id aborts the load.
func ReadCSV(path string) ([]models.Customer, error) {
	dataPath, cleanup, err := unpackArchive(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	f, err := os.Open(dataPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sep, err := detectSeparator(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.Comma = sep
	r.LazyQuotes = true

	firstRow, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %v", path, err)
	}
	analysis := AnalyzeHeaders(firstRow)
	if analysis.FirstRowIsData {
		return nil, fmt.Errorf("%s has no header row, cannot map columns", path)
	}
	byIndex, err := mapColumns(analysis.Headers)
	if err != nil {
		return nil, err
	}

	var customers []models.Customer
	seen := map[int64]bool{}
	skipped := 0
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		c, err := parseCustomer(row, byIndex)
		if err != nil {
			skipped++
			continue
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate customer id %d at line %d", c.ID, line)
		}
		seen[c.ID] = true
		customers = append(customers, c)
	}
	if skipped > 0 {
		log.Printf("skipped %d malformed rows in %s", skipped, path)
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}
	return customers, nil
}

// detectSeparator sniffs the header line for ';' exports.
func detectSeparator(f io.Reader) (rune, error) {
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, err
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';', nil
	}
	return ',', nil
}

func parseCustomer(row []string, byIndex map[int]string) (models.Customer, error) {
	var c models.Customer
	for i, canonical := range byIndex {
		if i >= len(row) {
			return c, fmt.Errorf("row has %d fields, column %s expected at %d", len(row), canonical, i)
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			return c, fmt.Errorf("empty %s", canonical)
		}
		var err error
		switch canonical {
		case "id":
			c.ID, err = strconv.ParseInt(value, 10, 64)
		case "credit_score":
			c.CreditScore, err = strconv.Atoi(value)
		case "country":
			c.Country = value
		case "gender":
			c.Gender = value
		case "age":
			c.Age, err = nonNegativeInt(value)
		case "tenure":
			c.Tenure, err = nonNegativeInt(value)
		case "balance":
			c.Balance, err = strconv.ParseFloat(value, 64)
			if err == nil && c.Balance < 0 {
				err = fmt.Errorf("negative balance")
			}
		case "products_number":
			c.ProductsNumber, err = strconv.Atoi(value)
			if err == nil && c.ProductsNumber < 1 {
				err = fmt.Errorf("products below 1")
			}
		case "has_credit_card":
			c.HasCreditCard, err = parseBool(value)
		case "is_active":
			c.IsActive, err = parseBool(value)
		case "estimated_salary":
			c.EstimatedSalary, err = strconv.ParseFloat(value, 64)
		case "churned":
			c.Churned, err = parseBool(value)
		}
		if err != nil {
			return c, fmt.Errorf("bad %s value %q: %v", canonical, value, err)
		}
	}
	return c, nil
}

func nonNegativeInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value")
	}
	return n, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("not a bool")
}
