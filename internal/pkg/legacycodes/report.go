package legacycodes

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// PreparedRow is a retained candidate with its assigned code.
type PreparedRow struct {
	Candidate
	Code string
}

var csvHeader = []string{"email", "inbound_id", "client_id", "days", "promocode", "status"}

// WriteCSV writes one row per prepared candidate followed by one row per
// skipped candidate. Skipped rows keep identity columns but leave days and
// code blank.
func WriteCSV(path string, prepared []PreparedRow, skipped []SkipRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range prepared {
		record := []string{
			row.Email,
			strconv.Itoa(row.InboundID),
			row.ClientID,
			strconv.Itoa(row.Days),
			row.Code,
			"prepared",
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	for _, row := range skipped {
		record := []string{
			row.Email,
			strconv.Itoa(row.InboundID),
			row.ClientID,
			"",
			"",
			"skipped:" + row.Reason,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
