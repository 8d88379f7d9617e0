package legacycodes

import (
	"fmt"
	"os"
	"time"

	"github.com/telewave/vpnbot/app/models"
	"github.com/telewave/vpnbot/internal/pkg/database"
	"gorm.io/gorm"
)

// Result summarizes one generator run.
type Result struct {
	Prepared []PreparedRow
	Skipped  []SkipRecord
	CSVPath  string
	Inserted int
}

// Run executes the full pipeline: collect legacy clients from the x-ui
// database, assign unique codes, write the CSV report and, unless dry-run,
// insert the prepared codes into the bot database.
func Run(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Missing database files are fatal before any side effect.
	if _, err := os.Stat(opts.XUIDBPath); err != nil {
		return nil, fmt.Errorf("x-ui DB not found: %s", opts.XUIDBPath)
	}
	if _, err := os.Stat(opts.BotDBPath); err != nil {
		return nil, fmt.Errorf("bot DB not found: %s", opts.BotDBPath)
	}

	xuiDB, err := database.OpenSQLite(opts.XUIDBPath)
	if err != nil {
		return nil, err
	}
	candidates, skipped, err := Collect(xuiDB, time.Now().UTC(), opts)
	if err != nil {
		return nil, fmt.Errorf("collect legacy clients: %w", err)
	}

	botDB, err := database.OpenSQLite(opts.BotDBPath)
	if err != nil {
		return nil, err
	}
	taken, err := loadExistingCodes(botDB)
	if err != nil {
		return nil, fmt.Errorf("load existing promocodes: %w", err)
	}

	prepared := make([]PreparedRow, 0, len(candidates))
	for _, candidate := range candidates {
		code, err := GenerateCode(taken, opts.CodePrefix, opts.CodeLength)
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, PreparedRow{Candidate: candidate, Code: code})
	}

	if err := WriteCSV(opts.OutputCSV, prepared, skipped); err != nil {
		return nil, err
	}

	result := &Result{Prepared: prepared, Skipped: skipped, CSVPath: opts.OutputCSV}
	if !opts.DryRun {
		if err := insertPromocodes(botDB, prepared); err != nil {
			return nil, fmt.Errorf("insert promocodes: %w", err)
		}
		result.Inserted = len(prepared)
	}
	return result, nil
}

func loadExistingCodes(db *gorm.DB) (map[string]struct{}, error) {
	var codes []string
	if err := db.Model(&models.Promocode{}).Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		taken[code] = struct{}{}
	}
	return taken, nil
}

func insertPromocodes(db *gorm.DB, prepared []PreparedRow) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, row := range prepared {
			promocode := models.Promocode{
				Code:     row.Code,
				Duration: row.Days,
			}
			if err := tx.Create(&promocode).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
