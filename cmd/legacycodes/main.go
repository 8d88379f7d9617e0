// Command legacycodes generates one-time promocodes for legacy x-ui
// clients so they can redeem their remaining subscription time in the bot.
//
// Legacy client = client with a non-numeric email in the x-ui inbound
// settings. Numeric emails are usually Telegram IDs already managed by
// the bot.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/telewave/vpnbot/internal/pkg/legacycodes"
)

func main() {
	opts := parseFlags()

	result, err := legacycodes.Run(opts)
	if err != nil {
		log.Fatalf("legacycodes: %v", err)
	}

	if opts.DryRun {
		fmt.Println("[DRY RUN] No DB writes were made.")
	} else {
		fmt.Printf("Inserted %d promocodes into bot DB.\n", result.Inserted)
	}

	fmt.Printf("Prepared clients: %d\n", len(result.Prepared))
	fmt.Printf("Skipped clients: %d\n", len(result.Skipped))
	fmt.Printf("CSV: %s\n", result.CSVPath)

	if len(result.Prepared) > 0 {
		sample := result.Prepared
		if len(sample) > 5 {
			sample = sample[:5]
		}
		fmt.Println("\nSample:")
		for _, row := range sample {
			fmt.Printf("- %s: %d days -> %s\n", row.Email, row.Days, row.Code)
		}
	}
}

func parseFlags() legacycodes.Options {
	var opts legacycodes.Options

	flag.StringVar(&opts.XUIDBPath, "xui-db", "/etc/x-ui/x-ui.db", "Path to x-ui sqlite DB")
	flag.StringVar(&opts.BotDBPath, "bot-db", "app/data/bot_database.sqlite3", "Path to bot sqlite DB (with promocodes table)")
	flag.BoolVar(&opts.IncludeNumericEmails, "include-numeric-emails", false, "Also include numeric emails (usually tg_id). Off by default.")
	flag.IntVar(&opts.InboundID, "inbound-id", 0, "Process only specific inbound ID (0 = all)")
	flag.IntVar(&opts.MinDays, "min-days", 1, "Skip clients with remaining days below this value")
	flag.IntVar(&opts.UnlimitedDays, "unlimited-days", 0, "Assign this duration to clients with expiryTime=0 (unlimited). By default they are skipped.")
	flag.StringVar(&opts.CodePrefix, "code-prefix", "MIG", "Promocode prefix")
	flag.IntVar(&opts.CodeLength, "code-length", 11, "Total promocode length including prefix")
	flag.StringVar(&opts.OutputCSV, "output-csv", defaultCSVName(), "Output CSV file with mapping email -> promocode")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Do not write to bot DB, only print and create CSV preview")
	flag.Parse()

	return opts
}

func defaultCSVName() string {
	return fmt.Sprintf("legacy_promocodes_%s.csv", time.Now().UTC().Format("20060102_150405"))
}
