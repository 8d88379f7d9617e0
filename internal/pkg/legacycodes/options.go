package legacycodes

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Options configures one generator run. Defaults mirror the CLI flags.
type Options struct {
	XUIDBPath            string `validate:"required"`
	BotDBPath            string `validate:"required"`
	IncludeNumericEmails bool
	InboundID            int
	MinDays              int    `validate:"min=1"`
	UnlimitedDays        int    `validate:"min=0"`
	CodePrefix           string `validate:"required"`
	CodeLength           int    `validate:"min=2"`
	OutputCSV            string `validate:"required"`
	DryRun               bool
}

var optionsValidator = validator.New()

func (o Options) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return fmt.Errorf("invalid generator options: %w", err)
	}
	return nil
}
