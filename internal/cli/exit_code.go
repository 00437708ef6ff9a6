package cli

import (
	"errors"

	"github.com/benedict2310/fuzzstats/internal/rstats"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
	"github.com/benedict2310/fuzzstats/pkg/extract"
)

// Exit codes by failure kind. Anything unrecognized, including unknown
// subcommands, exits 1.
const (
	exitCodeParse        = 2
	exitCodeValidation   = 3
	exitCodeExternalTool = 4
)

type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded *ExitError
	if errors.As(err, &coded) && coded.Code > 0 {
		return coded.Code
	}
	var parseErr *extract.ParseError
	if errors.As(err, &parseErr) {
		return exitCodeParse
	}
	var validationErr *dataset.ValidationError
	if errors.As(err, &validationErr) {
		return exitCodeValidation
	}
	var toolErr *rstats.ExternalToolError
	if errors.As(err, &toolErr) {
		return exitCodeExternalTool
	}
	return 1
}
