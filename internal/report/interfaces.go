package report

import "driftremediator/internal/orchestrator"

// IPrinter is the interface for rendering remediation results
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintResult(result *orchestrator.Result, format OutputFormatType) error
}
