package worker

import (
	"github.com/spec-kit/helpdesk-analytics/internal/service"
)

// StartLedgerWorker registers download-ledger handlers.
func StartLedgerWorker(ledgerService *service.LedgerService) {
	if ledgerService == nil {
		return
	}
	ledgerService.RegisterHandlers()
}
