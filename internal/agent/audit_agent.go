package agent

import (
	"context"

	auditService "anoa.com/fitquest/internal/modules/audit/service"
	"go.uber.org/zap"
)

const AuditAgentName = "ledger_audit"

// AuditAgent checks every user's balance against the ledger.
type AuditAgent struct {
	service  auditService.AuditService
	schedule string
	log      *zap.Logger
}

func NewAuditAgent(service auditService.AuditService, schedule string, log *zap.Logger) *AuditAgent {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditAgent{service: service, schedule: schedule, log: log}
}

func (a *AuditAgent) GetName() string     { return AuditAgentName }
func (a *AuditAgent) GetSchedule() string { return a.schedule }

func (a *AuditAgent) Execute(ctx context.Context) error {
	summary, err := a.service.AuditAll(ctx)
	if err != nil {
		return err
	}

	if len(summary.Inconsistent) > 0 {
		a.log.Warn("ledger audit found drift",
			zap.Int("checked", summary.Checked),
			zap.Int("inconsistent", len(summary.Inconsistent)),
		)
		return nil
	}
	a.log.Info("ledger audit clean", zap.Int("checked", summary.Checked))
	return nil
}
