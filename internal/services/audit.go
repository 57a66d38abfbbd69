package services

import (
	"time"

	"github.com/google/uuid"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	"blackpiston/internal/repositories"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

type auditEvent struct {
	action  string
	target  string
	label   string
	details string
}

func recordAudit(log *repositories.AuditLog, actor domain.RequestContext, now func() time.Time, ev auditEvent) {
	if log == nil {
		return
	}
	ts := time.Now()
	if now != nil {
		ts = now()
	}
	log.Append(models.AuditEntry{
		ID:          uuid.NewString(),
		Action:      ev.action,
		Actor:       actor.ActorName(),
		ActorRole:   actor.ActorRole(),
		Target:      ev.target,
		TargetLabel: ev.label,
		Details:     ev.details,
		Timestamp:   utils.Timestamp(ts),
	})
}

// AuditService lists the audit trail.
type AuditService struct {
	Log *repositories.AuditLog
}

// AuditFilter narrows the trail. Action is a substring match, so "listing."
// selects every listing action.
type AuditFilter struct {
	Action string
	Actor  string
	Target string
}

func (s AuditService) List(f AuditFilter, paging Paging) Result[models.AuditEntry] {
	criteria := []table.Criterion{
		table.Contains("action", f.Action),
		table.Eq("actor", f.Actor),
		table.Eq("target", f.Target),
	}
	return run(s.Log.List(), criteria, table.SortSpec{}, paging)
}
