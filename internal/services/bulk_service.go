package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blackpiston/internal/domain"
	"blackpiston/internal/metrics"
	"blackpiston/internal/repositories"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

type BulkRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
	Reason string   `json:"reason,omitempty"`
}

type BulkResult struct {
	Success  bool     `json:"success"`
	Affected int      `json:"affected"`
	Skipped  []string `json:"skipped,omitempty"`
}

// BulkService applies one named action to a set of ids. Ids are checked
// against the live store first; ids that no longer exist are skipped and
// reported, never acted on. There is no rollback: each record either
// transitions or was skipped.
type BulkService[T table.Record] struct {
	Resource string
	Store    repositories.Store[T]
	Actions  map[string]domain.Status
	Label    func(T) string
	Audit    *repositories.AuditLog
	Metrics  *metrics.Recorder

	RequestID string
	Now       func() time.Time
}

func (s BulkService[T]) Execute(ctx context.Context, actor domain.RequestContext, req BulkRequest) (BulkResult, error) {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action == "" {
		return BulkResult{}, domain.ValidationError{Field: "action", Msg: "required"}
	}
	if _, ok := s.Actions[action]; !ok {
		return BulkResult{}, domain.ValidationError{Field: "action", Msg: fmt.Sprintf("unknown %s action %q", s.Resource, req.Action)}
	}
	if err := ctx.Err(); err != nil {
		return BulkResult{}, err
	}

	live, skipped := s.revalidate(req.IDs)
	affected := 0
	if len(live) > 0 {
		n, err := s.Store.BulkTransition(live, action)
		if err != nil {
			return BulkResult{}, err
		}
		affected = n
	}

	for _, id := range live {
		label := id
		if rec, err := s.Store.Get(id); err == nil && s.Label != nil {
			label = s.Label(rec)
		}
		details := "status=" + string(s.Actions[action])
		if r := strings.TrimSpace(req.Reason); r != "" {
			details += " reason=" + r
		}
		recordAudit(s.Audit, actor, s.Now, auditEvent{
			action:  s.Resource + "." + action,
			target:  id,
			label:   label,
			details: details,
		})
	}
	s.Metrics.Bulk(s.Resource, action, affected)
	utils.LogEvent(s.RequestID, s.Resource, "bulk_"+action, utils.KV(map[string]any{
		"requested": len(req.IDs),
		"affected":  affected,
		"skipped":   len(skipped),
	}))
	return BulkResult{Success: true, Affected: affected, Skipped: skipped}, nil
}

// revalidate drops blank and duplicate ids and splits the rest into ids the
// store still has and ids it does not.
func (s BulkService[T]) revalidate(ids []string) (live, skipped []string) {
	seen := map[string]bool{}
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if s.Store.Exists(id) {
			live = append(live, id)
		} else {
			skipped = append(skipped, id)
		}
	}
	return live, skipped
}
