package services

import (
	"fmt"
	"strings"
	"time"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	"blackpiston/internal/repositories"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

type UserService struct {
	Users     repositories.Store[models.User]
	Audit     *repositories.AuditLog
	RequestID string
	Now       func() time.Time
}

func (s UserService) List(f UserFilter, sort table.SortSpec, paging Paging) Result[models.User] {
	return run(s.Users.List(nil), f.Criteria(), sort, paging)
}

func (s UserService) Matching(f UserFilter, sort table.SortSpec) []models.User {
	return table.Sort(table.Filter(s.Users.List(nil), f.Criteria()...), sort)
}

func (s UserService) Get(id string) (models.User, error) {
	return s.Users.Get(strings.TrimSpace(id))
}

// FindByEmail is case-insensitive.
func (s UserService) FindByEmail(email string) (models.User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	found := s.Users.List(func(u models.User) bool { return strings.ToLower(u.Email) == email })
	if len(found) == 0 {
		return models.User{}, false
	}
	return found[0], true
}

func (s UserService) Patch(actor domain.RequestContext, id string, raw []byte) (models.User, error) {
	u, keys, err := s.Users.Patch(strings.TrimSpace(id), raw)
	if err != nil {
		return models.User{}, err
	}
	details := "fields=" + strings.Join(keys, ",")
	recordAudit(s.Audit, actor, s.Now, auditEvent{action: "user.update", target: u.ID, label: u.Name, details: details})
	utils.LogEvent(s.RequestID, "users", "patch", fmt.Sprintf("id=%s %s", u.ID, details))
	return u, nil
}
