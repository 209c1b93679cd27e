package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/metrics"
	"bizdesk-backend/internal/notify"
	"bizdesk-backend/internal/repository"
)

// banReversalNote marks audit entries for reactivations that reverse a ban.
const banReversalNote = "[ban reversal]"

type transitionKind string

const (
	transitionApprove    transitionKind = "approve"
	transitionReject     transitionKind = "reject"
	transitionBlock      transitionKind = "block"
	transitionSuspend    transitionKind = "suspend"
	transitionBan        transitionKind = "ban"
	transitionReactivate transitionKind = "reactivate"
	transitionDeactivate transitionKind = "deactivate"
)

// transitionRule is one row of the closed transition table. Anything not
// expressible as a rule here is an invalid transition; there is no dynamic
// verb lookup.
type transitionRule struct {
	action         domain.AuditAction
	target         domain.TenantStatus
	sources        []domain.TenantStatus
	reasonRequired bool
	event          notify.EventType
}

var transitionTable = map[transitionKind]transitionRule{
	transitionApprove: {
		action:  domain.AuditActionApproveTenant,
		target:  domain.TenantStatusActive,
		sources: []domain.TenantStatus{domain.TenantStatusPendingApproval},
		event:   notify.EventApproval,
	},
	transitionReject: {
		action:         domain.AuditActionRejectTenant,
		target:         domain.TenantStatusRejected,
		sources:        []domain.TenantStatus{domain.TenantStatusPendingApproval},
		reasonRequired: true,
		event:          notify.EventRejection,
	},
	transitionBlock: {
		action:         domain.AuditActionBlockTenant,
		target:         domain.TenantStatusBlocked,
		sources:        []domain.TenantStatus{domain.TenantStatusActive},
		reasonRequired: true,
		event:          notify.EventSuspension,
	},
	transitionSuspend: {
		action:         domain.AuditActionSuspendTenant,
		target:         domain.TenantStatusSuspended,
		sources:        []domain.TenantStatus{domain.TenantStatusActive},
		reasonRequired: true,
		event:          notify.EventSuspension,
	},
	transitionBan: {
		action:         domain.AuditActionBanTenant,
		target:         domain.TenantStatusBanned,
		sources:        []domain.TenantStatus{domain.TenantStatusActive},
		reasonRequired: true,
		event:          notify.EventSuspension,
	},
	transitionReactivate: {
		action: domain.AuditActionReactivateTenant,
		target: domain.TenantStatusActive,
		sources: []domain.TenantStatus{
			domain.TenantStatusBlocked,
			domain.TenantStatusSuspended,
			domain.TenantStatusBanned,
			domain.TenantStatusInactive,
		},
		event: notify.EventReactivation,
	},
	transitionDeactivate: {
		action: domain.AuditActionDeactivateTenant,
		target: domain.TenantStatusInactive,
		sources: []domain.TenantStatus{
			domain.TenantStatusPendingApproval,
			domain.TenantStatusActive,
			domain.TenantStatusRejected,
			domain.TenantStatusBlocked,
			domain.TenantStatusSuspended,
			domain.TenantStatusBanned,
		},
		reasonRequired: true,
		event:          notify.EventDeactivation,
	},
}

type transitionInput struct {
	reason       string
	durationDays int
	overrideBan  bool
}

type lifecycleService struct {
	tenantRepo repository.TenantRepository
	dispatcher notify.Dispatcher
	timeout    time.Duration
	now        func() time.Time
}

func NewTenantLifecycleService(tenantRepo repository.TenantRepository, dispatcher notify.Dispatcher, timeout time.Duration) TenantLifecycleService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &lifecycleService{
		tenantRepo: tenantRepo,
		dispatcher: dispatcher,
		timeout:    timeout,
		now:        time.Now,
	}
}

func (s *lifecycleService) Approve(ctx context.Context, actor domain.Actor, tenantID, note string) (*domain.Tenant, error) {
	return s.transition(ctx, actor, tenantID, transitionApprove, transitionInput{reason: note})
}

func (s *lifecycleService) Reject(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	return s.transition(ctx, actor, tenantID, transitionReject, transitionInput{reason: reason})
}

func (s *lifecycleService) Block(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	return s.transition(ctx, actor, tenantID, transitionBlock, transitionInput{reason: reason})
}

func (s *lifecycleService) Suspend(ctx context.Context, actor domain.Actor, tenantID, reason string, durationDays int) (*domain.Tenant, error) {
	return s.transition(ctx, actor, tenantID, transitionSuspend, transitionInput{reason: reason, durationDays: durationDays})
}

func (s *lifecycleService) Ban(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	return s.transition(ctx, actor, tenantID, transitionBan, transitionInput{reason: reason})
}

func (s *lifecycleService) Reactivate(ctx context.Context, actor domain.Actor, tenantID, note string, overrideBan bool) (*domain.Tenant, error) {
	return s.transition(ctx, actor, tenantID, transitionReactivate, transitionInput{reason: note, overrideBan: overrideBan})
}

func (s *lifecycleService) Deactivate(ctx context.Context, actor domain.Actor, tenantID, reason string) (*domain.Tenant, error) {
	return s.transition(ctx, actor, tenantID, transitionDeactivate, transitionInput{reason: reason})
}

func (s *lifecycleService) transition(ctx context.Context, actor domain.Actor, tenantID string, kind transitionKind, in transitionInput) (*domain.Tenant, error) {
	rule, ok := transitionTable[kind]
	if !ok {
		return nil, fmt.Errorf("unknown transition %q", kind)
	}

	current, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(rule.sources, current.Status) {
		return nil, &domain.InvalidTransitionError{Current: current.Status, Requested: rule.target}
	}
	// A bare reactivate must not reverse a ban; the caller has to acknowledge
	// the severity explicitly.
	if kind == transitionReactivate && current.Status == domain.TenantStatusBanned && !in.overrideBan {
		return nil, &domain.InvalidTransitionError{Current: current.Status, Requested: rule.target}
	}
	reason := strings.TrimSpace(in.reason)
	if rule.reasonRequired && reason == "" {
		return nil, domain.ErrReasonRequired
	}

	now := s.now().UTC()
	updated := *current
	updated.Status = rule.target
	updated.StatusReason = reason
	updated.StatusChangedAt = now
	updated.StatusChangedBy = actor.ID
	updated.SuspensionExpiresAt = nil
	if kind == transitionSuspend && in.durationDays > 0 {
		expires := now.Add(time.Duration(in.durationDays) * 24 * time.Hour)
		updated.SuspensionExpiresAt = &expires
	}

	details := reason
	if kind == transitionReactivate && current.Status == domain.TenantStatusBanned {
		details = strings.TrimSpace(banReversalNote + " " + details)
	}
	entry := &domain.AuditLogEntry{
		Action:     rule.action,
		TargetID:   current.ID,
		TargetName: current.Name,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Details:    details,
		IPAddress:  actor.IPAddress,
		CreatedAt:  now,
	}

	commitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.tenantRepo.ApplyStatusChange(commitCtx, &updated, current.StatusVersion, entry); err != nil {
		if errors.Is(err, domain.ErrStaleState) {
			metrics.TransitionConflictsTotal.Inc()
		}
		return nil, err
	}
	metrics.TransitionsTotal.WithLabelValues(string(rule.action)).Inc()
	metrics.AuditEntriesTotal.Inc()

	s.dispatcher.Dispatch(s.buildEvent(rule, &updated, reason))
	return &updated, nil
}

func (s *lifecycleService) buildEvent(rule transitionRule, t *domain.Tenant, reason string) notify.Event {
	payload := map[string]string{
		"status":        string(t.Status),
		"reason":        reason,
		"contact_email": t.ContactEmail,
		"contact_name":  t.ContactName,
	}
	if t.SuspensionExpiresAt != nil {
		payload["suspension_expires_at"] = t.SuspensionExpiresAt.Format(time.RFC3339)
	}
	return notify.Event{
		Type:       rule.event,
		TenantID:   t.ID,
		TenantName: t.Name,
		Payload:    payload,
	}
}
