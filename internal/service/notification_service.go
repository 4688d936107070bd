package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/notify"
)

// NotificationService turns domain events into outbound mail. Delivery is
// best effort: per-recipient failures are logged and never surfaced to the
// operation that raised the event.
type NotificationService struct {
	dispatcher notify.Dispatcher
	mailer     notify.Mailer
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher notify.Dispatcher, mailer notify.Mailer, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(notify.EventContractorsAssigned, n.handleContractorsAssigned)
	n.dispatcher.Subscribe(notify.EventCorrectionSubmitted, n.handleCorrectionSubmitted)
	n.dispatcher.Subscribe(notify.EventUserInvited, n.handleUserInvited)
}

func (n *NotificationService) handleContractorsAssigned(ctx context.Context, event notify.Event) error {
	payload, ok := event.Payload.(notify.ContractorsAssignedPayload)
	if !ok {
		return nil
	}
	n.NotifyAssignment(ctx, payload)
	return nil
}

// NotifyAssignment fans out one assignment mail per recipient and returns
// the per-recipient summary. Called directly by the event workflow so the
// caller can report sent/failed counts.
func (n *NotificationService) NotifyAssignment(ctx context.Context, payload notify.ContractorsAssignedPayload) notify.FanOutSummary {
	subject := fmt.Sprintf("New job assignment: %s", payload.EventName)
	body := assignmentBody(payload)

	summary := notify.FanOut(ctx, n.mailer, payload.Recipients, subject, body, n.cfg.MaxInFlight)
	n.logFanOut("ContractorsAssigned", payload.EventID, summary)
	return summary
}

func (n *NotificationService) handleCorrectionSubmitted(ctx context.Context, event notify.Event) error {
	payload, ok := event.Payload.(notify.CorrectionSubmittedPayload)
	if !ok {
		return nil
	}
	if strings.TrimSpace(n.cfg.AdminEmail) == "" {
		return nil
	}

	subject := fmt.Sprintf("Correction report submitted (%s)", payload.RequestType)
	body := fmt.Sprintf(
		"<p>A correction report was submitted.</p><p>Report: %s<br>Event: %s<br>Contractor: %s<br>Type: %s</p>",
		payload.CorrectionID, payload.EventID, payload.UserID, payload.RequestType)

	if err := n.mailer.Send(ctx, n.cfg.AdminEmail, subject, body); err != nil {
		n.logger.Warn("admin correction notification failed",
			zap.String("correction_id", payload.CorrectionID),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleUserInvited(ctx context.Context, event notify.Event) error {
	payload, ok := event.Payload.(notify.UserInvitedPayload)
	if !ok {
		return nil
	}

	subject := "Your account is ready"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>An account has been created for you. Sign in with this temporary password and choose a new one:</p><p><b>%s</b></p><p><a href=%q>Log in</a></p>",
		payload.Recipient.Name, payload.TempPassword, payload.LoginLink)

	if err := n.mailer.Send(ctx, payload.Recipient.Email, subject, body); err != nil {
		n.logger.Warn("invite notification failed",
			zap.String("user_id", payload.Recipient.UserID),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) logFanOut(kind, eventID string, summary notify.FanOutSummary) {
	if len(summary.Failed) > 0 {
		n.logger.Warn("notification fan-out completed with failures",
			zap.String("kind", kind),
			zap.String("event_id", eventID),
			zap.Int("sent", summary.Sent),
			zap.Strings("failed", summary.Failed))
		return
	}
	n.logger.Info("notification fan-out completed",
		zap.String("kind", kind),
		zap.String("event_id", eventID),
		zap.Int("sent", summary.Sent))
}

func assignmentBody(p notify.ContractorsAssignedPayload) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>You have been assigned to <b>%s</b>.</p>", p.EventName))
	b.WriteString(fmt.Sprintf("<p>Load in: %s<br>Load out: %s<br>Location: %s</p>",
		p.LoadIn.Format("Mon Jan 2 2006 3:04 PM"),
		p.LoadOut.Format("Mon Jan 2 2006 3:04 PM"),
		p.Location))
	b.WriteString(fmt.Sprintf("<p><a href=%q>Review and respond</a></p>", p.ActionLink))
	return b.String()
}
