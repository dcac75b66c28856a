package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/campusfind/lostfound-api/pkg/logging"
)

// DispatchResult reports, per recipient, whether a notification was
// handed to the relay successfully.
type DispatchResult struct {
	SubmitterSent bool
	OperatorSent  bool
}

// Sent reports whether both notifications were delivered to the relay.
func (r DispatchResult) Sent() bool {
	return r.SubmitterSent && r.OperatorSent
}

// Dispatcher renders and sends the two notifications for one contact
// submission: a confirmation to the submitter and an alert to the
// operator address. Relay errors never escape Dispatch; they only show up
// as false flags in the result.
type Dispatcher struct {
	sender        EmailSender
	fromEmail     string
	operatorEmail string
	logger        *logging.Logger
}

// NewDispatcher creates a dispatcher. The operator address falls back to
// the relay's own sending identity when unset. A nil sender produces a
// dispatcher that reports itself unavailable.
func NewDispatcher(sender EmailSender, fromEmail, operatorEmail string, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if operatorEmail == "" {
		operatorEmail = fromEmail
	}
	return &Dispatcher{
		sender:        sender,
		fromEmail:     fromEmail,
		operatorEmail: operatorEmail,
		logger:        logger,
	}
}

// Available reports whether a mail relay is configured. When false the
// submission workflow skips dispatch entirely instead of failing per call.
func (d *Dispatcher) Available() bool {
	return d != nil && d.sender != nil
}

// Dispatch attempts both notifications. Each send is independent: one
// failure does not prevent the other attempt.
func (d *Dispatcher) Dispatch(ctx context.Context, sub Submission) DispatchResult {
	var res DispatchResult
	if !d.Available() {
		return res
	}

	confirmation := EmailMessage{
		To:      sub.Email,
		ToName:  sub.Name,
		Subject: fmt.Sprintf("✅ Thank you for contacting Campus Lost & Found, %s!", sub.Name),
		Body:    confirmationText(sub),
		HTML:    confirmationHTML(sub),
	}
	if err := d.sender.Send(ctx, confirmation); err != nil {
		d.logger.Error("failed to send submitter confirmation", "error", err, "reference_id", sub.ReferenceID)
	} else {
		res.SubmitterSent = true
	}

	// Timestamped at alert generation, not at record creation.
	now := time.Now()
	alert := EmailMessage{
		To:      d.operatorEmail,
		Subject: fmt.Sprintf("📧 New Campus Contact: %s from %s", sub.Subject, sub.Name),
		Body:    alertText(sub, now),
		HTML:    alertHTML(sub, now),
	}
	if err := d.sender.Send(ctx, alert); err != nil {
		d.logger.Error("failed to send operator alert", "error", err, "reference_id", sub.ReferenceID)
	} else {
		res.OperatorSent = true
	}

	return res
}
