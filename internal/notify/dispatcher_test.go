package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type recordingSender struct {
	sent    []EmailMessage
	failFor map[string]error
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := r.failFor[msg.To]; err != nil {
		return err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func sampleSubmission() Submission {
	return Submission{
		ContactID:   "4f8b7e4e-9d6e-4d43-8f2a-7f2b1c9a0d11",
		ReferenceID: "CAMPUS-1700000000000-AB12C",
		Name:        "Ann Lee",
		Email:       "ann@campus.edu",
		Subject:     "Lost badge",
		Message:     "I lost my badge near the library.",
	}
}

func TestDispatchBothRecipients(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, "noreply@campus.edu", "office@campus.edu", nil)

	res := d.Dispatch(context.Background(), sampleSubmission())
	if !res.Sent() || !res.SubmitterSent || !res.OperatorSent {
		t.Fatalf("expected both sends to succeed, got %+v", res)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}

	confirmation, alert := sender.sent[0], sender.sent[1]
	if confirmation.To != "ann@campus.edu" {
		t.Errorf("confirmation went to %q", confirmation.To)
	}
	if !strings.Contains(confirmation.Subject, "Thank you for contacting Campus Lost & Found, Ann Lee") {
		t.Errorf("unexpected confirmation subject %q", confirmation.Subject)
	}
	if !strings.Contains(confirmation.Body, "CAMPUS-1700000000000-AB12C") {
		t.Error("confirmation body missing reference id")
	}

	if alert.To != "office@campus.edu" {
		t.Errorf("alert went to %q", alert.To)
	}
	if !strings.Contains(alert.Subject, "New Campus Contact: Lost badge from Ann Lee") {
		t.Errorf("unexpected alert subject %q", alert.Subject)
	}
	if !strings.Contains(alert.Body, "Database ID: 4f8b7e4e-9d6e-4d43-8f2a-7f2b1c9a0d11") {
		t.Error("alert body missing database id")
	}
}

func TestDispatchFirstFailureStillSendsSecond(t *testing.T) {
	sender := &recordingSender{failFor: map[string]error{
		"ann@campus.edu": errors.New("mailbox full"),
	}}
	d := NewDispatcher(sender, "noreply@campus.edu", "office@campus.edu", nil)

	res := d.Dispatch(context.Background(), sampleSubmission())
	if res.SubmitterSent {
		t.Error("submitter send should have failed")
	}
	if !res.OperatorSent {
		t.Error("operator alert must still be attempted after a failure")
	}
	if res.Sent() {
		t.Error("Sent must require both flags")
	}
	if len(sender.sent) != 1 || sender.sent[0].To != "office@campus.edu" {
		t.Errorf("unexpected sends %+v", sender.sent)
	}
}

func TestDispatchOperatorFallsBackToFrom(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, "noreply@campus.edu", "", nil)

	d.Dispatch(context.Background(), sampleSubmission())
	if len(sender.sent) != 2 || sender.sent[1].To != "noreply@campus.edu" {
		t.Errorf("expected alert to fall back to from address, got %+v", sender.sent)
	}
}

func TestDispatcherUnavailable(t *testing.T) {
	var d *Dispatcher
	if d.Available() {
		t.Error("nil dispatcher must report unavailable")
	}

	d = NewDispatcher(nil, "noreply@campus.edu", "", nil)
	if d.Available() {
		t.Error("dispatcher without a sender must report unavailable")
	}
	res := d.Dispatch(context.Background(), sampleSubmission())
	if res.SubmitterSent || res.OperatorSent {
		t.Errorf("dispatch without a sender must be a no-op, got %+v", res)
	}

	d = NewDispatcher(&recordingSender{}, "noreply@campus.edu", "", nil)
	if !d.Available() {
		t.Error("dispatcher with a sender must report available")
	}
}

func TestTemplatesPhoneDefault(t *testing.T) {
	sub := sampleSubmission()

	if got := sub.PhoneOrDefault(); got != "Not provided" {
		t.Errorf("expected Not provided, got %q", got)
	}
	if !strings.Contains(confirmationHTML(sub), "Not provided") {
		t.Error("confirmation HTML missing phone default")
	}
	if !strings.Contains(alertText(sub, time.Now()), "Phone: Not provided") {
		t.Error("alert text missing phone default")
	}

	sub.Phone = "+1 555 0100"
	if got := sub.PhoneOrDefault(); got != "+1 555 0100" {
		t.Errorf("expected real phone, got %q", got)
	}
}

func TestAlertTemplatesCarryIdentifiers(t *testing.T) {
	sub := sampleSubmission()
	at := time.Date(2026, time.August, 31, 14, 30, 0, 0, time.UTC)

	text := alertText(sub, at)
	for _, want := range []string{sub.ContactID, sub.ReferenceID, "August 31, 2026 at 2:30 PM"} {
		if !strings.Contains(text, want) {
			t.Errorf("alert text missing %q", want)
		}
	}

	html := alertHTML(sub, at)
	for _, want := range []string{sub.ContactID, sub.ReferenceID, "mailto:ann@campus.edu"} {
		if !strings.Contains(html, want) {
			t.Errorf("alert HTML missing %q", want)
		}
	}
}
