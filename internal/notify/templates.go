package notify

import (
	"fmt"
	"strings"
	"time"
)

// Submission carries the persisted contact-form fields into the two
// outbound emails.
type Submission struct {
	ContactID   string
	ReferenceID string
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
}

// PhoneOrDefault renders a missing phone as "Not provided" so templates
// never show a blank field.
func (s Submission) PhoneOrDefault() string {
	if strings.TrimSpace(s.Phone) == "" {
		return "Not provided"
	}
	return s.Phone
}

const detailCell = `padding: 8px; border-bottom: 1px solid #e2e8f0;`

func detailRow(label, value string) string {
	return fmt.Sprintf(`<tr><td style="%s"><strong>%s:</strong></td><td style="%s">%s</td></tr>`,
		detailCell, label, detailCell, value)
}

func confirmationText(s Submission) string {
	return fmt.Sprintf(`Thank you for contacting Campus Lost & Found, %s!

Your message has been received. Reference ID: %s

Name: %s
Email: %s
Phone: %s
Subject: %s

Your message:
%s

Our campus team will review your message and get back to you within 24 hours during business days.

Campus Lost & Found Office
Student Center, Room 101, Mon-Fri 9:00 AM - 5:00 PM`,
		s.Name, s.ReferenceID, s.Name, s.Email, s.PhoneOrDefault(), s.Subject, s.Message)
}

func confirmationHTML(s Submission) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
  <h1 style="margin: 0; font-size: 24px;">🎉 Thank You for Contacting Campus Lost &amp; Found!</h1>
  <p style="margin: 10px 0 0 0;">We've received your message and will get back to you soon.</p>
</div>
<div style="padding: 30px; border: 1px solid #e2e8f0; border-top: none; border-radius: 0 0 12px 12px;">
  <div style="background: #dbeafe; padding: 15px; border-radius: 10px; text-align: center; font-family: monospace; font-weight: bold;">
    Reference ID: %s
  </div>
  <table style="border-collapse: collapse; width: 100%%; margin: 20px 0;">
    %s%s%s%s
  </table>
  <h3 style="color: #1e293b;">Your Message:</h3>
  <div style="background: #f8fafc; border-left: 4px solid #667eea; padding: 20px; border-radius: 8px;">
    <p style="margin: 0; white-space: pre-line;">%s</p>
  </div>
  <div style="background: #dbeafe; padding: 20px; border-radius: 12px; margin: 25px 0;">
    <h4 style="color: #1e40af; margin: 0 0 10px 0;">📅 What's Next?</h4>
    <p style="margin: 0; color: #374151;">Our campus team will review your message and get back to you within <strong>24 hours</strong> during business days.</p>
  </div>
  <div style="background: #f0fdf4; padding: 15px; border-radius: 10px; border-left: 4px solid #10b981;">
    <h4 style="color: #065f46; margin: 0 0 10px 0;">📍 Campus Lost &amp; Found Office</h4>
    <p style="margin: 5px 0; color: #374151;"><strong>Location:</strong> Student Center, Room 101<br><strong>Hours:</strong> Mon-Fri: 9:00 AM - 5:00 PM</p>
  </div>
</div>
<p style="text-align: center; color: #64748b; font-size: 12px; margin-top: 20px;">Campus Lost &amp; Found — we're here to help reunite you with your lost items!</p>
</div>`,
		s.ReferenceID,
		detailRow("Name", s.Name),
		detailRow("Email", s.Email),
		detailRow("Phone", s.PhoneOrDefault()),
		detailRow("Subject", "<strong>"+s.Subject+"</strong>"),
		s.Message)
}

func alertText(s Submission, at time.Time) string {
	return fmt.Sprintf(`New contact form submission.

Database ID: %s
Reference: %s
From: %s (%s)
Phone: %s
Subject: %s
Received: %s

Message:
%s`,
		s.ContactID, s.ReferenceID, s.Name, s.Email, s.PhoneOrDefault(), s.Subject,
		at.Format("January 2, 2006 at 3:04 PM"), s.Message)
}

func alertHTML(s Submission, at time.Time) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
<div style="background: linear-gradient(135deg, #ef4444 0%%, #dc2626 100%%); color: white; padding: 25px; border-radius: 12px 12px 0 0; text-align: center;">
  <h1 style="margin: 0; font-size: 22px;">📬 New Campus Lost &amp; Found Contact</h1>
  <p style="margin: 10px 0 0 0;">You have received a new message from the website contact form</p>
</div>
<div style="padding: 25px; border: 1px solid #e2e8f0; border-top: none; border-radius: 0 0 12px 12px;">
  <div style="background: #1e293b; color: white; padding: 10px 15px; border-radius: 8px; font-family: monospace; text-align: center;">Database ID: %s</div>
  <div style="background: #1e293b; color: white; padding: 10px 15px; border-radius: 8px; font-family: monospace; text-align: center; margin-top: 8px;">Reference: %s</div>
  <table style="border-collapse: collapse; width: 100%%; margin: 20px 0;">
    %s%s%s%s
  </table>
  <h3 style="color: #1e293b;">Message Content:</h3>
  <div style="background: #f1f5f9; padding: 20px; border-radius: 8px; border-left: 4px solid #3b82f6;">
    <p style="margin: 0; white-space: pre-line; line-height: 1.8;">%s</p>
  </div>
  <p style="text-align: center; margin: 25px 0 10px 0;">
    <a href="mailto:%s?subject=Re: %s (Ref: %s)" style="display: inline-block; padding: 12px 24px; background: #3b82f6; color: white; text-decoration: none; border-radius: 8px; font-weight: 600;">📧 Reply to %s</a>
  </p>
</div>
<p style="text-align: center; color: #64748b; font-size: 12px; margin-top: 20px;">This email was automatically generated from the Campus Lost &amp; Found contact form.</p>
</div>`,
		s.ContactID,
		s.ReferenceID,
		detailRow("From", fmt.Sprintf("<strong>%s</strong> (%s)", s.Name, s.Email)),
		detailRow("Phone", s.PhoneOrDefault()),
		detailRow("Subject", fmt.Sprintf(`<span style="color: #dc2626; font-weight: 600;">%s</span>`, s.Subject)),
		detailRow("Time", at.Format("January 2, 2006 at 3:04 PM")),
		s.Message,
		s.Email, s.Subject, s.ReferenceID, s.Name)
}
