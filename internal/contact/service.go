package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusfind/lostfound-api/internal/notify"
	"github.com/campusfind/lostfound-api/internal/observability/metrics"
	"github.com/campusfind/lostfound-api/pkg/logging"
)

// NotificationDispatcher is the notify boundary the workflow depends on.
type NotificationDispatcher interface {
	Available() bool
	Dispatch(ctx context.Context, sub notify.Submission) notify.DispatchResult
}

// SubmissionResult is the unified outcome of one contact submission.
type SubmissionResult struct {
	ContactID   string    `json:"contactId"`
	ReferenceID string    `json:"referenceId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Timestamp   time.Time `json:"timestamp"`
	EmailsSent  bool      `json:"emailsSent"`
}

// Service orchestrates one contact submission: validate, normalize,
// persist, then best-effort dual notification. Persistence always precedes
// notification; a notification failure never fails the submission.
type Service struct {
	repo    Repository
	mailer  NotificationDispatcher
	metrics *metrics.ContactMetrics
	logger  *logging.Logger
}

// NewService creates a submission workflow service.
func NewService(repo Repository, mailer NotificationDispatcher, m *metrics.ContactMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:    repo,
		mailer:  mailer,
		metrics: m,
		logger:  logger,
	}
}

// Submit runs the pipeline for one inbound request. It returns
// ValidationErrors for malformed input, ErrDuplicateReference when the
// store rejected the generated reference id, or a wrapped store error.
// No notification is attempted unless the record was persisted.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmissionResult, error) {
	if errs := req.Validate(); len(errs) > 0 {
		s.metrics.ObserveSubmission("validation_failed")
		return nil, errs
	}
	req.Normalize()

	msg := &Message{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Body:        req.Message,
		Status:      StatusNew,
		ReferenceID: NewReferenceID(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		if errors.Is(err, ErrDuplicateReference) {
			s.metrics.ObserveSubmission("duplicate")
			return nil, err
		}
		s.metrics.ObserveSubmission("store_error")
		return nil, fmt.Errorf("contact: persist submission: %w", err)
	}
	s.metrics.ObserveSubmission("accepted")
	s.logger.Info("contact message saved", "id", msg.ID, "reference_id", msg.ReferenceID)

	emailsSent := false
	if s.mailer != nil && s.mailer.Available() {
		start := time.Now()
		res := s.mailer.Dispatch(ctx, notify.Submission{
			ContactID:   msg.ID,
			ReferenceID: msg.ReferenceID,
			Name:        msg.Name,
			Email:       msg.Email,
			Phone:       msg.Phone,
			Subject:     msg.Subject,
			Message:     msg.Body,
		})
		s.metrics.ObserveDispatchLatency(time.Since(start).Seconds())
		s.metrics.ObserveNotification("submitter", res.SubmitterSent)
		s.metrics.ObserveNotification("operator", res.OperatorSent)
		emailsSent = res.Sent()
		if !emailsSent {
			s.logger.Warn("notification dispatch incomplete",
				"id", msg.ID,
				"submitter_sent", res.SubmitterSent,
				"operator_sent", res.OperatorSent,
			)
		}
	} else {
		s.logger.Info("mail relay not configured, skipping notifications", "id", msg.ID)
	}

	return &SubmissionResult{
		ContactID:   msg.ID,
		ReferenceID: msg.ReferenceID,
		Name:        msg.Name,
		Email:       msg.Email,
		Subject:     msg.Subject,
		Timestamp:   msg.CreatedAt,
		EmailsSent:  emailsSent,
	}, nil
}
