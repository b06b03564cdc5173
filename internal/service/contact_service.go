package service

import (
	"context"
	"fmt"

	"github.com/kpruthvi/portfolio/internal/logging"
)

// Verifier checks a single-use bot-verification token
type Verifier interface {
	VerifyToken(ctx context.Context, token, remoteIP string) error
}

// Mailer delivers a submission to the fixed recipient
type Mailer interface {
	SendContactMessage(ctx context.Context, sub Submission) error
}

// ContactService runs the relay pipeline: validate, verify, deliver.
// It holds no per-request state and never retries.
type ContactService struct {
	verifier Verifier
	mailer   Mailer
	logger   *logging.Logger
}

// NewContactService creates a new contact service
func NewContactService(verifier Verifier, mailer Mailer, logger *logging.Logger) *ContactService {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &ContactService{
		verifier: verifier,
		mailer:   mailer,
		logger:   logger,
	}
}

// Submit relays one submission. Delivery is attempted only after the token
// has been verified; the returned error wraps one of the sentinel errors.
func (s *ContactService) Submit(ctx context.Context, sub Submission, token, remoteIP string) error {
	if sub.Name == "" || sub.Email == "" || sub.Message == "" || token == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	if err := s.verifier.VerifyToken(ctx, token, remoteIP); err != nil {
		s.logger.Warn("Turnstile verification failed for %s: %v", remoteIP, err)
		if CategoryOf(err) != CategoryVerification {
			err = fmt.Errorf("%w: %v", ErrVerification, err)
		}
		return err
	}

	if err := s.mailer.SendContactMessage(ctx, sub); err != nil {
		s.logger.Error("Email send error: %v", err)
		if CategoryOf(err) != CategoryDelivery {
			err = fmt.Errorf("%w: %v", ErrDelivery, err)
		}
		return err
	}

	s.logger.Info("Relayed contact message from %s", remoteIP)
	return nil
}
