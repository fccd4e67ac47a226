package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/store"
	"github.com/helojet/helojet-server/internal/validation"
)

// CRMContactsEndpoint is where leads would be forwarded. Nothing is sent;
// the request is only logged.
const CRMContactsEndpoint = "https://api.gohighlevel.com/v1/contacts/"

// LeadRequest is a booking form submission.
type LeadRequest struct {
	Name     string `json:"name" validate:"nonblank,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Phone    string `json:"phone" validate:"nonblank,max=50"`
	Interest string `json:"interest,omitempty" validate:"omitempty,oneof=printer smarthome consultation other"`
}

// LeadReceipt confirms a stored lead.
type LeadReceipt struct {
	Lead    domain.Lead `json:"lead"`
	Message string      `json:"message"`
}

// LeadService captures booking requests.
type LeadService struct {
	store     *store.Store
	validator *validation.Validator
	delay     time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewLeadService creates a lead service that waits delay before storing,
// standing in for the round trip to the CRM.
func NewLeadService(store *store.Store, validator *validation.Validator, delay time.Duration, logger *slog.Logger) *LeadService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LeadService{
		store:     store,
		validator: validator,
		delay:     delay,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates and stores a lead. Once validation passes the delay
// always runs to completion and the lead is stored, even if ctx ends.
func (s *LeadService) Submit(ctx context.Context, req LeadRequest) (*LeadReceipt, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	interest := domain.Interest(req.Interest)
	if interest == "" {
		interest = domain.DefaultInterest
	}

	// A client that goes away mid-submission still gets its lead stored.
	ctx = context.WithoutCancel(ctx)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	lead := domain.Lead{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Interest: interest,
	}
	lead.Stamp(s.now())

	if err := s.store.AppendLead(ctx, lead); err != nil {
		return nil, err
	}

	s.logger.Info("sending lead to CRM endpoint",
		slog.String("endpoint", CRMContactsEndpoint),
		slog.String("method", "POST"),
		slog.Group("body",
			slog.String("name", lead.Name),
			slog.String("email", lead.Email),
			slog.String("phone", lead.Phone),
			slog.String("interest", string(lead.Interest))))

	return &LeadReceipt{
		Lead: lead,
		Message: fmt.Sprintf(
			"Thank you, %s. One of our planning specialists will contact you at %s shortly to confirm your appointment details.",
			lead.Name, lead.Phone),
	}, nil
}

// List returns all captured leads, oldest first.
func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	return s.store.ListLeads(ctx)
}
