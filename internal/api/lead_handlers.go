package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/service"
)

func (s *Server) registerLeadRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "submitLead",
		Method:        http.MethodPost,
		Path:          "/api/v1/leads",
		Summary:       "Book a consultation",
		Description:   "Captures a booking request and returns the confirmation message",
		Tags:          []string{"Leads"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{s.leadRateLimit},
	}, s.handleSubmitLead)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLeads",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/leads",
		Summary:     "List leads",
		Description: "Returns captured booking requests, oldest first (admin only)",
		Tags:        []string{"Admin"},
	}, s.handleListLeads)
}

// SubmitLeadInput is the Huma input for the booking form.
type SubmitLeadInput struct {
	Body service.LeadRequest
}

// SubmitLeadOutput is the Huma output for the booking form.
type SubmitLeadOutput struct {
	Body *service.LeadReceipt
}

// ListLeadsOutput is the Huma output for the admin lead list.
type ListLeadsOutput struct {
	Body []domain.Lead
}

func (s *Server) handleSubmitLead(ctx context.Context, input *SubmitLeadInput) (*SubmitLeadOutput, error) {
	receipt, err := s.services.Leads.Submit(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &SubmitLeadOutput{Body: receipt}, nil
}

func (s *Server) handleListLeads(ctx context.Context, _ *struct{}) (*ListLeadsOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	leads, err := s.services.Leads.List(ctx)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return &ListLeadsOutput{Body: leads}, nil
}
