package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/pages"
)

func (s *Server) registerPageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPage",
		Method:      http.MethodGet,
		Path:        "/api/v1/pages/{name}",
		Summary:     "Get informational page",
		Description: "Renders privacy, terms, refunds, smart-home or contact as HTML or markdown",
		Tags:        []string{"Pages"},
	}, s.handleGetPage)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCompany",
		Method:      http.MethodGet,
		Path:        "/api/v1/company",
		Summary:     "Get company details",
		Tags:        []string{"Pages"},
	}, s.handleGetCompany)
}

// GetPageInput selects a page and its format.
type GetPageInput struct {
	Name   string `path:"name" doc:"Page name"`
	Format string `query:"format" enum:"html,markdown" doc:"Rendition (default html)"`
}

// PageOutput is the Huma output for a page.
type PageOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *pages.Page
}

// CompanyOutput is the Huma output for company details.
type CompanyOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         domain.CompanyInfo
}

func (s *Server) handleGetPage(_ context.Context, input *GetPageInput) (*PageOutput, error) {
	page, err := s.services.Pages.Render(input.Name, pages.Format(input.Format))
	if err != nil {
		return nil, err
	}
	return &PageOutput{CacheControl: CacheOneHour, Body: page}, nil
}

func (s *Server) handleGetCompany(_ context.Context, _ *struct{}) (*CompanyOutput, error) {
	return &CompanyOutput{CacheControl: CacheOneHour, Body: domain.Company}, nil
}
