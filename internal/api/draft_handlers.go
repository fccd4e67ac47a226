package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/helojet/helojet-server/internal/service"
)

func (s *Server) registerDraftRoutes() {
	const base = "/api/v1/admin/drafts"
	tags := []string{"Editor"}

	huma.Register(s.api, huma.Operation{
		OperationID:   "openDraft",
		Method:        http.MethodPost,
		Path:          base,
		Summary:       "Open draft",
		Description:   "Opens an empty draft, or a copy of an existing product when product_id is given",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, s.handleOpenDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDraft",
		Method:      http.MethodGet,
		Path:        base + "/{id}",
		Summary:     "Get draft",
		Tags:        tags,
	}, s.handleGetDraft)

	huma.Register(s.api, huma.Operation{
		OperationID:   "discardDraft",
		Method:        http.MethodDelete,
		Path:          base + "/{id}",
		Summary:       "Discard draft",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDiscardDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchDraft",
		Method:      http.MethodPatch,
		Path:        base + "/{id}",
		Summary:     "Set draft fields",
		Description: "Sets scalar product fields; omitted fields are left alone",
		Tags:        tags,
	}, s.handlePatchDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "setDraftArrayItem",
		Method:      http.MethodPut,
		Path:        base + "/{id}/arrays/{field}/{index}",
		Summary:     "Set list item",
		Description: "Overwrites one entry of description, features or targetAudience",
		Tags:        tags,
	}, s.handleSetArrayItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "addDraftArrayItem",
		Method:      http.MethodPost,
		Path:        base + "/{id}/arrays/{field}",
		Summary:     "Add list item",
		Description: "Appends an empty entry",
		Tags:        tags,
	}, s.handleAddArrayItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeDraftArrayItem",
		Method:      http.MethodDelete,
		Path:        base + "/{id}/arrays/{field}/{index}",
		Summary:     "Remove list item",
		Tags:        tags,
	}, s.handleRemoveArrayItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "addDraftImage",
		Method:      http.MethodPost,
		Path:        base + "/{id}/images",
		Summary:     "Add image by URL",
		Tags:        tags,
	}, s.handleAddImageURL)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeDraftImage",
		Method:      http.MethodDelete,
		Path:        base + "/{id}/images/{index}",
		Summary:     "Remove image",
		Tags:        tags,
	}, s.handleRemoveImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "moveDraftImage",
		Method:      http.MethodPost,
		Path:        base + "/{id}/images/move",
		Summary:     "Reorder images",
		Description: "Moves the image at from so it ends up at to",
		Tags:        tags,
	}, s.handleMoveImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateDraft",
		Method:      http.MethodPost,
		Path:        base + "/{id}/generate",
		Summary:     "Generate listing content",
		Description: "Fills a new draft with placeholder copy for an Amazon URL",
		Tags:        tags,
	}, s.handleGenerate)

	huma.Register(s.api, huma.Operation{
		OperationID: "commitDraft",
		Method:      http.MethodPost,
		Path:        base + "/{id}/commit",
		Summary:     "Save draft",
		Description: "Validates the draft and writes it to the catalog",
		Tags:        tags,
	}, s.handleCommitDraft)
}

// === DTOs ===

// DraftIDInput identifies a draft.
type DraftIDInput struct {
	ID string `path:"id" doc:"Draft ID"`
}

// DraftOutput is the Huma output for any call returning a draft.
type DraftOutput struct {
	Body *service.Draft
}

// OpenDraftRequest optionally names the product to edit.
type OpenDraftRequest struct {
	ProductID string `json:"product_id,omitempty" doc:"Existing product to edit; omit for a new product"`
}

// OpenDraftInput is the Huma input for opening a draft.
type OpenDraftInput struct {
	Body *OpenDraftRequest `required:"false"`
}

// PatchDraftInput is the Huma input for scalar edits.
type PatchDraftInput struct {
	ID   string `path:"id" doc:"Draft ID"`
	Body service.DraftPatch
}

// ArrayFieldInput addresses one of the editable lists.
type ArrayFieldInput struct {
	ID    string `path:"id" doc:"Draft ID"`
	Field string `path:"field" enum:"description,features,targetAudience" doc:"List name"`
}

// ArrayItemInput addresses one entry of a list.
type ArrayItemInput struct {
	ID    string `path:"id" doc:"Draft ID"`
	Field string `path:"field" enum:"description,features,targetAudience" doc:"List name"`
	Index int    `path:"index" minimum:"0" doc:"Zero-based position"`
}

// SetArrayItemRequest holds the new entry text.
type SetArrayItemRequest struct {
	Value string `json:"value" doc:"Entry text"`
}

// SetArrayItemInput is the Huma input for overwriting a list entry.
type SetArrayItemInput struct {
	ArrayItemInput
	Body SetArrayItemRequest
}

// AddImageRequest is the body for adding an image by URL.
type AddImageRequest struct {
	URL string `json:"url" maxLength:"4096" doc:"Image URL"`
}

// AddImageInput is the Huma input for adding an image by URL.
type AddImageInput struct {
	ID   string `path:"id" doc:"Draft ID"`
	Body AddImageRequest
}

// ImageIndexInput addresses one gallery image.
type ImageIndexInput struct {
	ID    string `path:"id" doc:"Draft ID"`
	Index int    `path:"index" minimum:"0" doc:"Zero-based position"`
}

// MoveImageRequest describes a reorder.
type MoveImageRequest struct {
	From int `json:"from" minimum:"0" doc:"Current position"`
	To   int `json:"to" minimum:"0" doc:"Target position"`
}

// MoveImageInput is the Huma input for reordering images.
type MoveImageInput struct {
	ID   string `path:"id" doc:"Draft ID"`
	Body MoveImageRequest
}

// GenerateRequest names the Amazon listing to generate from.
type GenerateRequest struct {
	AmazonURL string `json:"amazon_url" maxLength:"4096" doc:"Amazon product URL"`
}

// GenerateInput is the Huma input for content generation.
type GenerateInput struct {
	ID   string `path:"id" doc:"Draft ID"`
	Body GenerateRequest
}

// CommitOutput is the Huma output for a commit.
type CommitOutput struct {
	Body *service.CommitResult
}

// === Handlers ===

func (s *Server) handleOpenDraft(ctx context.Context, input *OpenDraftInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	var (
		d   *service.Draft
		err error
	)
	if input.Body != nil && input.Body.ProductID != "" {
		d, err = s.services.Editor.EditDraft(ctx, input.Body.ProductID)
	} else {
		d, err = s.services.Editor.NewDraft(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &DraftOutput{Body: d}, nil
}

func (s *Server) handleGetDraft(ctx context.Context, input *DraftIDInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	d, err := s.services.Editor.GetDraft(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &DraftOutput{Body: d}, nil
}

func (s *Server) handleDiscardDraft(ctx context.Context, input *DraftIDInput) (*struct{}, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Editor.DiscardDraft(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handlePatchDraft(ctx context.Context, input *PatchDraftInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.PatchDraft(ctx, input.ID, input.Body))
}

func (s *Server) handleSetArrayItem(ctx context.Context, input *SetArrayItemInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.SetArrayItem(ctx, input.ID, input.Field, input.Index, input.Body.Value))
}

func (s *Server) handleAddArrayItem(ctx context.Context, input *ArrayFieldInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.AddArrayItem(ctx, input.ID, input.Field))
}

func (s *Server) handleRemoveArrayItem(ctx context.Context, input *ArrayItemInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.RemoveArrayItem(ctx, input.ID, input.Field, input.Index))
}

func (s *Server) handleAddImageURL(ctx context.Context, input *AddImageInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.AddImageURL(ctx, input.ID, input.Body.URL))
}

func (s *Server) handleRemoveImage(ctx context.Context, input *ImageIndexInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.RemoveImage(ctx, input.ID, input.Index))
}

func (s *Server) handleMoveImage(ctx context.Context, input *MoveImageInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.MoveImage(ctx, input.ID, input.Body.From, input.Body.To))
}

func (s *Server) handleGenerate(ctx context.Context, input *GenerateInput) (*DraftOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return draftResult(s.services.Editor.Generate(ctx, input.ID, input.Body.AmazonURL))
}

func (s *Server) handleCommitDraft(ctx context.Context, input *DraftIDInput) (*CommitOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	result, err := s.services.Editor.Commit(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CommitOutput{Body: result}, nil
}

func draftResult(d *service.Draft, err error) (*DraftOutput, error) {
	if err != nil {
		return nil, err
	}
	return &DraftOutput{Body: d}, nil
}
