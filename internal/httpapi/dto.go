package httpapi

import (
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/query"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail represents error details in API responses
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// ContactRequest is the body of create and update calls.
type ContactRequest struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Email   string   `json:"email" validate:"required,max=200"`
	Phone   string   `json:"phone" validate:"omitempty,max=50"`
	Address string   `json:"address" validate:"omitempty,max=500"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=50"`
}

func (r ContactRequest) Fields() models.Fields {
	return models.Fields{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address, Tags: r.Tags}
}

type DeleteManyRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type FilterRequest struct {
	Field string `json:"field" validate:"required,oneof=search tag recent"`
	Value string `json:"value"`
}

type SortRequest struct {
	SortBy string `json:"sort_by" validate:"required,oneof=name recent"`
}

// ListResponse is the current view together with the criteria that produced it.
type ListResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
	Criteria CriteriaResponse `json:"criteria"`
}

type CriteriaResponse struct {
	Search string `json:"search"`
	Tag    string `json:"tag"`
	Recent bool   `json:"recent"`
	SortBy string `json:"sort_by"`
}

func newCriteriaResponse(c query.Criteria) CriteriaResponse {
	return CriteriaResponse{Search: c.Search, Tag: c.Tag, Recent: c.Recent, SortBy: c.SortBy}
}

type StateResponse struct {
	Count   int      `json:"count"`
	Total   int      `json:"total"`
	Theme   string   `json:"theme"`
	CanUndo bool     `json:"can_undo"`
	CanRedo bool     `json:"can_redo"`
	Tags    []string `json:"tags"`
}

type MutationResponse struct {
	Changed bool `json:"changed"`
	Removed int  `json:"removed,omitempty"`
	Count   int  `json:"count"`
}
