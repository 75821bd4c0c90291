package httpapi

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/dmitrijs2005/contactpro/internal/codec"
	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/models"
)

func (s *Server) dispatch(c fiber.Ctx, in intent.Intent) (intent.Result, error) {
	return s.d.Dispatch(c.Context(), in)
}

// fail renders a domain error with the status it maps to.
func (s *Server) fail(c fiber.Ctx, err error) error {
	status, code := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		s.log.Error(c.Context(), "request failed", "path", c.Path(), "error", err)
	}
	return errorResponse(c, status, err.Error(), code, nil)
}

func (s *Server) listResponse(res intent.Result) ListResponse {
	svc := s.d.Service()
	view := res.View
	if view == nil {
		view = []models.Contact{}
	}
	return ListResponse{
		Contacts: view,
		Count:    res.Count,
		Total:    svc.Total(),
		Criteria: newCriteriaResponse(svc.Criteria()),
	}
}

func (s *Server) mutation(c fiber.Ctx, in intent.Intent) error {
	res, err := s.dispatch(c, in)
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusOK, res.Message, MutationResponse{
		Changed: res.Changed,
		Removed: res.Removed,
		Count:   res.Count,
	})
}

func (s *Server) health(c fiber.Ctx) error {
	return successResponse(c, fiber.StatusOK, "ok", fiber.Map{"status": "healthy"})
}

func (s *Server) state(c fiber.Ctx) error {
	svc := s.d.Service()
	return successResponse(c, fiber.StatusOK, "", StateResponse{
		Count:   svc.Count(),
		Total:   svc.Total(),
		Theme:   svc.Theme().String(),
		CanUndo: svc.CanUndo(),
		CanRedo: svc.CanRedo(),
		Tags:    svc.Tags(),
	})
}

func (s *Server) listContacts(c fiber.Ctx) error {
	res, err := s.dispatch(c, intent.Intent{Kind: intent.List})
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusOK, fmt.Sprintf("%d contact(s)", res.Count), s.listResponse(res))
}

func (s *Server) getContact(c fiber.Ctx) error {
	contact, err := s.d.Service().Get(c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusOK, "", contact)
}

func (s *Server) createContact(c fiber.Ctx) error {
	var req ContactRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", validationDetails(err))
	}

	res, err := s.dispatch(c, intent.Intent{Kind: intent.Add, Fields: req.Fields()})
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusCreated, res.Message, res.Contact)
}

func (s *Server) updateContact(c fiber.Ctx) error {
	var req ContactRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", validationDetails(err))
	}

	res, err := s.dispatch(c, intent.Intent{Kind: intent.Edit, ID: c.Params("id"), Fields: req.Fields()})
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusOK, res.Message, res.Contact)
}

func (s *Server) deleteContact(c fiber.Ctx) error {
	return s.mutation(c, intent.Intent{Kind: intent.Delete, ID: c.Params("id")})
}

func (s *Server) deleteContacts(c fiber.Ctx) error {
	var req DeleteManyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", validationDetails(err))
	}
	return s.mutation(c, intent.Intent{Kind: intent.DeleteSelected, IDs: req.IDs})
}

func (s *Server) setFilter(c fiber.Ctx) error {
	var req FilterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", validationDetails(err))
	}

	res, err := s.dispatch(c, intent.Intent{Kind: intent.SetFilter, Field: req.Field, Value: req.Value})
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusOK, fmt.Sprintf("%d contact(s)", res.Count), s.listResponse(res))
}

func (s *Server) setSort(c fiber.Ctx) error {
	var req SortRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := s.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", validationDetails(err))
	}

	res, err := s.dispatch(c, intent.Intent{Kind: intent.SetSort, Value: req.SortBy})
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusOK, fmt.Sprintf("%d contact(s)", res.Count), s.listResponse(res))
}

func (s *Server) tags(c fiber.Ctx) error {
	return successResponse(c, fiber.StatusOK, "", s.d.Service().Tags())
}

// export streams the current collection as a file attachment.
func (s *Server) export(c fiber.Ctx) error {
	f, err := codec.ParseFormat(c.Query("format", string(codec.FormatCSV)))
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.dispatch(c, intent.Intent{Kind: intent.Export, Format: string(f)})
	if err != nil {
		return s.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, f.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.FileName()))
	return c.Status(fiber.StatusOK).Send(res.Data)
}

// importContacts reads the raw request body in the format named by ?format=.
func (s *Server) importContacts(c fiber.Ctx) error {
	f, err := codec.ParseFormat(c.Query("format"))
	if err != nil {
		return s.fail(c, err)
	}

	// fasthttp reuses the body buffer once the handler returns
	data := bytes.Clone(c.Body())
	if data == nil {
		data = []byte{}
	}
	return s.mutation(c, intent.Intent{Kind: intent.Import, Format: string(f), Data: data})
}

func (s *Server) backup(c fiber.Ctx) error {
	return s.mutation(c, intent.Intent{Kind: intent.Backup})
}

func (s *Server) restore(c fiber.Ctx) error {
	return s.mutation(c, intent.Intent{Kind: intent.Restore})
}

func (s *Server) undo(c fiber.Ctx) error {
	return s.mutation(c, intent.Intent{Kind: intent.Undo})
}

func (s *Server) redo(c fiber.Ctx) error {
	return s.mutation(c, intent.Intent{Kind: intent.Redo})
}

func (s *Server) theme(c fiber.Ctx) error {
	return successResponse(c, fiber.StatusOK, "", fiber.Map{"theme": s.d.Service().Theme().String()})
}

func (s *Server) toggleTheme(c fiber.Ctx) error {
	res, err := s.dispatch(c, intent.Intent{Kind: intent.ToggleTheme})
	if err != nil {
		return s.fail(c, err)
	}
	return successResponse(c, fiber.StatusOK, res.Message, fiber.Map{"theme": res.Theme.String()})
}
