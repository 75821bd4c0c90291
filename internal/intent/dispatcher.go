package intent

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactpro/internal/codec"
	"github.com/dmitrijs2005/contactpro/internal/logging"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/services"
)

type Dispatcher struct {
	svc services.ContactService
	log logging.Logger
}

func NewDispatcher(svc services.ContactService, log logging.Logger) *Dispatcher {
	return &Dispatcher{svc: svc, log: log}
}

// Service exposes the underlying service for read-only queries.
func (d *Dispatcher) Service() services.ContactService {
	return d.svc
}

// Dispatch runs in against the service. On success the result carries the
// refreshed view and count.
func (d *Dispatcher) Dispatch(ctx context.Context, in Intent) (Result, error) {
	res, err := d.dispatch(ctx, in)
	if err != nil {
		d.log.Warn(ctx, "intent failed", "intent", in.Kind, "error", err)
		return Result{Kind: in.Kind}, err
	}
	d.log.Debug(ctx, "intent done", "intent", in.Kind, "changed", res.Changed)

	res.Kind = in.Kind
	res.View = d.svc.View()
	res.Count = len(res.View)
	if res.Theme == "" {
		res.Theme = d.svc.Theme()
	}
	return res, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, in Intent) (Result, error) {
	switch in.Kind {
	case List:
		return Result{}, nil

	case Add:
		c, err := d.svc.Add(ctx, in.Fields)
		if err != nil {
			return Result{}, err
		}
		return Result{Contact: &c, Changed: true, Message: "Contact added"}, nil

	case Edit:
		c, err := d.svc.Update(ctx, in.ID, in.Fields)
		if err != nil {
			return Result{}, err
		}
		return Result{Contact: &c, Changed: true, Message: "Contact updated"}, nil

	case Delete:
		ok, err := d.svc.Remove(ctx, in.ID)
		if err != nil {
			return Result{}, err
		}
		res := Result{Changed: ok, Message: "Contact deleted"}
		if ok {
			res.Removed = 1
		} else {
			res.Message = "Nothing to delete"
		}
		return res, nil

	case DeleteSelected:
		n, err := d.svc.RemoveMany(ctx, in.IDs)
		if err != nil {
			return Result{}, err
		}
		return Result{Removed: n, Changed: n > 0, Message: fmt.Sprintf("%d contact(s) deleted", n)}, nil

	case SetFilter:
		if err := d.svc.SetFilter(in.Field, in.Value); err != nil {
			return Result{}, err
		}
		return Result{}, nil

	case SetSort:
		d.svc.SetSort(in.Value)
		return Result{}, nil

	case ToggleTheme:
		th, err := d.svc.ToggleTheme(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Theme: th, Changed: true, Message: "Theme: " + th.String()}, nil

	case Export:
		f, err := codec.ParseFormat(in.Format)
		if err != nil {
			return Result{}, err
		}
		b, err := d.svc.Export(f)
		if err != nil {
			return Result{}, err
		}
		return Result{Data: b, Message: "Exported " + f.FileName()}, nil

	case Import:
		n, err := d.importIntent(ctx, in)
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: true, Message: fmt.Sprintf("Imported %d contact(s)", n)}, nil

	case Backup:
		b, err := d.svc.Backup(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Backup created (%d contact(s))", len(b.Contacts))}, nil

	case Restore:
		n, err := d.svc.Restore(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: true, Message: fmt.Sprintf("Restored %d contact(s)", n)}, nil

	case Undo:
		ok, err := d.svc.Undo(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: ok, Message: changedMessage(ok, "Undone", "Nothing to undo")}, nil

	case Redo:
		ok, err := d.svc.Redo(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: ok, Message: changedMessage(ok, "Redone", "Nothing to redo")}, nil

	default:
		return Result{}, fmt.Errorf("unknown intent %s", in.Kind)
	}
}

func (d *Dispatcher) importIntent(ctx context.Context, in Intent) (int, error) {
	if in.Data == nil && in.Path != "" {
		return d.svc.ImportFile(ctx, in.Path)
	}
	f, err := codec.ParseFormat(in.Format)
	if err != nil {
		return 0, err
	}
	return d.svc.Import(ctx, in.Data, f)
}

func changedMessage(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// Prefill returns the edit form values for contact id.
func (d *Dispatcher) Prefill(id string) (models.Fields, error) {
	c, err := d.svc.Get(id)
	if err != nil {
		return models.Fields{}, err
	}
	return c.Fields(), nil
}
