package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/contactpro/internal/codec"
	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/filex"
	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/services"
	"github.com/dmitrijs2005/contactpro/internal/theme"
)

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

func (a *App) dispatchAndRender(ctx context.Context, in intent.Intent) error {
	res, err := a.d.Dispatch(ctx, in)
	if err != nil {
		return err
	}
	a.render(res)
	return nil
}

// resolveID accepts a full id or a unique prefix of an id in the current view.
func (a *App) resolveID(prefix string) (string, error) {
	svc := a.d.Service()
	if _, err := svc.Get(prefix); err == nil {
		return prefix, nil
	}

	var matches []string
	for _, c := range svc.View() {
		if strings.HasPrefix(c.ID, prefix) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("contact %s: %w", prefix, common.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: id prefix %q matches %d contacts", common.ErrValidation, prefix, len(matches))
	}
}

func (a *App) List(ctx context.Context) error {
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.List})
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	id, err := a.resolveID(args[0])
	if err != nil {
		return err
	}
	svc := a.d.Service()
	c, err := svc.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, contactDetails(c, theme.NewStyles(svc.Theme())))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	f, err := a.inputFields(models.Fields{})
	if err != nil {
		return err
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.Add, Fields: f})
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("edit <id>")
	}
	id, err := a.resolveID(args[0])
	if err != nil {
		return err
	}
	current, err := a.d.Prefill(id)
	if err != nil {
		return err
	}
	f, err := a.inputFields(current)
	if err != nil {
		return err
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.Edit, ID: id, Fields: f})
}

// inputFields prompts for every field, offering current values as defaults.
func (a *App) inputFields(current models.Fields) (models.Fields, error) {
	var f models.Fields
	var err error

	if f.Name, err = GetWithDefault(a.reader, "Name*", current.Name, a.out); err != nil {
		return f, err
	}
	if f.Email, err = GetWithDefault(a.reader, "Email*", current.Email, a.out); err != nil {
		return f, err
	}
	if f.Phone, err = GetWithDefault(a.reader, "Phone", current.Phone, a.out); err != nil {
		return f, err
	}
	if f.Address, err = GetWithDefault(a.reader, "Address", current.Address, a.out); err != nil {
		return f, err
	}
	tags, err := GetWithDefault(a.reader, "Tags (comma separated)", models.FormatTags(current.Tags), a.out)
	if err != nil {
		return f, err
	}
	f.Tags = models.ParseTags(tags)
	return f, nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	id, err := a.resolveID(args[0])
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, "Are you sure you want to delete this contact?", a.out)
	if err != nil || !ok {
		return err
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.Delete, ID: id})
}

func (a *App) BulkDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("no contacts selected")
	}
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := a.resolveID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %d contact(s)?", len(ids)), a.out)
	if err != nil || !ok {
		return err
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.DeleteSelected, IDs: ids})
}

func (a *App) Search(ctx context.Context, args []string) error {
	return a.dispatchAndRender(ctx, intent.Intent{
		Kind: intent.SetFilter, Field: services.FilterSearch, Value: strings.Join(args, " "),
	})
}

func (a *App) Tag(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("tag [name]")
	}
	value := ""
	if len(args) == 1 {
		value = args[0]
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.SetFilter, Field: services.FilterTag, Value: value})
}

func (a *App) Tags(ctx context.Context) error {
	svc := a.d.Service()
	tags := svc.Tags()
	st := theme.NewStyles(svc.Theme())
	if len(tags) == 0 {
		fmt.Fprintln(a.out, st.Muted.Render("No tags"))
		return nil
	}
	fmt.Fprintln(a.out, st.Tag.Render(strings.Join(tags, ", ")))
	return nil
}

func (a *App) Recent(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("recent on|off")
	}
	value := args[0]
	switch strings.ToLower(value) {
	case "on":
		value = "true"
	case "off":
		value = "false"
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.SetFilter, Field: services.FilterRecent, Value: value})
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sort name|recent")
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.SetSort, Value: args[0]})
}

func (a *App) Theme(ctx context.Context) error {
	res, err := a.d.Dispatch(ctx, intent.Intent{Kind: intent.ToggleTheme})
	if err != nil {
		return err
	}
	a.message(res)
	return nil
}

// filePath resolves relative paths under the export directory.
func (a *App) filePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.exportDir, p)
}

func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("export csv|json|xlsx [file]")
	}
	f, err := codec.ParseFormat(args[0])
	if err != nil {
		return err
	}
	name := f.FileName()
	if len(args) == 2 {
		name = args[1]
	}

	res, err := a.d.Dispatch(ctx, intent.Intent{Kind: intent.Export, Format: string(f)})
	if err != nil {
		return err
	}
	path := a.filePath(name)
	if err := filex.WriteFile(path, res.Data); err != nil {
		return err
	}
	a.log.Info(ctx, "contacts exported", "path", path, "format", f)
	fmt.Fprintf(a.out, "Exported %d contact(s) to %s\n", a.d.Service().Total(), path)
	return nil
}

func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("import <file>")
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.Import, Path: a.filePath(args[0])})
}

func (a *App) Backup(ctx context.Context) error {
	res, err := a.d.Dispatch(ctx, intent.Intent{Kind: intent.Backup})
	if err != nil {
		return err
	}
	a.message(res)
	return nil
}

func (a *App) Restore(ctx context.Context) error {
	has, err := a.d.Service().HasBackup(ctx)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("no backup found: %w", common.ErrNotFound)
	}

	ok, err := Confirm(a.reader, "Restore from backup? This will overwrite current data.", a.out)
	if err != nil || !ok {
		return err
	}
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.Restore})
}

func (a *App) Undo(ctx context.Context) error {
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.Undo})
}

func (a *App) Redo(ctx context.Context) error {
	return a.dispatchAndRender(ctx, intent.Intent{Kind: intent.Redo})
}
