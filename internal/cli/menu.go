// Package cli implements the interactive inventory menu.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
	"github.com/abgdnv/bgrs/internal/inventory/service"
	"github.com/abgdnv/bgrs/internal/inventory/store"
)

const banner = `
===== BGRS inventory =====
 1. List products
 2. Add a product
 3. Delete a product
 4. Modify a product
 5. Search
 6. Save
 7. Load
 8. Generate samples
 9. Quit
`

// Menu drives an InventoryService from a line-oriented terminal.
type Menu struct {
	svc    service.InventoryService
	p      *prompter
	out    io.Writer
	path   string
	logger *slog.Logger
}

// NewMenu creates a menu reading answers from in and printing to out.
// path is the inventory file used by the save and load actions.
func NewMenu(svc service.InventoryService, in io.Reader, out io.Writer, path string, logger *slog.Logger) *Menu {
	return &Menu{
		svc:    svc,
		p:      newPrompter(in, out),
		out:    out,
		path:   path,
		logger: logger.With("component", "menu"),
	}
}

// Run shows the menu until the user quits, the input ends or ctx is cancelled.
// Expired records are swept before every action.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if removed := m.svc.SweepExpired(); removed > 0 {
			fmt.Fprintf(m.out, "%d expired product(s) removed.\n", removed)
		}

		fmt.Fprint(m.out, banner)
		choice, err := m.p.line("Your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read menu choice: %w", err)
		}

		quit, err := m.dispatch(strings.TrimSpace(choice))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (m *Menu) dispatch(choice string) (quit bool, err error) {
	switch choice {
	case "1":
		m.list()
	case "2":
		err = m.add()
	case "3":
		err = m.delete()
	case "4":
		err = m.modify()
	case "5":
		err = m.search()
	case "6":
		m.save()
	case "7":
		m.load()
	case "8":
		m.samples()
	case "9":
		fmt.Fprintln(m.out, "Goodbye.")
		return true, nil
	default:
		fmt.Fprintln(m.out, "[!] Unknown choice.")
	}
	return false, err
}

func (m *Menu) list() {
	records := m.svc.List()
	if len(records) == 0 {
		fmt.Fprintln(m.out, "The inventory is empty.")
		return
	}
	m.printTable(records)
}

func (m *Menu) add() error {
	fields, err := m.readFields(nil)
	if err != nil {
		return err
	}
	record, err := m.svc.Add(fields)
	if err != nil {
		m.report("add", err)
		return nil
	}
	fmt.Fprintf(m.out, "Product added with ID %d.\n", record.ID)
	return nil
}

func (m *Menu) delete() error {
	id, ok, err := m.p.id("ID to delete: ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, "[!] Invalid ID.")
		return nil
	}
	if err := m.svc.Delete(id); err != nil {
		m.report("delete", err)
		return nil
	}
	fmt.Fprintf(m.out, "Product %d deleted.\n", id)
	return nil
}

func (m *Menu) modify() error {
	id, ok, err := m.p.id("ID to modify: ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, "[!] Invalid ID.")
		return nil
	}
	current, err := m.svc.FindByID(id)
	if err != nil {
		m.report("modify", err)
		return nil
	}

	fmt.Fprintln(m.out, "Press Enter to keep the current value.")
	fields, err := m.readFields(&current.Fields)
	if err != nil {
		return err
	}
	if _, err := m.svc.Update(id, fields); err != nil {
		m.report("modify", err)
		return nil
	}
	fmt.Fprintf(m.out, "Product %d modified.\n", id)
	return nil
}

func (m *Menu) search() error {
	query, err := m.p.line("ID or name: ")
	if err != nil {
		return err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		fmt.Fprintln(m.out, "[!] Enter an ID or part of a name.")
		return nil
	}

	var found []store.Record
	if id, ok := parseSearchID(query); ok {
		if r, err := m.svc.FindByID(id); err == nil {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		found = slices.Collect(m.svc.Search(query))
	}
	if len(found) == 0 {
		fmt.Fprintln(m.out, "No matching product.")
		return nil
	}
	m.printTable(found)
	return nil
}

func (m *Menu) save() {
	if err := m.svc.Save(m.path); err != nil {
		m.report("save", err)
		return
	}
	fmt.Fprintf(m.out, "Inventory saved to %s.\n", m.path)
}

func (m *Menu) load() {
	report, err := m.svc.Load(m.path)
	if err != nil {
		m.report("load", err)
		return
	}
	fmt.Fprintf(m.out, "%d product(s) loaded from %s.\n", report.Loaded, m.path)
	for _, skipped := range report.Skipped {
		fmt.Fprintf(m.out, "[!] Line %d skipped: %v\n", skipped.Line, skipped.Err)
	}
}

func (m *Menu) samples() {
	created, err := m.svc.GenerateSamples()
	if err != nil {
		m.report("generate samples", err)
	}
	fmt.Fprintf(m.out, "%d sample product(s) added.\n", len(created))
}

// readFields asks for every field. With a non-nil current, empty answers keep its values.
func (m *Menu) readFields(current *store.Fields) (store.Fields, error) {
	var (
		fields store.Fields
		shown  store.Fields
		err    error
	)
	editing := current != nil
	if editing {
		shown = *current
	}
	label := func(name, value string) string {
		if !editing {
			return name + ": "
		}
		return fmt.Sprintf("%s [%s]: ", name, value)
	}

	if fields.Name, err = m.p.text(label("Name", shown.Name), store.MaxNameBytes, true, keepIf(editing, &shown.Name)); err != nil {
		return fields, err
	}
	if fields.Description, err = m.p.text(label("Description", shown.Description), store.MaxDescriptionBytes, false, keepIf(editing, &shown.Description)); err != nil {
		return fields, err
	}
	if fields.Category, err = m.p.text(label("Category", shown.Category), store.MaxCategoryBytes, false, keepIf(editing, &shown.Category)); err != nil {
		return fields, err
	}
	if fields.Quantity, err = m.p.quantity(label("Quantity", strconv.Itoa(shown.Quantity)), keepIf(editing, &shown.Quantity)); err != nil {
		return fields, err
	}
	if fields.UnitPrice, err = m.p.price(label("Unit price", fmt.Sprintf("%.2f", shown.UnitPrice)), keepIf(editing, &shown.UnitPrice)); err != nil {
		return fields, err
	}
	if fields.ExpiresAt, err = m.p.expiry(label("Expiry (YYYY-MM-DD, unix seconds, 0 for none)", formatExpiry(shown)), keepIf(editing, &shown.ExpiresAt)); err != nil {
		return fields, err
	}
	if fields.Note, err = m.p.text(label("Note", shown.Note), store.MaxNoteBytes, false, keepIf(editing, &shown.Note)); err != nil {
		return fields, err
	}
	return fields, nil
}

func keepIf[T any](editing bool, v *T) *T {
	if !editing {
		return nil
	}
	return v
}

func (m *Menu) printTable(records []store.Record) {
	w := tabwriter.NewWriter(m.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tQTY\tPRICE\tEXPIRES\tNOTE")
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = store.DefaultCategory
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%s\t%s\n", r.ID, r.Name, category, r.Quantity, r.UnitPrice, formatExpiry(r.Fields), r.Note)
	}
	_ = w.Flush()
}

func (m *Menu) report(action string, err error) {
	switch {
	case errors.Is(err, inverrors.ErrNotFound):
		fmt.Fprintln(m.out, "[!] No product with this ID.")
	case errors.Is(err, inverrors.ErrValidation):
		fmt.Fprintf(m.out, "[!] Invalid product: %v\n", err)
	default:
		fmt.Fprintf(m.out, "[!] Could not %s: %v\n", action, err)
	}
	m.logger.Warn("Menu action failed", "action", action, "error", err)
}

func formatExpiry(f store.Fields) string {
	if f.ExpiresAt.IsZero() {
		return "-"
	}
	return f.ExpiresAt.UTC().Format(dateLayout)
}

func parseSearchID(query string) (uint32, bool) {
	id, err := strconv.ParseUint(query, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint32(id), true
}
