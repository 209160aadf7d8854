package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/amirasaad/shoplist/pkg/config"
	"github.com/amirasaad/shoplist/pkg/domain/shopping"
	"github.com/amirasaad/shoplist/pkg/legacy"
	"github.com/amirasaad/shoplist/pkg/money"
	"github.com/amirasaad/shoplist/pkg/service/migration"
	shoppingsvc "github.com/amirasaad/shoplist/pkg/service/shopping"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	warn  = color.New(color.FgYellow).SprintFunc()
)

type cli struct {
	deps      *config.Deps
	out       io.Writer
	migration *migration.Service
	shopping  *shoppingsvc.Service
}

func newCLI(deps *config.Deps, out io.Writer) *cli {
	return &cli{
		deps: deps,
		out:  out,
		migration: migration.NewService(deps.Uow, deps.Logger,
			migration.WithPreferenceCache(deps.PreferenceCache)),
		shopping: shoppingsvc.NewService(deps.Uow, deps.Settings, deps.Formats, deps.Logger),
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "migrate":
		return c.migrate(ctx)
	case "status":
		return c.status(ctx)
	case "lists":
		location := shopping.LocationPurchases
		if len(rest) > 0 {
			location = shopping.ParseLocation(rest[0])
		}
		return c.lists(ctx, location)
	case "products":
		if len(rest) < 1 {
			return fmt.Errorf("%w: products <shopping-uid>", errUsage)
		}
		return c.products(ctx, rest[0])
	case "dump":
		if len(rest) < 1 {
			return fmt.Errorf("%w: dump <gen1|gen2>", errUsage)
		}
		gen, err := legacy.ParseGeneration(rest[0])
		if err != nil {
			return err
		}
		return c.dump(ctx, gen)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) migrate(ctx context.Context) error {
	results, err := c.migration.MigrateAll(ctx, c.deps.Sources...)
	for _, r := range results {
		if r.Skipped && r.State != migration.Migrated {
			fmt.Fprintf(c.out, "%s: %s %s\n", bold(r.Generation), warn(r.State), faint("(source unavailable)"))
			continue
		}
		if r.Skipped {
			fmt.Fprintf(c.out, "%s: %s %s\n", bold(r.Generation), r.State, faint("(nothing to import)"))
			continue
		}
		if r.State != migration.Migrated {
			fmt.Fprintf(c.out, "%s: %s\n", bold(r.Generation), warn(r.State))
			continue
		}
		fmt.Fprintf(c.out, "%s: %s: %d shoppings, %d products, %d autocompletes",
			bold(r.Generation), green(r.State), r.Shoppings, r.Products, r.Autocompletes)
		if r.Orphans > 0 {
			fmt.Fprint(c.out, warn(fmt.Sprintf(", %d orphaned products skipped", r.Orphans)))
		}
		fmt.Fprintln(c.out)
	}
	return err
}

func (c *cli) status(ctx context.Context) error {
	for _, gen := range legacy.Generations() {
		state, err := c.migration.Status(ctx, gen)
		if err != nil {
			return err
		}
		s := warn(state)
		if state == migration.Migrated {
			s = green(state)
		}
		fmt.Fprintf(c.out, "%s: %s\n", bold(gen), s)
	}
	return nil
}

func (c *cli) lists(ctx context.Context, location shopping.Location) error {
	view, err := c.shopping.Lists(ctx, location)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, bold(strings.ToUpper(location.String())))
	for _, l := range view.Pinned {
		c.printList(l, true)
	}
	for _, l := range view.Other {
		c.printList(l, false)
	}
	c.printTotals(view.Totals.All, view.Totals.Completed, view.Totals.Active)
	return nil
}

func (c *cli) printList(l shopping.ShoppingList, pinned bool) {
	marker := " "
	if pinned {
		marker = cyan("*")
	}
	name := l.Shopping.Name
	if l.Completed() {
		name = faint(name)
	}
	total := c.shopping.ListTotal(l)
	fmt.Fprintf(c.out, "%s %-30s %12s  %s\n", marker, name, total.Format(), faint(l.Shopping.UID))
}

func (c *cli) products(ctx context.Context, shoppingUID string) error {
	view, err := c.shopping.Products(ctx, shoppingUID)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, bold(view.Shopping.Name))
	for _, p := range view.Pinned {
		c.printProduct(p, true)
	}
	for _, p := range view.Other {
		c.printProduct(p, false)
	}
	t := view.Summary.Total
	c.printTotals(t.All, t.Completed, t.Active)
	if view.Summary.Discount.All.IsNotEmpty() {
		fmt.Fprintf(c.out, "Discount: %s\n", view.Summary.Discount.All.Format())
	}
	if view.Summary.TaxRate.All.IsNotEmpty() {
		fmt.Fprintf(c.out, "Tax: %s\n", view.Summary.TaxRate.All.Format())
	}
	return nil
}

func (c *cli) printProduct(p shopping.Product, pinned bool) {
	marker := " "
	if pinned {
		marker = cyan("*")
	}
	check := "[ ]"
	name := p.Name
	if p.Completed {
		check = green("[x]")
		name = faint(name)
	}
	qty := ""
	if p.Quantity.IsNotEmpty() {
		qty = p.Quantity.Format()
	}
	fmt.Fprintf(c.out, "%s %s %-30s %10s %12s\n", marker, check, name, qty, p.TotalValue().Format())
}

func (c *cli) printTotals(all, completed, active money.Value) {
	if !c.deps.Settings.DisplayMoney {
		return
	}
	fmt.Fprintf(c.out, "Total: %s  Completed: %s  Active: %s\n",
		bold(all.Format()), completed.Format(), active.Format())
}

// dumpDocument is the YAML layout of a legacy snapshot.
type dumpDocument struct {
	Generation  string                      `yaml:"generation"`
	Tables      map[string][]map[string]any `yaml:"tables"`
	Preferences map[string]string           `yaml:"preferences,omitempty"`
}

func (c *cli) dump(ctx context.Context, gen legacy.Generation) error {
	var src legacy.Source
	for _, s := range c.deps.Sources {
		if s.Generation() == gen {
			src = s
		}
	}
	if src == nil {
		return fmt.Errorf("%w: %s", legacy.ErrUnknownGeneration, gen)
	}
	snap, err := src.Read(ctx)
	if err != nil {
		return err
	}

	doc := dumpDocument{
		Generation:  gen.String(),
		Tables:      make(map[string][]map[string]any),
		Preferences: snap.Preferences,
	}
	for _, t := range []legacy.Table{snap.Shoppings, snap.Products, snap.Autocompletes} {
		if !t.Exists() {
			continue
		}
		rows := make([]map[string]any, 0, len(t.Rows))
		for _, r := range t.Rows {
			rows = append(rows, dumpRow(r))
		}
		doc.Tables[t.Name] = rows
	}

	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func dumpRow(r legacy.Row) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		out[k] = v
	}
	return out
}
