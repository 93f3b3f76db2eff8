package categories

import (
	"fmt"
	"strings"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a routine or planned category."`
	List   CategoryListCmd   `cmd:"" help:"List categories."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category and everything in it."`
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
	Kind string `help:"routine (habits) or planned (activities)." enum:"routine,planned" default:"routine"`
	Type string `short:"t" help:"spiritual, health, fitness, learning, career, finance, family or other." default:"other"`
	Time string `help:"Default time label for the category's habits (routine only)."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	typ, err := cli.ParseCategoryType(c.Type)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	var id string
	err = ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		if c.Kind == "planned" {
			pc, err := catalog.AddPlannedCategory(cat, name, typ)
			id = pc.ID
			return err
		}
		rc, err := catalog.AddRoutineCategory(cat, name, typ, c.Time)
		id = rc.ID
		return err
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added %s category: %s (%s)\n", c.Kind, name, id)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Store.GetCatalog()
	if err != nil {
		return err
	}
	if len(cat.RoutineCategories)+len(cat.PlannedCategories) == 0 {
		ctx.Println("No categories found.")
		return nil
	}

	tbl := cli.NewTable()
	tbl.AddRow(cli.Bold.Sprint("Name"), cli.Bold.Sprint("Kind"), cli.Bold.Sprint("Type"), cli.Bold.Sprint("Items"), cli.Bold.Sprint("ID"))
	for _, rc := range cat.RoutineCategories {
		tbl.AddRow(rc.Name, "routine", string(rc.Type), fmt.Sprint(len(rc.Habits)), cli.Faint.Sprint(rc.ID))
	}
	for _, pc := range cat.PlannedCategories {
		tbl.AddRow(pc.Name, "planned", string(pc.Type), fmt.Sprint(len(pc.Activities)), cli.Faint.Sprint(pc.ID))
	}
	ctx.Println(tbl)
	return nil
}

type CategoryDeleteCmd struct {
	Ref string `arg:"" help:"Category id or name."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	err := ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		id, err := resolve(*cat, c.Ref)
		if err != nil {
			return err
		}
		return catalog.DeleteCategory(cat, id)
	})
	if err != nil {
		return err
	}
	ctx.Printf("Deleted category: %s\n", c.Ref)
	return nil
}

// resolve finds a category id in either list by id or name.
func resolve(cat models.Catalog, ref string) (string, error) {
	if i, err := catalog.RoutineCategoryIndex(cat, ref); err == nil {
		return cat.RoutineCategories[i].ID, nil
	}
	i, err := catalog.PlannedCategoryIndex(cat, ref)
	if err != nil {
		return "", err
	}
	return cat.PlannedCategories[i].ID, nil
}
