package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/engine"
	"github.com/Veraticus/exodo/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage transaction categories",
		RunE:    runCategoriesList,
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or update a category",
		RunE:  runCategoriesAdd,
	}
	add.Flags().String("id", "", "Category ID (generated when empty; an existing ID updates the category)")
	add.Flags().String("name", "", "Category name")
	add.Flags().String("type", string(model.DirectionExpense), "RECEITA or DESPESA")
	add.Flags().String("icon", "", "Icon name")
	add.Flags().String("color", "", "Display color")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List categories", RunE: runCategoriesList},
		add,
		deleteCmd("category", func(ctx context.Context, eng *engine.Engine, id string) error {
			return eng.DeleteCategory(ctx, id)
		}),
	)
	return cmd
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		cats, err := eng.Categories(ctx)
		if err != nil {
			return err
		}

		return render(cmd, cats, func(w io.Writer) error {
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{c.ID, c.Name, string(c.Type), c.Icon, c.Color})
			}
			return printLine(w, cli.RenderTable([]string{"ID", "NAME", "TYPE", "ICON", "COLOR"}, rows))
		})
	})
}

func runCategoriesAdd(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	typ, _ := cmd.Flags().GetString("type")
	icon, _ := cmd.Flags().GetString("icon")
	color, _ := cmd.Flags().GetString("color")

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		cat, err := eng.SaveCategory(ctx, model.Category{
			ID:    id,
			Name:  name,
			Type:  model.Direction(strings.ToUpper(typ)),
			Icon:  icon,
			Color: color,
		})
		if err != nil {
			return err
		}
		return printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved category %s (%s)", cat.Name, cat.ID)))
	})
}
