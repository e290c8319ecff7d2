package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VasKaleev/internetmag-comp/internal/catalog"
	"github.com/VasKaleev/internetmag-comp/internal/models"
)

func (c *cli) productsCmd() *cobra.Command {
	var (
		query              catalog.Query
		minPrice, maxPrice string
		sort               string
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Long: `Lists the catalog filtered by category, name and price range, sorted and
paginated. Criteria: ` + strings.Join(sortNames(), ", ") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if query.Page < 1 || query.PageSize < 1 {
				return fmt.Errorf("page and page-size must be positive")
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			bounds := catalog.ParsePriceBounds(minPrice, maxPrice)
			query.Bounds = &bounds
			query.Sort = catalog.SortCriterion(sort)

			page := a.Catalog.Query(query)
			out := cmd.OutOrStdout()
			if page.TotalItems == 0 {
				fmt.Fprintln(out, "Ничего не найдено")
				return nil
			}
			if err := writeProducts(out, page.Items, a.Config.Catalog.Currency); err != nil {
				return err
			}
			fmt.Fprintf(out, "page %d of %d, %d products\n", page.Page, page.TotalPages, page.TotalItems)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&query.Category, "category", "", "only products in this category")
	f.StringVar(&query.Search, "search", "", "case-insensitive name substring")
	f.StringVar(&minPrice, "min-price", "", "minimum price")
	f.StringVar(&maxPrice, "max-price", "", "maximum price")
	f.StringVar(&sort, "sort", "", "sort criterion")
	f.IntVar(&query.Page, "page", 1, "page number")
	f.IntVar(&query.PageSize, "page-size", catalog.DefaultPageSize, "products per page")
	return cmd
}

func sortNames() []string {
	names := make([]string, len(catalog.SortCriteria))
	for i, s := range catalog.SortCriteria {
		names[i] = string(s)
	}
	return names
}

func writeProducts(out io.Writer, products []models.Product, currency string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Category, models.FormatPrice(p.Price, currency), p.Rating)
	}
	return tw.Flush()
}

func (c *cli) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			p, ok := a.Catalog.GetByID(id)
			if !ok {
				return fmt.Errorf("product %d not found", id)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
			fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
			fmt.Fprintf(tw, "Category:\t%s\n", p.Category)
			fmt.Fprintf(tw, "Price:\t%s\n", models.FormatPrice(p.Price, a.Config.Catalog.Currency))
			fmt.Fprintf(tw, "Rating:\t%.1f\n", p.Rating)
			if !p.Date.IsZero() {
				fmt.Fprintf(tw, "Date:\t%s\n", p.Date)
			}
			if p.Description != "" {
				fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			for _, category := range a.Catalog.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), category)
			}
			return nil
		},
	}
}

func parseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product ID %q", raw)
	}
	return id, nil
}
