package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VasKaleev/internetmag-comp/internal/cart"
	"github.com/VasKaleev/internetmag-comp/internal/models"
)

const persistenceWarning = "Внимание: корзину не удалось сохранить, изменения могут быть потеряны после перезапуска"

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			return writeCart(cmd.OutOrStdout(), a.Cart, a.Config.Catalog.Currency)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id>",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: c.mutation(func(cmd *cobra.Command, store *cart.Store, id int, _ []string) error {
				err := store.AddItem(cmd.Context(), id)
				if errors.Is(err, cart.ErrUnknownProduct) {
					return fmt.Errorf("product %d not found", id)
				}
				return err
			}),
		},
		&cobra.Command{
			Use:     "change <id> <delta>",
			Short:   "Change a line's quantity by delta",
			Example: "  storefront cart change 3 2\n  storefront cart change 3 -- -1",
			Args:    cobra.ExactArgs(2),
			RunE: c.mutation(func(cmd *cobra.Command, store *cart.Store, id int, args []string) error {
				delta, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid delta %q", args[1])
				}
				return store.ChangeQuantity(cmd.Context(), id, delta)
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a line",
			Args:  cobra.ExactArgs(1),
			RunE: c.mutation(func(cmd *cobra.Command, store *cart.Store, id int, _ []string) error {
				return store.RemoveItem(cmd.Context(), id)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: c.mutation(func(cmd *cobra.Command, store *cart.Store, _ int, _ []string) error {
				return store.Clear(cmd.Context())
			}),
		},
		c.orderCmd(),
	)
	return cmd
}

type mutationFunc func(cmd *cobra.Command, store *cart.Store, id int, args []string) error

// mutation parses the product id argument if there is one, applies fn and
// prints the resulting cart. Persistence failures only produce a warning.
func (c *cli) mutation(fn mutationFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var id int
		if len(args) > 0 {
			var err error
			if id, err = parseProductID(args[0]); err != nil {
				return err
			}
		}
		a, err := c.open(cmd)
		if err != nil {
			return err
		}

		err = fn(cmd, a.Cart, id, args)
		if errors.Is(err, cart.ErrPersistence) {
			fmt.Fprintln(cmd.ErrOrStderr(), persistenceWarning)
		} else if err != nil {
			return err
		}
		return writeCart(cmd.OutOrStdout(), a.Cart, a.Config.Catalog.Currency)
	}
}

func (c *cli) orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Place an order and empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			confirmation, err := a.Cart.PlaceOrder(cmd.Context())
			if errors.Is(err, cart.ErrEmptyCart) {
				return errors.New("the cart is empty")
			}
			if errors.Is(err, cart.ErrPersistence) {
				fmt.Fprintln(cmd.ErrOrStderr(), persistenceWarning)
			} else if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Заказ оформлен!")
			fmt.Fprintf(out, "Reference: %s\n", confirmation.Reference)
			fmt.Fprintf(out, "Items: %d in %d lines\n", confirmation.ItemCount, confirmation.LineCount)
			return nil
		},
	}
}

func writeCart(out io.Writer, store *cart.Store, currency string) error {
	if store.TotalCount() == 0 {
		fmt.Fprintln(out, "Корзина пуста")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY")
	total := 0
	for l := range store.LineItems() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", l.ID, l.Name, models.FormatPrice(l.Price, currency), l.Quantity)
		total += l.Quantity
	}
	fmt.Fprintf(tw, "\t\tTotal items:\t%d\n", total)
	return tw.Flush()
}
