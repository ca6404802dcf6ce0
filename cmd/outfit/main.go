// Command outfit runs the outfit finder pipeline from a terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Lixing-Zhang/outfit-finder/internal/app"
	"github.com/Lixing-Zhang/outfit-finder/internal/config"
	"github.com/Lixing-Zhang/outfit-finder/internal/coupon"
	"github.com/Lixing-Zhang/outfit-finder/internal/view"
	"github.com/Lixing-Zhang/outfit-finder/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		asJSON   bool
		planOnly bool
	)

	root := &cobra.Command{
		Use:           "outfit [description]",
		Short:         "Find shoppable products for an outfit description",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.TrimSpace(strings.Join(args, " "))
			if description == "" {
				return errors.New(view.EmptyDescriptionMessage)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// logs go to stdout as JSON; keep them out of the way unless asked for
			log := logger.New(cliLogLevel(cfg.LogLevel))
			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd.OutOrStdout(), a, description, planOnly, asJSON)
		},
	}

	root.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON instead of product cards")
	root.Flags().BoolVar(&planOnly, "plan-only", false, "stop after analyzing the description")

	root.AddCommand(newCouponsCmd())
	return root
}

func newCouponsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "coupons [retailer]",
		Short: "List known retailer coupons, or show the coupon for one retailer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := coupon.DefaultTable()
			if file != "" {
				loaded, err := coupon.LoadTable(file)
				if err != nil {
					return err
				}
				table = loaded
			}
			return printCoupons(cmd.OutOrStdout(), table, args)
		},
	}

	cmd.Flags().StringVar(&file, "file", os.Getenv("COUPON_FILE"), "YAML or JSON coupon file merged over the defaults")
	return cmd
}

func cliLogLevel(configured string) string {
	if os.Getenv("LOG_LEVEL") == "" {
		return "error"
	}
	return configured
}

func run(ctx context.Context, out io.Writer, a *app.App, description string, planOnly, asJSON bool) error {
	if planOnly {
		plan, err := a.Outfits.Analyze(ctx, description)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, plan)
		}
		fmt.Fprintln(out, plan.Summary)
		for _, c := range plan.Categories {
			fmt.Fprintf(out, "  %s %s: %q (%s)\n", c.Icon, c.Name, c.SearchQuery, c.PriceRange)
		}
		return nil
	}

	outfit, err := a.Outfits.FindOutfit(ctx, description)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(out, outfit.Results)
	}

	printPage(out, view.Render(outfit.Plan.Summary, outfit.Results))
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printPage(out io.Writer, page view.Page) {
	fmt.Fprintln(out, page.Summary)
	for _, category := range page.Categories {
		fmt.Fprintf(out, "\n%s %s", category.Icon, category.Name)
		if category.PriceRange != "" {
			fmt.Fprintf(out, " (%s)", category.PriceRange)
		}
		fmt.Fprintln(out)

		for _, card := range category.Cards {
			price := card.Price
			if card.OriginalPrice != "" {
				price += " (was " + card.OriginalPrice + ")"
			}
			if card.Discount != "" {
				price += " " + card.Discount
			}

			fmt.Fprintf(out, "  - %s [%s] %s\n", card.Title, card.Source, price)
			if card.Coupon != nil {
				fmt.Fprintf(out, "    coupon %s: %s\n", card.Coupon.Code, card.Coupon.Discount)
			}
			fmt.Fprintf(out, "    %s\n", card.Link)
		}
	}
}

func printCoupons(out io.Writer, table *coupon.Table, args []string) error {
	if len(args) == 1 {
		c := table.Lookup(args[0])
		if c == nil {
			return fmt.Errorf("no coupon known for %q", args[0])
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", args[0], c.Code, c.Discount)
		return nil
	}

	for _, retailer := range table.Retailers() {
		c := table.Lookup(retailer)
		fmt.Fprintf(out, "%s\t%s\t%s\n", retailer, c.Code, c.Discount)
	}
	return nil
}
