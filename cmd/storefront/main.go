package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"storefront/internal/client/apierr"
	"storefront/internal/config"
	"storefront/internal/shared/dto"
	"storefront/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "storefront",
		Usage: "browse the storefront and manage your cart from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Usage: "API base URL", EnvVars: []string{"API_BASE_URL"}},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log requests"},
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "sign in and remember the session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: withApp(func(c *cli.Context, a *app) error {
					user, err := a.session.Login(c.Context, c.String("email"), c.String("password"))
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, user.Role)
					return nil
				}),
			},
			{
				Name:  "logout",
				Usage: "end the session",
				Action: withApp(func(c *cli.Context, a *app) error {
					if err := a.session.Logout(c.Context); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Signed out")
					return nil
				}),
			},
			{
				Name:  "whoami",
				Usage: "show the signed-in user",
				Action: withApp(func(c *cli.Context, a *app) error {
					if !a.session.Authenticated() {
						return apierr.New(apierr.KindNotAuthenticated, "not signed in")
					}
					user, err := a.session.Me(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "%s <%s> %s\n", user.Name, user.Email, user.Role)
					return nil
				}),
			},
			{
				Name:  "products",
				Usage: "list the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "sort", Usage: "price-asc, price-desc or latest"},
					&cli.StringFlag{Name: "min-price"},
					&cli.StringFlag{Name: "max-price"},
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "page-size"},
				},
				Action: withApp(func(c *cli.Context, a *app) error {
					q := dto.ProductsQuery{
						Search:   c.String("search"),
						Category: c.String("category"),
						Sort:     dto.ProductSort(c.String("sort")),
						Page:     c.Int("page"),
						PageSize: c.Int("page-size"),
					}
					var err error
					if q.MinPrice, err = priceFlag(c, "min-price"); err != nil {
						return err
					}
					if q.MaxPrice, err = priceFlag(c, "max-price"); err != nil {
						return err
					}

					page, err := a.api.Catalog.Products(c.Context, q)
					if err != nil {
						return err
					}
					printProducts(a.out, page)
					return nil
				}),
			},
			{
				Name:      "product",
				Usage:     "show one product",
				ArgsUsage: "<product-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := arg(c, 0, "product-id")
					if err != nil {
						return err
					}
					p, err := a.api.Catalog.Product(c.Context, id)
					if err != nil {
						return err
					}
					printProduct(a.out, p)
					return nil
				}),
			},
			cartCommand(),
			{
				Name:  "checkout",
				Usage: "pay for the cart",
				Action: withApp(func(c *cli.Context, a *app) error {
					if _, err := a.cart.Fetch(c.Context); err != nil {
						return err
					}
					res, err := a.checkoutFlow().Run(c.Context)
					if err != nil {
						return err
					}
					printOrder(a.out, res.Order)
					return nil
				}),
			},
			{
				Name:  "orders",
				Usage: "list your orders",
				Action: withApp(func(c *cli.Context, a *app) error {
					orders, err := a.api.Orders.List(c.Context)
					if err != nil {
						return err
					}
					printOrders(a.out, orders)
					return nil
				}),
			},
			{
				Name:      "order",
				Usage:     "show one order",
				ArgsUsage: "<order-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := arg(c, 0, "order-id")
					if err != nil {
						return err
					}
					order, err := a.api.Orders.Get(c.Context, id)
					if err != nil {
						return err
					}
					printOrder(a.out, order)
					return nil
				}),
			},
		},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "show and change your cart",
		Action: withCart(func(c *cli.Context, a *app) error {
			return nil
		}),
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "show the cart",
				Action: withCart(func(c *cli.Context, a *app) error { return nil }),
			},
			{
				Name:      "add",
				Usage:     "add a product",
				ArgsUsage: "<product-id> [quantity]",
				Action: withCart(func(c *cli.Context, a *app) error {
					id, err := arg(c, 0, "product-id")
					if err != nil {
						return err
					}
					qty, err := quantityArg(c, 1, 1)
					if err != nil {
						return err
					}
					p, err := a.api.Catalog.Product(c.Context, id)
					if err != nil {
						return err
					}
					_, err = a.cart.AddItem(c.Context, *p, qty)
					return err
				}),
			},
			{
				Name:      "update",
				Usage:     "set the quantity of a line; 0 removes it",
				ArgsUsage: "<line-id> <quantity>",
				Action: withCart(func(c *cli.Context, a *app) error {
					id, err := arg(c, 0, "line-id")
					if err != nil {
						return err
					}
					qty, err := quantityArg(c, 1, -1)
					if err != nil {
						return err
					}
					_, err = a.cart.UpdateItem(c.Context, id, qty)
					return err
				}),
			},
			{
				Name:      "remove",
				Usage:     "remove a line",
				ArgsUsage: "<line-id>",
				Action: withCart(func(c *cli.Context, a *app) error {
					id, err := arg(c, 0, "line-id")
					if err != nil {
						return err
					}
					_, err = a.cart.RemoveItem(c.Context, id)
					return err
				}),
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: withCart(func(c *cli.Context, a *app) error {
					_, err := a.cart.Clear(c.Context)
					return err
				}),
			},
		},
	}
}

// withApp builds the client stack around fn and turns client errors into
// user-facing notices
func withApp(fn func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if base := c.String("api"); base != "" {
			cfg.Client.APIBaseURL = base
		}
		if c.Bool("verbose") {
			logger.Init("development")
		} else {
			logger.Init("test")
		}

		a, err := newApp(c.Context, cfg, c.App.Writer)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		defer a.close()

		if err := fn(c, a); err != nil {
			return notice(err)
		}
		return nil
	}
}

// withCart loads the server cart first and prints it after fn settles
func withCart(fn func(c *cli.Context, a *app) error) cli.ActionFunc {
	return withApp(func(c *cli.Context, a *app) error {
		if _, err := a.cart.Fetch(c.Context); err != nil {
			return err
		}
		if err := fn(c, a); err != nil {
			return err
		}
		a.cart.Wait()
		printCart(a.out, a.cart.Cart())
		return nil
	})
}

func notice(err error) error {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		return cli.Exit(err.Error(), 1)
	}
	return cli.Exit(apierr.UserMessage(err), 1)
}

func arg(c *cli.Context, i int, name string) (string, error) {
	v := c.Args().Get(i)
	if v == "" {
		return "", cli.Exit(fmt.Sprintf("missing <%s>", name), 2)
	}
	return v, nil
}

// quantityArg reads an integer argument; def < 0 makes it required
func quantityArg(c *cli.Context, i, def int) (int, error) {
	raw := c.Args().Get(i)
	if raw == "" {
		if def < 0 {
			return 0, cli.Exit("missing <quantity>", 2)
		}
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("quantity %q is not a number", raw), 2)
	}
	return n, nil
}

func priceFlag(c *cli.Context, name string) (*decimal.Decimal, error) {
	raw := c.String(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("--%s must be a number", name), 2)
	}
	return &d, nil
}
