package main

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"storefront/internal/client/apierr"
	"storefront/internal/client/checkout"
	"storefront/internal/shared/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func argsContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse(args))
	return cli.NewContext(newCLI(), set, nil)
}

func TestQuantityArg(t *testing.T) {
	n, err := quantityArg(argsContext(t, "p1"), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = quantityArg(argsContext(t, "p1", "3"), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = quantityArg(argsContext(t, "line-1"), 1, -1)
	assert.Error(t, err)

	_, err = quantityArg(argsContext(t, "p1", "many"), 1, 1)
	assert.Error(t, err)
}

func TestNoticeUsesUserMessage(t *testing.T) {
	err := notice(apierr.New(apierr.KindNotAuthenticated, "token expired"))
	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.ExitCode())
	assert.Equal(t, "Please sign in to manage your cart", err.Error())

	err = notice(errors.New("dial tcp: refused"))
	assert.Equal(t, "dial tcp: refused", err.Error())
}

func TestPrintCart(t *testing.T) {
	var out bytes.Buffer
	printCart(&out, &dto.CartSummary{})
	assert.Equal(t, "Your cart is empty\n", out.String())

	out.Reset()
	printCart(&out, &dto.CartSummary{
		ID: 1,
		Items: []dto.CartLineItem{{
			ID:        "line-1",
			ProductID: "p1",
			Quantity:  2,
			Product:   dto.Product{ID: "p1", Name: "Aurora Headphones", Price: decimal.RequireFromString("39")},
		}},
		Subtotal: decimal.RequireFromString("78"),
		Tax:      decimal.RequireFromString("6.24"),
		Total:    decimal.RequireFromString("84.24"),
		Currency: "USD",
	})
	assert.Contains(t, out.String(), "Aurora Headphones")
	assert.Contains(t, out.String(), "84.24 USD")
}

func TestPrintStage(t *testing.T) {
	var out bytes.Buffer
	printStage(&out, checkout.StageConfirming, &dto.CheckoutResponse{PaymentRef: "pay_1234"})
	assert.Equal(t, "Confirming payment pay_1234...\n", out.String())
}
