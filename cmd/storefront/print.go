package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"storefront/internal/client/checkout"
	"storefront/internal/shared/dto"
)

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func printProducts(out io.Writer, page *dto.Page[dto.Product]) {
	w := table(out)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
	for _, p := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%d\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Currency, p.Inventory, p.CategoryID)
	}
	w.Flush()
	fmt.Fprintf(out, "page %d of %d (%d products)\n", page.Page, page.TotalPages, page.Total)
}

func printProduct(out io.Writer, p *dto.Product) {
	w := table(out)
	fmt.Fprintf(w, "ID\t%s\n", p.ID)
	fmt.Fprintf(w, "Name\t%s\n", p.Name)
	fmt.Fprintf(w, "Price\t%s %s\n", p.Price.StringFixed(2), p.Currency)
	fmt.Fprintf(w, "In stock\t%d\n", p.Inventory)
	fmt.Fprintf(w, "Category\t%s\n", p.CategoryID)
	fmt.Fprintf(w, "Rating\t%.1f\n", p.Rating)
	w.Flush()
	if p.Description != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, p.Description)
	}
}

func printCart(out io.Writer, cart *dto.CartSummary) {
	if cart == nil || len(cart.Items) == 0 {
		fmt.Fprintln(out, "Your cart is empty")
		return
	}
	w := table(out)
	fmt.Fprintln(w, "LINE\tPRODUCT\tQTY\tPRICE")
	for _, item := range cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", item.ID, item.Product.Name, item.Quantity, item.Product.Price.StringFixed(2))
	}
	fmt.Fprintf(w, "\t\tSubtotal\t%s\n", cart.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "\t\tTax\t%s\n", cart.Tax.StringFixed(2))
	fmt.Fprintf(w, "\t\tTotal\t%s %s\n", cart.Total.StringFixed(2), cart.Currency)
	w.Flush()
}

func printOrders(out io.Writer, orders []dto.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders yet")
		return
	}
	w := table(out)
	fmt.Fprintln(w, "ID\tSTATUS\tITEMS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s %s\t%s\n", o.ID, o.Status, len(o.Items), o.Total.StringFixed(2), o.Currency, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func printOrder(out io.Writer, o *dto.Order) {
	if o == nil {
		return
	}
	fmt.Fprintf(out, "Order %s (%s)\n", o.ID, o.Status)
	w := table(out)
	for _, item := range o.Items {
		fmt.Fprintf(w, "%s\tx%d\t%s\n", item.Product.Name, item.Quantity, item.Price.StringFixed(2))
	}
	fmt.Fprintf(w, "Subtotal\t\t%s\n", o.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Tax\t\t%s\n", o.Tax.StringFixed(2))
	fmt.Fprintf(w, "Total\t\t%s %s\n", o.Total.StringFixed(2), o.Currency)
	w.Flush()
	fmt.Fprintf(out, "Ship to %s, %s, %s\n", o.Address.FullName, o.Address.Line1, o.Address.City)
	if o.PaidAt != nil {
		fmt.Fprintf(out, "Paid %s (%s)\n", o.PaidAt.Format("2006-01-02 15:04"), o.PaymentRef)
	}
}

func printStage(out io.Writer, stage checkout.Stage, resp *dto.CheckoutResponse) {
	switch stage {
	case checkout.StageAuthorizing:
		fmt.Fprintln(out, "Authorizing payment...")
	case checkout.StageConfirming:
		if resp != nil {
			fmt.Fprintf(out, "Confirming payment %s...\n", resp.PaymentRef)
			return
		}
		fmt.Fprintln(out, "Confirming payment...")
	case checkout.StageSucceeded:
		fmt.Fprintln(out, "Payment succeeded")
	}
}
