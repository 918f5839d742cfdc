// Package render lays out receipts, catalog listings and sales reports as
// fixed-width text columns.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jith-01/Billing-Software-amd/internal/model"
)

const (
	receiptRule = "-------------------------------"
	receiptHead = "----------- RECEIPT -----------"

	stockRuleWidth = 45
	salesRuleWidth = 50
)

// Text pads s to width and cuts anything longer.
func Text(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// Num pads s to width. Numbers are never cut.
func Num(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type Receipt struct {
	CustomerName string
	RationCard   string
	Items        []model.BillItem
	Total        decimal.Decimal
}

func (r Receipt) Lines() []string {
	lines := []string{
		receiptHead,
		"Customer: " + r.CustomerName,
		"Ration Card: " + r.RationCard,
		receiptRule,
		row(Text("Item", 15), Text("Qty", 5), Text("Price", 7), Text("Total", 7)),
		receiptRule,
	}
	for _, it := range r.Items {
		lines = append(lines, row(
			Text(it.ItemName, 15),
			Num(strconv.Itoa(it.Quantity), 5),
			Num(Money(it.UnitPrice), 7),
			Num(Money(it.LineTotal()), 7),
		))
	}
	return append(lines,
		receiptRule,
		"Total Amount: "+Money(r.Total),
		receiptRule,
	)
}

func (r Receipt) String() string {
	return strings.Join(r.Lines(), "\n")
}

func StockListing(items []model.StockItem) string {
	var b strings.Builder
	b.WriteString(row(Text("Sl No", 10), Text("Item Name", 25), Text("Rate", 10)))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", stockRuleWidth))
	b.WriteByte('\n')
	for _, it := range items {
		b.WriteString(row(
			Num(strconv.FormatInt(it.SlNo, 10), 10),
			Text(it.ItemName, 25),
			Num(Money(it.Rate), 10),
		))
		b.WriteByte('\n')
	}
	return b.String()
}

func SalesTable(date string, lines []model.SalesLine, total decimal.Decimal) string {
	rule := strings.Repeat("-", salesRuleWidth)

	var b strings.Builder
	b.WriteString(row(Text("Item", 20), Text("Qty Sold", 15), Text("Total Sales", 15)))
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteByte('\n')
	for _, l := range lines {
		b.WriteString(row(
			Text(l.ItemName, 20),
			Num(strconv.FormatInt(l.Quantity, 10), 15),
			Num(Money(l.Revenue), 15),
		))
		b.WriteByte('\n')
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total Sales Amount for %s: %s", date, Money(total))
	return b.String()
}

func row(cols ...string) string {
	return strings.TrimRight(strings.Join(cols, ""), " ")
}
