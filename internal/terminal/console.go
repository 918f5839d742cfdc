// Package terminal is the interactive console front end: a menu loop over
// the billing, stock and sales use cases. Every failure is shown as an
// alert the operator acknowledges with Enter before the menu returns.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/internal/billing"
	billingdto "github.com/jith-01/Billing-Software-amd/internal/billing/dto"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/model"
	"github.com/jith-01/Billing-Software-amd/internal/render"
	"github.com/jith-01/Billing-Software-amd/internal/sales"
	"github.com/jith-01/Billing-Software-amd/internal/session"
	"github.com/jith-01/Billing-Software-amd/internal/stock"
	stockdto "github.com/jith-01/Billing-Software-amd/internal/stock/dto"
)

type Console struct {
	in  *bufio.Reader
	out io.Writer

	stockUC   stock.UseCase
	billingUC billing.UseCase
	salesUC   sales.UseCase
	sess      *session.Session
	logger    logger.ZapLogger

	// kept after a failed add so the operator can correct and retry
	addForm stockdto.AddItemInput
}

type Deps struct {
	Stock   stock.UseCase
	Billing billing.UseCase
	Sales   sales.UseCase
	Session *session.Session
	Logger  logger.ZapLogger
}

func New(in io.Reader, out io.Writer, deps Deps) *Console {
	return &Console{
		in:        bufio.NewReader(in),
		out:       out,
		stockUC:   deps.Stock,
		billingUC: deps.Billing,
		salesUC:   deps.Sales,
		sess:      deps.Session,
		logger:    deps.Logger,
	}
}

// Run shows the menu until the operator exits, the input ends or ctx is
// cancelled.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println("\n1: Generate Bill")
		c.println("2: Print Receipt")
		c.println("3: Show Stock")
		c.println("4: Add Item")
		c.println("5: Sales Report")
		c.println("X: Exit")

		choice, err := c.readLine("Enter choice: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch strings.ToUpper(choice) {
		case "1":
			err = c.do(ctx, c.generateBill)
		case "2":
			err = c.do(ctx, c.printReceipt)
		case "3":
			err = c.do(ctx, c.showStock)
		case "4":
			err = c.do(ctx, c.addItem)
		case "5":
			err = c.do(ctx, c.salesReport)
		case "X":
			c.println("Exiting...")
			return nil
		default:
			c.println("Invalid choice. Please enter a valid option.")
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func (c *Console) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.sess.Do(ctx, fn)
}

func (c *Console) generateBill(ctx context.Context) error {
	input := &billingdto.GenerateBillInput{Quantities: map[string]string{}}

	var err error
	if input.CustomerName, err = c.readLine("Customer Name: "); err != nil {
		return err
	}
	if input.RationCard, err = c.readLine("Ration Card No: "); err != nil {
		return err
	}

	catalog, loadErr := c.billingUC.LoadCatalog(ctx)
	if loadErr != nil {
		return c.alert("Database Error", "Query failed: "+loadErr.Error())
	}

	c.println("Enter a quantity per item, leave blank to skip.")
	for _, it := range catalog {
		if input.Quantities[it.ItemName], err = c.readLine(fmt.Sprintf("  %s (%s): ", it.ItemName, render.Money(it.Rate))); err != nil {
			return err
		}
	}

	receipt, genErr := c.billingUC.GenerateBill(ctx, input)
	if genErr != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(genErr, &verr):
			return c.alert("Input Error", verr.Message)
		case errors.Is(genErr, model.ErrEmptyBill):
			return c.alert("Input Error", "Please enter a quantity for at least one item.")
		}
		return c.alert("Database Error", "Failed to generate and save the bill.")
	}

	c.sess.SetReceipt(receipt.Text)
	c.println(receipt.Text)
	return nil
}

func (c *Console) printReceipt(ctx context.Context) error {
	err := c.billingUC.PrintReceipt(ctx, c.sess.Receipt())
	switch {
	case err == nil:
		return c.alert("Print Success", "Receipt sent to the printer.")
	case errors.Is(err, model.ErrNothingToPrint):
		return c.alert("Print Error", "No receipt to print.")
	}
	return c.alert("Print Error", err.Error())
}

func (c *Console) showStock(ctx context.Context) error {
	listing, err := c.stockUC.Listing(ctx)
	c.print(listing.Text)
	if err != nil {
		return c.alert("Database Error", "Query failed: "+err.Error())
	}
	return nil
}

func (c *Console) addItem(ctx context.Context) error {
	form := c.addForm

	var err error
	if form.SlNo, err = c.readDefault("Sl No", form.SlNo); err != nil {
		return err
	}
	if form.ItemName, err = c.readDefault("Item Name", form.ItemName); err != nil {
		return err
	}
	if form.Rate, err = c.readDefault("Rate", form.Rate); err != nil {
		return err
	}
	c.addForm = form

	out, addErr := c.stockUC.AddItem(ctx, &form)
	if addErr != nil {
		var verrs validation.Errors
		var verr *model.ValidationError
		switch {
		case errors.As(addErr, &verrs):
			return c.alert("Input Error", addItemMessage(verrs))
		case errors.As(addErr, &verr):
			return c.alert("Input Error", verr.Message)
		case errors.Is(addErr, model.ErrDuplicateItem):
			return c.alert("Database Error", "Failed to add item: "+addErr.Error()+".")
		}
		return c.alert("Database Error", "Failed to add item.")
	}

	c.addForm = stockdto.AddItemInput{}
	if out.Listing != nil {
		c.print(out.Listing.Text)
	}
	c.logger.Debug("console added item", zap.String("item_name", out.Item.ItemName))
	return c.alert("Success", "Item added successfully.")
}

func addItemMessage(verrs validation.Errors) string {
	for _, err := range verrs {
		if err.Error() == "cannot be blank" {
			return "Please fill all fields."
		}
	}
	if _, ok := verrs["rate"]; ok && len(verrs) == 1 {
		return "Rate must be a number."
	}
	return verrs.Error()
}

func (c *Console) salesReport(ctx context.Context) error {
	date, err := c.readLine("Enter date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	report, repErr := c.salesUC.DailyReport(ctx, date)
	if repErr != nil {
		var verr *model.ValidationError
		if errors.As(repErr, &verr) {
			return c.alert("Input Error", verr.Message)
		}
		return c.alert("Database Error", "Query failed: "+repErr.Error())
	}

	c.println(report.Text)
	return nil
}

// alert blocks until the operator presses Enter.
func (c *Console) alert(title, msg string) error {
	c.println(fmt.Sprintf("[%s] %s", title, msg))
	_, err := c.readLine("Press Enter to continue...")
	return err
}

func (c *Console) readDefault(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	v, err := c.readLine(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

// readLine returns the next input line without its line ending. A last
// line without a newline is still returned.
func (c *Console) readLine(prompt string) (string, error) {
	c.print(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) print(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) println(s string) {
	_, _ = io.WriteString(c.out, s+"\n")
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
