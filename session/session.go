package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"go-currency-converter/domain"
	"go-currency-converter/exchange"
	"go-currency-converter/rates"
	"go-currency-converter/symbols"
	"io"
	"math"
	"strconv"
	"strings"
)

const menu = `Please select an option:
    1: convert USD amount to any currency (uses rate table)
    2: convert a currency to another specific currency (uses exchange rate service)
    3: print out list of available currency codes
    4: quit program
`

// errQuit input ran out; the session ends as if the user quit
var errQuit = errors.New("input closed")

// line one line of input, or the error that stopped the scanner
type line struct {
	text string
	err  error
}

// Controller drives the interactive menu. It is not safe for concurrent use.
type Controller struct {
	in  *bufio.Scanner
	out io.Writer

	// lines fed by a scanning goroutine so reads can give up when ctx is cancelled
	lines chan line

	registry *symbols.Registry
	exchange exchange.Service

	// table nil when the rate table could not be opened
	table   rates.Source
	service rates.Source
}

// New constructs a Controller. table may be nil, which disables table based conversions.
func New(in io.Reader, out io.Writer, registry *symbols.Registry, ex exchange.Service, table rates.Source, service rates.Source) *Controller {
	return &Controller{
		in:       bufio.NewScanner(in),
		out:      out,
		registry: registry,
		exchange: ex,
		table:    table,
		service:  service,
	}
}

// Run loops over the menu until the user quits, input ends or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.printf("Welcome to the Currency Converter!\n\n")
	defer c.printf("\nThank you for using the Currency Converter!\n")

	for ctx.Err() == nil {
		c.printf(menu)
		choice, err := c.readLine(ctx)
		if err != nil {
			return c.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.convertFromBase(ctx)
		case "2":
			err = c.convertAny(ctx)
		case "3":
			c.printSymbols()
		case "4":
			return nil
		default:
			c.printf("Invalid selection! Please enter a valid selection\n\n")
		}
		if err != nil {
			return c.finish(err)
		}
	}
	return nil
}

// finish treats running out of input or being cancelled as quitting
func (c *Controller) finish(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Controller) convertFromBase(ctx context.Context) error {
	if c.table == nil {
		c.printf("\nThe rate table is unavailable, please use the exchange rate service instead.\n\n")
		return nil
	}

	to, err := c.readCode(ctx, fmt.Sprintf("the 3 letter currency code you would like to convert %v to", domain.BaseCurrency))
	if err != nil {
		return err
	}
	amount, err := c.readAmount(ctx, fmt.Sprintf("the amount of %v you would like to convert to %v", domain.BaseCurrency, to))
	if err != nil {
		return err
	}

	request := domain.Request{From: domain.BaseCurrency, To: to, Amount: amount}
	return c.convert(ctx, request, exchange.TableBased{Table: c.table})
}

func (c *Controller) convertAny(ctx context.Context) error {
	from, err := c.readCode(ctx, "the 3 letter currency code you would like to convert FROM")
	if err != nil {
		return err
	}
	to, err := c.readCode(ctx, "the 3 letter currency code you would like to convert TO")
	if err != nil {
		return err
	}
	amount, err := c.readAmount(ctx, fmt.Sprintf("the amount of %v you would like to convert to %v", from, to))
	if err != nil {
		return err
	}

	request := domain.Request{From: from, To: to, Amount: amount}
	return c.convert(ctx, request, exchange.ServiceBased{Service: c.service})
}

// convert reports the outcome of one conversion. Only cancellation is returned as an error.
func (c *Controller) convert(ctx context.Context, request domain.Request, mode exchange.Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := c.exchange.Convert(ctx, request, mode)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.printf("%v\n\n", describe(err))
		return nil
	}
	c.printf("Your converted amount of %v %v is %v %v\n\n",
		strconv.FormatFloat(float64(request.Amount), 'f', -1, 64), request.From, result.Display(), request.To)
	return nil
}

// describe turns a conversion failure into a message for the user
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrRateNotFound):
		return "No rate is stored for that currency. Please try another currency."
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "The rate table could not be read. Please try again or use the exchange rate service."
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "The exchange rate service could not be reached. Please try again later."
	case errors.Is(err, domain.ErrServiceResponseInvalid):
		return "The exchange rate service sent an unexpected response. Please try again later."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "The amount must be a non-negative number small enough to convert."
	default:
		return fmt.Sprintf("Conversion failed: %v", err)
	}
}

func (c *Controller) printSymbols() {
	c.printf("\nHere is a list of all valid currency codes:\n")
	for _, s := range c.registry.Symbols() {
		c.printf("    %v: %v\n", s.Code, s.Description)
	}
	c.printf("\n")
}

// readCode prompts until the user enters a code known to the registry
func (c *Controller) readCode(ctx context.Context, what string) (domain.Currency, error) {
	c.printf("\nPlease enter %v:\n", what)
	for {
		text, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		code := domain.Currency(strings.ToUpper(strings.TrimSpace(text)))
		if symbols.IsValid(code, c.registry) {
			return code, nil
		}
		c.printf("Invalid currency code!\nPlease enter %v:\n", what)
	}
}

// readAmount prompts until the user enters a non-negative number
func (c *Controller) readAmount(ctx context.Context, what string) (domain.Amount, error) {
	c.printf("Please enter %v:\n", what)
	for {
		text, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil && f >= 0 && !math.IsInf(f, 0) {
			return domain.Amount(f), nil
		}
		c.printf("Invalid amount!\nPlease enter %v:\n", what)
	}
}

// readLine waits for the next line of input or for ctx to be cancelled
func (c *Controller) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.lines == nil {
		c.lines = make(chan line)
		go c.scan()
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", errQuit
		}
		return l.text, l.err
	}
}

// scan feeds c.lines until input ends. A read blocked on a terminal outlives a cancelled session.
func (c *Controller) scan() {
	defer close(c.lines)
	for c.in.Scan() {
		c.lines <- line{text: c.in.Text()}
	}
	if err := c.in.Err(); err != nil {
		c.lines <- line{err: fmt.Errorf("reading input: %w", err)}
	}
}

func (c *Controller) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
