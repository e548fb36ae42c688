package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/accountant/internal/model"
)

// ErrInputTerminated is returned when input ends before a prompt is answered.
var ErrInputTerminated = errors.New("input terminated")

// Prompter collects transaction details interactively.
type Prompter struct {
	writer   io.Writer
	reader   *NonBlockingReader
	now      func() time.Time
	location *time.Location
}

// NewPrompter creates a prompter reading from reader and writing to writer,
// defaulting to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader:   NewNonBlockingReader(reader),
		writer:   writer,
		now:      time.Now,
		location: time.Local,
	}
}

// WithClock sets the clock and time zone used for date defaults.
func (p *Prompter) WithClock(now func() time.Time, loc *time.Location) *Prompter {
	if now != nil {
		p.now = now
	}
	if loc != nil {
		p.location = loc
	}
	return p
}

// ask prints label and returns the trimmed answer, or def when the answer is empty.
func (p *Prompter) ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt += " " + SubtleStyle.Render("["+def+"]")
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrInputTerminated
	}
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *Prompter) retry(message string) {
	_, _ = fmt.Fprintln(p.writer, FormatError(message+" Please try again."))
}

// PromptTransaction asks for every field of a transaction. Values of base are
// offered as defaults, so an edit can keep fields by pressing enter; base.ID
// is kept, or a new ID assigned when it is empty.
func (p *Prompter) PromptTransaction(ctx context.Context, base model.Transaction) (model.Transaction, error) {
	txn := base
	if txn.ID == "" {
		txn.ID = model.NewID()
	}

	defType := txn.Type
	if !defType.Valid() {
		defType = model.TypeExpense
	}
	for {
		answer, err := p.ask(ctx, "Type (income/expense)", strings.ToLower(defType.String()))
		if err != nil {
			return model.Transaction{}, err
		}
		t, err := model.ParseType(answer)
		if err != nil {
			p.retry("Type must be income or expense.")
			continue
		}
		txn.Type = t
		break
	}

	defAmount := ""
	if base.Amount > 0 {
		defAmount = strconv.FormatFloat(base.Amount, 'f', 2, 64)
	}
	for {
		answer, err := p.ask(ctx, "Amount", defAmount)
		if err != nil {
			return model.Transaction{}, err
		}
		amount, err := model.ParseAmount(answer)
		if err != nil {
			p.retry("Enter a positive number such as 12.50 or 12,50.")
			continue
		}
		txn.Amount = amount
		break
	}

	for {
		answer, err := p.ask(ctx, "Description", base.Description)
		if err != nil {
			return model.Transaction{}, err
		}
		if answer == "" {
			p.retry("Description cannot be empty.")
			continue
		}
		txn.Description = answer
		break
	}

	category, err := p.promptCategory(ctx, txn.Type, base.Category)
	if err != nil {
		return model.Transaction{}, err
	}
	txn.Category = category

	date, err := p.promptDate(ctx, base.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	txn.Date = date

	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// promptCategory lists the suggestions for t and accepts a number or any name.
func (p *Prompter) promptCategory(ctx context.Context, t model.TransactionType, current string) (string, error) {
	suggestions := model.SuggestedCategories(t)
	names := make([]string, len(suggestions))
	for i, c := range suggestions {
		names[i] = fmt.Sprintf("%d) %s %s", i+1, c.Icon, c.Name)
	}
	_, _ = fmt.Fprintln(p.writer, SubtleStyle.Render(strings.Join(names, "  ")))

	def := current
	if def == "" {
		def = model.DefaultCategory(t)
	}
	for {
		answer, err := p.ask(ctx, "Category", def)
		if err != nil {
			return "", err
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil {
			if n >= 1 && n <= len(suggestions) {
				return suggestions[n-1].Name, nil
			}
			p.retry(fmt.Sprintf("Choose 1-%d or type a name.", len(suggestions)))
			continue
		}
		return answer, nil
	}
}

// promptDate accepts YYYY-MM-DD, "today" or "yesterday". A typed day keeps
// the current time of day so entries made on one day stay in entry order.
func (p *Prompter) promptDate(ctx context.Context, current time.Time) (time.Time, error) {
	now := p.now().In(p.location)
	def := "today"
	if !current.IsZero() {
		def = current.In(p.location).Format("2006-01-02")
	}

	for {
		answer, err := p.ask(ctx, "Date (YYYY-MM-DD)", def)
		if err != nil {
			return time.Time{}, err
		}
		if !current.IsZero() && answer == def {
			return current, nil
		}

		day, err := ParseDay(answer, now)
		if err != nil {
			p.retry("Use YYYY-MM-DD, today or yesterday.")
			continue
		}
		return day, nil
	}
}

// ParseDay parses YYYY-MM-DD, "today" or "yesterday" relative to now, keeping
// now's time of day and location.
func ParseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location()), nil
}

// Confirm asks a yes/no question. Anything but y or yes counts as no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.ask(ctx, question+" (y/N)", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
