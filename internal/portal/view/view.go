// Package view renders portal state for a terminal.
package view

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	dashboarddomain "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
	designports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
	meetingmapper "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/http/mapper"
)

var quotes = []string{
	"Every stitch tells a story.",
	"Great design is in the details.",
	"Today's sketch is tomorrow's signature piece.",
	"Fabric first, then the magic.",
	"Good taste is a habit. Keep practising.",
}

// Renderer writes cards, grids and placeholders as plain text.
type Renderer struct {
	printer *message.Printer
	pick    func(n int) int
}

type Option func(*Renderer)

// WithQuotePicker replaces the random quote choice.
func WithQuotePicker(pick func(n int) int) Option {
	return func(r *Renderer) {
		if pick != nil {
			r.pick = pick
		}
	}
}

// WithLocale formats amounts for another locale.
func WithLocale(tag language.Tag) Option {
	return func(r *Renderer) {
		r.printer = message.NewPrinter(tag)
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		printer: message.NewPrinter(language.MustParse("en-IN")),
		pick:    rand.Intn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Price formats minor units as rupees. Whole rupees and paise are formatted separately so
// large amounts stay exact.
func (r *Renderer) Price(minor int64) string {
	sign := ""
	units := uint64(minor)
	if minor < 0 {
		sign = "-"
		units = uint64(-(minor + 1)) + 1
	}
	amount := sign + "₹" + r.printer.Sprint(number.Decimal(units/100))
	if paise := units % 100; paise != 0 {
		amount += "." + strings.TrimSuffix(fmt.Sprintf("%02d", paise), "0")
	}
	return amount
}

// Greeting renders the welcome line followed by a motivational quote.
func (r *Renderer) Greeting(w io.Writer, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "there"
	}
	quote := quotes[r.pick(len(quotes))]
	_, err := fmt.Fprintf(w, "Hi %s! 👋\n%s\n\n", name, quote)
	return err
}

// Stats renders the quick stats cards.
func (r *Renderer) Stats(w io.Writer, stats dashboarddomain.Stats) error {
	_, err := fmt.Fprintf(w, "Total Meetings  %s\nSaved Designs   %s\n\n",
		r.printer.Sprint(number.Decimal(stats.TotalMeetings)),
		r.printer.Sprint(number.Decimal(stats.TotalDesigns)))
	return err
}

// Skeleton renders placeholder cards shown while designs load.
func (r *Renderer) Skeleton(w io.Writer, cards int) error {
	var b strings.Builder
	for i := 0; i < cards; i++ {
		b.WriteString("┌────────────────────┐\n")
		b.WriteString("│ ░░░░░░░░░░░░       │\n")
		b.WriteString("│ ░░░░░░             │\n")
		b.WriteString("└────────────────────┘\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// EmptyState renders the placeholder for an empty library.
func (r *Renderer) EmptyState(w io.Writer) error {
	_, err := io.WriteString(w, "No designs yet\n"+
		"Your design library is empty. Start by recording vendor meetings!\n"+
		"→ Record New Meeting\n")
	return err
}

// Designs renders the library page: header, then the grid or the empty state.
func (r *Renderer) Designs(w io.Writer, designs []*designports.DesignProjection) error {
	if _, err := io.WriteString(w, "Design Library\nBrowse and organize your design collection\n\n"); err != nil {
		return err
	}
	if len(designs) == 0 {
		return r.EmptyState(w)
	}
	var b strings.Builder
	for _, p := range designs {
		if p == nil || p.Entity == nil {
			continue
		}
		d := p.Entity
		heart := ""
		if d.Shortlisted {
			heart = " ♥"
		}
		fmt.Fprintf(&b, "#%d %s%s\n", d.ID, r.Price(d.FinalPrice), heart)
		fmt.Fprintf(&b, "   %s", d.Meeting.VendorName)
		if d.Meeting.Location != "" {
			fmt.Fprintf(&b, " · %s", d.Meeting.Location)
		}
		b.WriteString("\n")
		if label, ok := d.Category.Get(); ok {
			fmt.Fprintf(&b, "   [%s]\n", label)
		}
		fmt.Fprintf(&b, "   %s\n", d.ImageURL)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Meetings renders the recent meetings list.
func (r *Renderer) Meetings(w io.Writer, meetings []meetingmapper.MeetingSummary) error {
	if _, err := io.WriteString(w, "Recent Meetings\n\n"); err != nil {
		return err
	}
	if len(meetings) == 0 {
		_, err := io.WriteString(w, "No meetings recorded yet\n")
		return err
	}
	var b strings.Builder
	for _, m := range meetings {
		fmt.Fprintf(&b, "#%d %s", m.ID, m.VendorName)
		if m.Location != "" {
			fmt.Fprintf(&b, " · %s", m.Location)
		}
		fmt.Fprintf(&b, "\n   %s · %d designs\n", m.HeldAt.Format("02 Jan 2006"), m.DesignCount)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DeletePrompt renders the confirmation dialog.
func (r *Renderer) DeletePrompt(w io.Writer, id int64) error {
	_, err := fmt.Fprintf(w, "Delete Design #%d\nAre you sure you want to delete this design? This action cannot be undone.\n", id)
	return err
}
