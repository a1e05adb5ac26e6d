package txview

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

const (
	DateLayout          = "2006-01-02"
	localDateTimeLayout = "2006-01-02T15:04:05"

	DateTimeLayout = "Mon, Jan 2, 3:04 PM"
	DateDayLayout  = "Monday, January 2, 2006"
	DateOnlyLayout = "Jan 2, 2006"
	TimeOnlyLayout = "3:04 PM"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// DateTimeStrings are the display encodings of one timestamp.
type DateTimeStrings struct {
	DateTime string `json:"date_time"`
	DateDay  string `json:"date_day"`
	DateOnly string `json:"date_only"`
	TimeOnly string `json:"time_only"`
}

type Formatter struct {
	printer    *message.Printer
	symbol     string
	decimalSep string
	location   *time.Location
}

// NewFormatter builds a formatter for a BCP 47 locale (e.g. "en-US") and an
// ISO 3166 country whose currency is used for amounts.
func NewFormatter(locale, country string, loc *time.Location) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	region, err := language.ParseRegion(country)
	if err != nil {
		return nil, fmt.Errorf("parse country %q: %w", country, err)
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		return nil, fmt.Errorf("no currency for country %q", country)
	}
	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String() + " "
	}
	if loc == nil {
		loc = time.UTC
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		printer:    printer,
		symbol:     symbol,
		decimalSep: decimalSeparator(printer),
		location:   loc,
	}, nil
}

func (f *Formatter) Location() *time.Location {
	return f.location
}

// FormatAmount renders a signed amount as currency. Negative amounts, and
// only those, start with "-". The integer part is grouped by the locale
// printer and the cents come from the decimal itself, so no precision is
// lost to float64.
func (f *Formatter) FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	fixed := rounded.Abs().StringFixed(2)
	intDigits, cents := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	whole := rounded.Abs().Truncate(0).BigInt()
	if !whole.IsUint64() {
		return sign + f.symbol + intDigits + f.decimalSep + cents
	}
	return sign + f.symbol + f.printer.Sprint(number.Decimal(whole.Uint64())) + f.decimalSep + cents
}

// decimalSeparator asks the printer how it writes 1.5 and keeps what sits
// between the digits.
func decimalSeparator(p *message.Printer) string {
	sample := []rune(p.Sprint(number.Decimal(1.5)))
	if len(sample) < 3 {
		return "."
	}
	return string(sample[1 : len(sample)-1])
}

// FormatDateTime derives every display string from the same instant.
func (f *Formatter) FormatDateTime(t time.Time) DateTimeStrings {
	local := t.In(f.location)
	return DateTimeStrings{
		DateTime: local.Format(DateTimeLayout),
		DateDay:  local.Format(DateDayLayout),
		DateOnly: local.Format(DateOnlyLayout),
		TimeOnly: local.Format(TimeOnlyLayout),
	}
}

// ParseTimestamp is the single parse of a provider timestamp. A datetime
// wins over a bare date when both are present. Bare dates are midnight in loc.
func ParseTimestamp(date, datetime string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if datetime = strings.TrimSpace(datetime); datetime != "" {
		if t, err := time.Parse(time.RFC3339, datetime); err == nil {
			return t.In(loc), nil
		}
		if t, err := time.ParseInLocation(localDateTimeLayout, datetime, loc); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, datetime)
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidTimestamp)
	}
	if t, err := time.ParseInLocation(DateLayout, date, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(localDateTimeLayout, date, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, date)
}

// SanitizeName keeps letters, digits and whitespace, then collapses runs of
// whitespace into single spaces.
func SanitizeName(name string) string {
	cleaned := unsafeNameChars.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
