package txview

import (
	"context"
	"time"

	"horizon-server/src/models"
)

// Row is one rendered line of the transactions table.
type Row struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	Name            string          `json:"name"`
	Amount          string          `json:"amount"`
	FormattedAmount string          `json:"formatted_amount"`
	IsDebit         bool            `json:"is_debit"`
	Date            time.Time       `json:"date"`
	PaymentChannel  string          `json:"payment_channel"`
	Category        string          `json:"category"`
	CategoryBucket  string          `json:"category_bucket"`
	Pending         bool            `json:"pending"`
	Status          Status          `json:"status"`
	StatusStyle     Style           `json:"status_style"`
	CategoryStyle   Style           `json:"category_style"`
	Image           string          `json:"image,omitempty"`
	Dates           DateTimeStrings `json:"dates"`
}

// Page is a view over one request's transactions. It is rebuilt on every
// request and never stored.
type Page struct {
	Rows       []Row `json:"rows"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	TotalCount int   `json:"total_count"`
	Skipped    int   `json:"skipped"`
}

type View struct {
	Formatter        *Formatter
	Classifier       *Classifier
	PageSize         int
	PendingThreshold time.Duration
	Now              func() time.Time
}

// NewView wires a view with the default page size, threshold and rules.
func NewView(formatter *Formatter) *View {
	return &View{
		Formatter:        formatter,
		Classifier:       NewClassifier(nil, nil),
		PageSize:         DefaultPageSize,
		PendingThreshold: DefaultPendingThreshold,
		Now:              time.Now,
	}
}

// Render normalizes raws, then renders the requested 1-based page.
func (v *View) Render(ctx context.Context, raws []models.RawTransaction, page int) Page {
	txns, skipped := NormalizeAll(ctx, raws, v.Formatter.Location())

	pageSize := v.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	now := v.Now()

	visible := Paginate(txns, page, pageSize)
	rows := make([]Row, 0, len(visible))
	for _, txn := range visible {
		rows = append(rows, v.row(txn, now))
	}

	return Page{
		Rows:       rows,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(len(txns), pageSize),
		TotalCount: len(txns),
		Skipped:    skipped,
	}
}

func (v *View) row(txn models.Transaction, now time.Time) Row {
	status := ResolveStatus(txn.Date, now, v.PendingThreshold)
	bucket := v.Classifier.Bucket(txn.Category, ModeCategory)
	return Row{
		ID:              txn.ID,
		AccountID:       txn.AccountID,
		Name:            SanitizeName(txn.Name),
		Amount:          txn.Amount.StringFixed(2),
		FormattedAmount: v.Formatter.FormatAmount(txn.Amount),
		IsDebit:         txn.IsDebit(),
		Date:            txn.Date,
		PaymentChannel:  txn.PaymentChannel,
		Category:        txn.Category,
		CategoryBucket:  bucket.String(),
		Pending:         txn.Pending,
		Status:          status,
		StatusStyle:     v.Classifier.Classify(string(status), ModeStatus),
		CategoryStyle:   v.Classifier.Style(bucket),
		Image:           txn.Image,
		Dates:           v.Formatter.FormatDateTime(txn.Date),
	}
}
