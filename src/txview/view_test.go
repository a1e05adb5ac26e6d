package txview

import (
	"context"
	"fmt"
	"testing"
	"time"

	"horizon-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T, now time.Time) *View {
	t.Helper()
	v := NewView(newUSFormatter(t))
	v.Now = func() time.Time { return now }
	return v
}

func TestView_Render_EndToEnd(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	v := newTestView(t, now)

	raw := rawTxn("t1")
	raw.Date = "2024-03-01"
	raw.PersonalFinanceCategory = &models.PersonalFinanceCategory{Primary: "FOOD_AND_DRINK"}

	page := v.Render(context.Background(), []models.RawTransaction{raw}, 1)

	require.Len(t, page.Rows, 1)
	row := page.Rows[0]
	assert.Equal(t, "Coffee Shop", row.Name)
	assert.Equal(t, "-42.50", row.Amount)
	assert.Equal(t, "-$42.50", row.FormattedAmount)
	assert.True(t, row.IsDebit)
	assert.Equal(t, "FOOD_AND_DRINK", row.Category)
	assert.Equal(t, "Food and Drink", row.CategoryBucket)
	assert.Equal(t, DefaultPalette[BucketFoodAndDrink], row.CategoryStyle)
	assert.Equal(t, StatusProcessed, row.Status)
	assert.Equal(t, DefaultPalette[BucketProcessed], row.StatusStyle)
	assert.Equal(t, "Mar 1, 2024", row.Dates.DateOnly)
	assert.Equal(t, "Friday, March 1, 2024", row.Dates.DateDay)
	assert.Equal(t, "in store", row.PaymentChannel)
}

func TestView_Render_RecentIsPending(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	v := newTestView(t, now)

	raw := rawTxn("t1")
	raw.Date = ""
	raw.Datetime = now.Add(-DefaultPendingThreshold).Format(time.RFC3339)

	page := v.Render(context.Background(), []models.RawTransaction{raw}, 1)

	require.Len(t, page.Rows, 1)
	assert.Equal(t, StatusPending, page.Rows[0].Status)
	assert.Equal(t, DefaultPalette[BucketPending], page.Rows[0].StatusStyle)
}

func TestView_Render_Pagination(t *testing.T) {
	v := newTestView(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	raws := make([]models.RawTransaction, 0, 26)
	for i := 0; i < 25; i++ {
		raws = append(raws, rawTxn(fmt.Sprintf("t%02d", i)))
	}
	bad := rawTxn("broken")
	bad.Date = "not a date"
	raws = append(raws, bad)

	first := v.Render(context.Background(), raws, 1)
	assert.Len(t, first.Rows, 10)
	assert.Equal(t, "t00", first.Rows[0].ID)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 25, first.TotalCount)
	assert.Equal(t, 1, first.Skipped)

	last := v.Render(context.Background(), raws, 3)
	require.Len(t, last.Rows, 5)
	assert.Equal(t, "t20", last.Rows[0].ID)
	assert.Equal(t, "t24", last.Rows[4].ID)

	beyond := v.Render(context.Background(), raws, 4)
	assert.Empty(t, beyond.Rows)
	assert.Equal(t, 4, beyond.Page)
}

func TestView_Render_CustomPageSize(t *testing.T) {
	v := newTestView(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	v.PageSize = 2

	raws := []models.RawTransaction{rawTxn("a"), rawTxn("b"), rawTxn("c")}
	page := v.Render(context.Background(), raws, 2)

	require.Len(t, page.Rows, 1)
	assert.Equal(t, "c", page.Rows[0].ID)
	assert.Equal(t, 2, page.TotalPages)
}
