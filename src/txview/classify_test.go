package txview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_CategoryMode(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		category string
		want     Bucket
	}{
		{"INCOME", BucketIncome},
		{"LOAN_PAYMENTS", BucketIncome},
		{"Transfer out", BucketTransfer},
		{"TRANSFER_IN", BucketTransfer},
		{"Transfer payment", BucketTransfer},
		{"FOOD_AND_DRINK", BucketFoodAndDrink},
		{"Food and Drink", BucketFoodAndDrink},
		{"drinks", BucketFoodAndDrink},
		{"Bank Fees", BucketBankFees},
		{"BANK_FEES", BucketBankFees},
		{"Payment", BucketPayment},
		{"RENT_AND_UTILITIES payment", BucketPayment},
		{"TRAVEL", BucketTravel},
		{"TRANSPORTATION", BucketTransportation},
		{"ENTERTAINMENT", BucketEntertainment},
		{"GENERAL_MERCHANDISE", BucketDefault},
		{"Uncategorized", BucketDefault},
		{"", BucketDefault},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Bucket(tt.category, ModeCategory))
		})
	}
}

func TestClassifier_StatusMode(t *testing.T) {
	c := NewClassifier(nil, nil)

	assert.Equal(t, BucketProcessed, c.Bucket("Processed", ModeStatus))
	assert.Equal(t, BucketPending, c.Bucket("Pending", ModeStatus))
	assert.Equal(t, BucketTravel, c.Bucket("Travel", ModeStatus))
	// status lookups are verbatim, no substring inference
	assert.Equal(t, BucketDefault, c.Bucket("processed", ModeStatus))
	assert.Equal(t, BucketDefault, c.Bucket("Travel expenses", ModeStatus))
	assert.Equal(t, BucketDefault, c.Bucket("Cancelled", ModeStatus))
}

func TestClassifier_StylesComeFromPalette(t *testing.T) {
	c := NewClassifier(nil, nil)

	assert.Equal(t, DefaultPalette[BucketFoodAndDrink], c.Classify("FOOD_AND_DRINK", ModeCategory))
	assert.Equal(t, DefaultPalette[BucketProcessed], c.Classify(string(StatusProcessed), ModeStatus))
	assert.Equal(t, DefaultPalette[BucketDefault], c.Classify("no such thing", ModeCategory))
	assert.Equal(t, DefaultPalette[BucketDefault], c.Classify("no such thing", ModeStatus))
}

func TestClassifier_Idempotent(t *testing.T) {
	c := NewClassifier(nil, nil)

	for _, category := range []string{"TRAVEL", "Transfer payment", "unknown"} {
		first := c.Classify(category, ModeCategory)
		second := c.Classify(category, ModeCategory)
		assert.Equal(t, first, second, category)
	}
}

func TestClassifier_CustomRules(t *testing.T) {
	c := NewClassifier([]Rule{
		{Bucket: BucketTravel, Substrings: []string{"uber"}},
		{Bucket: BucketIncome, Substrings: []string{"income"}},
	}, nil)

	assert.Equal(t, BucketTravel, c.Bucket("Uber 063015 SF**POOL**", ModeCategory))
	assert.Equal(t, BucketDefault, c.Bucket("FOOD_AND_DRINK", ModeCategory))
}

func TestClassifier_MissingPaletteEntryFallsBackToDefault(t *testing.T) {
	fallback := Style{BorderColor: "b", BackgroundColor: "bg", TextColor: "t", ChipBackgroundColor: "c"}
	c := NewClassifier(nil, Palette{BucketDefault: fallback})

	assert.Equal(t, fallback, c.Classify("INCOME", ModeCategory))
}

func TestBucket_String(t *testing.T) {
	assert.Equal(t, "Food and Drink", BucketFoodAndDrink.String())
	assert.Equal(t, "Pending", BucketPending.String())
	assert.Equal(t, "default", Bucket(99).String())
}

func TestDefaultPalette_CoversEveryBucket(t *testing.T) {
	for b := range bucketNames {
		_, ok := DefaultPalette[b]
		assert.True(t, ok, "missing palette entry for %s", b)
	}
}
