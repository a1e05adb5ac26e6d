package txview

import "strings"

// Bucket is a named visual treatment for a category or status badge.
type Bucket int

const (
	BucketDefault Bucket = iota
	BucketIncome
	BucketTransfer
	BucketFoodAndDrink
	BucketBankFees
	BucketPayment
	BucketTravel
	BucketTransportation
	BucketEntertainment
	BucketProcessed
	BucketPending
)

var bucketNames = map[Bucket]string{
	BucketDefault:        "default",
	BucketIncome:         "Income",
	BucketTransfer:       "Transfer",
	BucketFoodAndDrink:   "Food and Drink",
	BucketBankFees:       "Bank Fees",
	BucketPayment:        "Payment",
	BucketTravel:         "Travel",
	BucketTransportation: "Transportation",
	BucketEntertainment:  "Entertainment",
	BucketProcessed:      string(StatusProcessed),
	BucketPending:        string(StatusPending),
}

var bucketsByName = func() map[string]Bucket {
	m := make(map[string]Bucket, len(bucketNames))
	for b, name := range bucketNames {
		m[name] = b
	}
	return m
}()

func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return bucketNames[BucketDefault]
}

type Style struct {
	BorderColor         string `json:"border_color"`
	BackgroundColor     string `json:"background_color"`
	TextColor           string `json:"text_color"`
	ChipBackgroundColor string `json:"chip_background_color"`
}

type Palette map[Bucket]Style

var DefaultPalette = Palette{
	BucketDefault: {
		BorderColor:         "border-slate-300",
		BackgroundColor:     "bg-blue-500",
		TextColor:           "text-blue-700",
		ChipBackgroundColor: "bg-inherit",
	},
	BucketIncome: {
		BorderColor:         "border-green-600",
		BackgroundColor:     "bg-green-600",
		TextColor:           "text-green-700",
		ChipBackgroundColor: "bg-[#ECFDF3]",
	},
	BucketTransfer: {
		BorderColor:         "border-red-700",
		BackgroundColor:     "bg-red-700",
		TextColor:           "text-red-700",
		ChipBackgroundColor: "bg-[#FEF3F2]",
	},
	BucketFoodAndDrink: {
		BorderColor:         "border-pink-600",
		BackgroundColor:     "bg-pink-500",
		TextColor:           "text-pink-700",
		ChipBackgroundColor: "bg-[#FDF2FA]",
	},
	BucketBankFees: {
		BorderColor:         "border-orange-600",
		BackgroundColor:     "bg-orange-500",
		TextColor:           "text-orange-700",
		ChipBackgroundColor: "bg-[#FFF6ED]",
	},
	BucketPayment: {
		BorderColor:         "border-indigo-600",
		BackgroundColor:     "bg-indigo-500",
		TextColor:           "text-indigo-700",
		ChipBackgroundColor: "bg-[#EEF4FF]",
	},
	BucketTravel: {
		BorderColor:         "border-yellow-600",
		BackgroundColor:     "bg-yellow-500",
		TextColor:           "text-yellow-700",
		ChipBackgroundColor: "bg-[#FFFAEB]",
	},
	BucketTransportation: {
		BorderColor:         "border-cyan-600",
		BackgroundColor:     "bg-cyan-500",
		TextColor:           "text-cyan-700",
		ChipBackgroundColor: "bg-[#ECFDFF]",
	},
	BucketEntertainment: {
		BorderColor:         "border-purple-600",
		BackgroundColor:     "bg-purple-500",
		TextColor:           "text-purple-700",
		ChipBackgroundColor: "bg-[#F4F3FF]",
	},
	BucketProcessed: {
		BorderColor:         "border-[#12B76A]",
		BackgroundColor:     "bg-green-600",
		TextColor:           "text-[#027A48]",
		ChipBackgroundColor: "bg-[#ECFDF3]",
	},
	BucketPending: {
		BorderColor:         "border-[#F2F4F7]",
		BackgroundColor:     "bg-gray-500",
		TextColor:           "text-[#344054]",
		ChipBackgroundColor: "bg-[#F2F4F7]",
	},
}

// Rule maps a bucket to the substrings that select it. Substrings are
// matched against the lower-cased category.
type Rule struct {
	Bucket     Bucket
	Substrings []string
}

// DefaultRules is the category priority order. The first matching rule wins.
var DefaultRules = []Rule{
	{Bucket: BucketIncome, Substrings: []string{"income", "loan"}},
	{Bucket: BucketTransfer, Substrings: []string{"transfer"}},
	{Bucket: BucketFoodAndDrink, Substrings: []string{"food", "drink"}},
	{Bucket: BucketBankFees, Substrings: []string{"bank fee"}},
	{Bucket: BucketPayment, Substrings: []string{"payment"}},
	{Bucket: BucketTravel, Substrings: []string{"travel"}},
	{Bucket: BucketTransportation, Substrings: []string{"transport"}},
	{Bucket: BucketEntertainment, Substrings: []string{"entertain"}},
}

type Mode string

const (
	ModeStatus   Mode = "status"
	ModeCategory Mode = "category"
)

// Classifier assigns badge styles. It holds no mutable state and is safe
// for concurrent use.
type Classifier struct {
	rules   []Rule
	palette Palette
}

// NewClassifier builds a classifier. Nil arguments select DefaultRules and
// DefaultPalette.
func NewClassifier(rules []Rule, palette Palette) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}
	if palette == nil {
		palette = DefaultPalette
	}
	return &Classifier{rules: rules, palette: palette}
}

func (c *Classifier) Bucket(value string, mode Mode) Bucket {
	if mode == ModeStatus {
		if b, ok := bucketsByName[value]; ok {
			return b
		}
		return BucketDefault
	}

	// Plaid enums arrive as FOOD_AND_DRINK, BANK_FEES, ...
	lower := strings.ReplaceAll(strings.ToLower(value), "_", " ")
	for _, rule := range c.rules {
		for _, s := range rule.Substrings {
			if strings.Contains(lower, s) {
				return rule.Bucket
			}
		}
	}
	return BucketDefault
}

func (c *Classifier) Classify(value string, mode Mode) Style {
	return c.Style(c.Bucket(value, mode))
}

func (c *Classifier) Style(b Bucket) Style {
	if style, ok := c.palette[b]; ok {
		return style
	}
	if style, ok := c.palette[BucketDefault]; ok {
		return style
	}
	return DefaultPalette[BucketDefault]
}
