package entity

// ProductRecommendation は検索グラウンディング付きレスポンスからデコードした家具・インテリアの推薦です。
type ProductRecommendation struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	PriceRange   string `json:"price_range"`
	Retailer     string `json:"retailer"`
	FitRationale string `json:"fit_rationale"`
	SearchQuery  string `json:"search_query"`
}

// BudgetTier は推薦時の予算帯です。
type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
	BudgetLuxury BudgetTier = "luxury"
)

var budgetRanges = map[BudgetTier]string{
	BudgetLow:    "budget-friendly under $500",
	BudgetMedium: "mid-range $500-2000",
	BudgetHigh:   "premium $2000-5000",
	BudgetLuxury: "luxury over $5000",
}

// Describe はプロンプトに埋め込む予算帯の説明を返します。未知の予算帯は "Not specified" です。
func (b BudgetTier) Describe() string {
	if s, ok := budgetRanges[b]; ok {
		return s
	}
	return "Not specified"
}
