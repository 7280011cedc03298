package models

// Categories form a fixed, closed set. Income is never subdivided.
const (
	CategoryIncome        = "Income"
	CategoryGroceries     = "Groceries"
	CategoryEatingOut     = "Eating out"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills & Utilities"
	CategoryTax           = "Tax"
	CategoryInsurance     = "Insurance & Professional"
	CategoryBusiness      = "Business Services"
	CategoryHealth        = "Health & Wellbeing"
	CategorySubscriptions = "Subscriptions"
	CategoryTransfers     = "Transfers"
	CategoryOther         = "Other"
)

// AllCategories lists every valid category value.
var AllCategories = []string{
	CategoryIncome,
	CategoryGroceries,
	CategoryEatingOut,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryTax,
	CategoryInsurance,
	CategoryBusiness,
	CategoryHealth,
	CategorySubscriptions,
	CategoryTransfers,
	CategoryOther,
}

// Bank labels returned by detection and used to pick a parser.
const (
	BankChase     = "Chase"
	BankMonzo     = "Monzo"
	BankSantander = "Santander"
	BankBarclays  = "Barclays"
	BankLloyds    = "Lloyds/Halifax"
)

// Parser names recorded on every transaction of a parse run.
const (
	ParserChase     = "chase"
	ParserMonzo     = "monzo"
	ParserSantander = "santander"
	ParserBarclays  = "barclays"
	ParserLloyds    = "lloyds"
	ParserGeneric   = "generic"
)

// Pipeline limits and gates.
const (
	// MaxPDFPages is the default page cap before parsing is refused.
	MaxPDFPages = 50
	// MinTextLength is the extracted-text floor below which a document is
	// treated as empty (scanned/image-only PDF).
	MinTextLength = 50
	// ConfidenceThreshold is the gate under which a parse run is discarded.
	ConfidenceThreshold = 0.5
)
