package categorizer

import (
	"context"
	"strings"

	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
)

// keywordRule binds a category to the merchant fragments that select it.
type keywordRule struct {
	category string
	keywords []string
}

// keywordRules run in order and the first matching keyword wins, so the
// narrower merchant lists sit above the broader ones. "uber eats" resolves
// before "uber" purely by rule position.
var keywordRules = []keywordRule{
	{models.CategoryBills, []string{
		"british gas", "edf energy", "octopus energy", "ovo energy", "bulb energy",
		"eon next", "e.on", "scottish power", "shell energy",
		"thames water", "anglian water", "severn trent", "yorkshire water", "united utilities",
		"virgin media", "bt group", "plusnet", "talktalk", "sky digital", "sky subscription",
		"vodafone", "o2 ", "ee limited", "three.co.uk", "giffgaff",
		"electricity", "gas bill", "water bill", "broadband", "utility", "utilities",
	}},
	{models.CategoryTax, []string{
		"hmrc", "hm revenue", "council tax", "self assessment", "vat payment",
		"corporation tax", "tax payment", "dvla",
	}},
	{models.CategoryInsurance, []string{
		"insurance", "aviva", "axa ", "admiral", "direct line", "churchill",
		"legal & general", "solicitor", "accountant", "accounting", "notary",
	}},
	{models.CategoryBusiness, []string{
		"amazon web services", "aws emea", "google cloud", "microsoft azure",
		"godaddy", "namecheap", "123-reg", "mailchimp", "slack", "zoom.us",
		"linkedin", "upwork", "fiverr", "xero", "quickbooks", "freeagent",
		"companies house", "coworking", "regus", "wework",
	}},
	{models.CategoryGroceries, []string{
		"tesco", "sainsbury", "asda", "morrisons", "aldi", "lidl", "waitrose",
		"co-op", "coop ", "iceland", "ocado", "m&s food", "marks & spencer",
		"spar ", "budgens", "costcutter", "farmfoods", "grocer", "supermarket",
	}},
	{models.CategoryEatingOut, []string{
		"uber eats", "just eat", "deliveroo",
		"mcdonald", "kfc", "burger king", "nando", "subway", "greggs",
		"pizza", "domino", "wagamama", "pret a manger", "pret ", "itsu",
		"costa coffee", "costa ", "starbucks", "caffe nero", "coffee",
		"restaurant", "takeaway", "kebab", "cafe ", "bakery", "brewdog",
		"wetherspoon", "pub ",
	}},
	{models.CategoryShopping, []string{
		"amazon", "ebay", "etsy", "argos", "john lewis", "next retail",
		"primark", "zara", "h&m", "uniqlo", "asos", "sports direct", "jd sports",
		"currys", "ao.com", "ikea", "b&q", "screwfix", "wickes", "homebase",
		"the range", "dunelm", "wilko", "tk maxx",
	}},
	{models.CategoryTransport, []string{
		"uber", "bolt ", "addison lee", "free now",
		"trainline", "tfl travel", "tfl.gov.uk", "transport for london", "national rail",
		"taxi", "minicab",
		"lner", "gwr", "avanti", "northern rail", "stagecoach", "first bus",
		"shell ", "bp ", "esso", "texaco", "gulf ", "petrol", "fuel",
		"parking", "ncp ", "ringgo", "dart charge", "congestion charge",
		"easyjet", "ryanair", "british airways", "jet2",
	}},
	{models.CategoryHealth, []string{
		"boots", "superdrug", "pharmacy", "chemist", "lloydspharmacy",
		"gym", "puregym", "the gym group", "david lloyd", "fitness",
		"dentist", "dental", "optician", "specsavers", "vision express",
		"holland & barrett", "nhs ", "bupa", "physio",
	}},
	{models.CategorySubscriptions, []string{
		"netflix", "spotify", "disney plus", "disney+", "prime video",
		"apple.com", "apple music", "icloud", "youtube premium", "audible",
		"now tv", "paramount", "crunchyroll", "playstation network", "xbox game pass",
		"nintendo", "patreon", "substack", "dropbox", "onlyfans",
	}},
	{models.CategoryTransfers, []string{
		"transfer to", "transfer from", "standing order", "faster payment",
		"moneybox", "plum savings", "chip savings", "monzo pot", "revolut",
		"vanguard", "hargreaves lansdown", "trading 212", "freetrade",
		"savings account", "cash isa", "paypal transfer", "wise transfer",
	}},
}

// KeywordStrategy categorizes by ordered keyword rules over the description.
// It is the deterministic workhorse: same description, same category, every
// run.
type KeywordStrategy struct {
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy.
func NewKeywordStrategy(logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize matches the description against the rule table in order.
func (s *KeywordStrategy) Categorize(_ context.Context, tx models.Transaction) (string, bool, error) {
	description := strings.ToLower(tx.Description)
	if strings.TrimSpace(description) == "" {
		return "", false, nil
	}

	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(description, keyword) {
				s.logger.Debug("Transaction categorized by keyword",
					logging.Field{Key: "strategy", Value: s.Name()},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: rule.category},
				)
				return rule.category, true, nil
			}
		}
	}
	return "", false, nil
}
