// Package pipeline orchestrates a full statement parse: size and emptiness
// gates, bank and year detection, bank-specific parsing with generic
// fallback, cleanup, confidence scoring and categorisation. A run either
// yields a validated transaction list or a typed StatementError; there are
// no partial results.
package pipeline

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"ledgerline/bankstmt-csv/internal/bankdetect"
	"ledgerline/bankstmt-csv/internal/categorizer"
	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/models"
	"ledgerline/bankstmt-csv/internal/parser"
	"ledgerline/bankstmt-csv/internal/parsererror"
	"ledgerline/bankstmt-csv/internal/textutils"
	"ledgerline/bankstmt-csv/internal/validation"
)

// Options configures a Pipeline. Zero values fall back to the defaults in
// models; Now and NewID exist so runs are reproducible under test.
type Options struct {
	MaxPDFPages         int
	MinTextLength       int
	ConfidenceThreshold float64

	Now   func() time.Time
	NewID func() string

	Store  categorizer.CategoryLookup
	AI     categorizer.AIClient
	Logger logging.Logger
}

// Result is a successful parse run.
type Result struct {
	Transactions []models.Transaction `json:"transactions"`
	Bank         string               `json:"bank,omitempty"`
	Year         int                  `json:"year"`
	ParserUsed   string               `json:"parserUsed"`
	Confidence   float64              `json:"confidence"`
}

// Pipeline is safe for concurrent use once constructed.
type Pipeline struct {
	maxPages  int
	minText   int
	threshold float64
	now       func() time.Time
	newID     func() string
	cat       *categorizer.Categorizer
	logger    logging.Logger
}

// New constructs a Pipeline, filling unset options with defaults.
func New(opts Options) *Pipeline {
	if opts.MaxPDFPages <= 0 {
		opts.MaxPDFPages = models.MaxPDFPages
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = models.MinTextLength
	}
	if opts.ConfidenceThreshold <= 0 {
		opts.ConfidenceThreshold = models.ConfidenceThreshold
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetLogger()
	}
	return &Pipeline{
		maxPages:  opts.MaxPDFPages,
		minText:   opts.MinTextLength,
		threshold: opts.ConfidenceThreshold,
		now:       opts.Now,
		newID:     opts.NewID,
		cat:       categorizer.New(opts.Store, opts.AI, opts.Logger),
		logger:    opts.Logger,
	}
}

// Process runs the full parse over extracted statement text. pageCount is
// the page count of the source document; pass 0 when the source was plain
// text.
func (p *Pipeline) Process(ctx context.Context, rawText string, pageCount int) (*Result, error) {
	if pageCount > p.maxPages {
		return nil, &parsererror.StatementError{
			Kind:    parsererror.KindPDFTooLarge,
			Details: parsererror.Details{PageCount: pageCount, MaxPages: p.maxPages},
		}
	}

	text := strings.TrimSpace(rawText)
	if len(text) < p.minText {
		return nil, &parsererror.StatementError{
			Kind:    parsererror.KindPDFEmpty,
			Details: parsererror.Details{TextLength: len(text), TextSample: textutils.Sample(text, 120)},
		}
	}

	year := bankdetect.DetectYear(text, p.now())
	bank := bankdetect.DetectBank(text)
	p.logger.Info("Detected statement origin",
		logging.Field{Key: logging.FieldBank, Value: bank},
		logging.Field{Key: "year", Value: year},
	)

	cleaned, parserUsed := p.parseAndClean(bank, text, year)
	if len(cleaned) == 0 {
		return nil, p.classifyEmptyResult(bank, text)
	}

	confidence := validation.Score(cleaned, year)
	p.logger.Info("Scored parse run",
		logging.Field{Key: logging.FieldParser, Value: parserUsed},
		logging.Field{Key: logging.FieldCount, Value: len(cleaned)},
		logging.Field{Key: logging.FieldScore, Value: confidence},
	)
	if confidence < p.threshold {
		return nil, &parsererror.StatementError{
			Kind:    parsererror.KindGenericParserFailed,
			Details: parsererror.Details{Confidence: confidence, BankName: bank},
		}
	}

	for i := range cleaned {
		cleaned[i].ID = p.newID()
		cleaned[i].ParserUsed = parserUsed
		cleaned[i].Confidence = confidence
	}
	p.cat.CategorizeAll(ctx, cleaned)

	return &Result{
		Transactions: cleaned,
		Bank:         bank,
		Year:         year,
		ParserUsed:   parserUsed,
		Confidence:   confidence,
	}, nil
}

// parseAndClean tries the bank-specific parser first and falls back to the
// generic parser when there is no bank match, the parser fails, or nothing
// it produced survives validation. Cleaning happens per strategy: an empty
// run is only declared after both parsers have had their output validated.
// A panicking parser downgrades to the fallback instead of taking the
// process down.
func (p *Pipeline) parseAndClean(bank, text string, year int) ([]models.Transaction, string) {
	if bank != "" {
		if bankParser, err := parser.ForBank(bank); err == nil {
			cleaned := validation.Clean(p.runSafely(bankParser, text, year))
			if len(cleaned) > 0 {
				return cleaned, bankParser.Name()
			}
			p.logger.Warn("Bank parser yielded no valid transactions, trying generic fallback",
				logging.Field{Key: logging.FieldBank, Value: bank},
			)
		}
	}
	generic := parser.Generic()
	return validation.Clean(p.runSafely(generic, text, year)), generic.Name()
}

func (p *Pipeline) runSafely(sp parser.StatementParser, text string, year int) (candidates []models.Transaction) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Statement parser panicked",
				logging.Field{Key: logging.FieldParser, Value: sp.Name()},
				logging.Field{Key: "panic", Value: r},
			)
			candidates = nil
		}
	}()

	candidates, err := sp.Parse(text, year)
	if err != nil {
		p.logger.WithError(err).Warn("Statement parser failed",
			logging.Field{Key: logging.FieldParser, Value: sp.Name()},
		)
		return nil
	}
	return candidates
}

// unknownBankPattern picks up an institution the statement names explicitly
// even though no supported parser exists for it.
var unknownBankPattern = regexp.MustCompile(
	`\b([A-Z][A-Za-z&'’]*(?:\s+[A-Z][A-Za-z&'’]*){0,3}\s+(?:Bank|Building Society))\b`)

// classifyEmptyResult decides which error an empty parse maps to, in fixed
// precedence: a recognised bank that yielded nothing, then an explicitly
// named unsupported institution, then no recognisable bank at all.
func (p *Pipeline) classifyEmptyResult(bank, text string) error {
	if bank != "" {
		return &parsererror.StatementError{
			Kind:    parsererror.KindNoTransactionsFound,
			Details: parsererror.Details{BankName: bank},
		}
	}
	if label := findUnknownBankLabel(text); label != "" {
		return &parsererror.StatementError{
			Kind:    parsererror.KindUnsupportedBank,
			Details: parsererror.Details{BankName: label},
		}
	}
	return &parsererror.StatementError{
		Kind:    parsererror.KindBankNotRecognized,
		Details: parsererror.Details{TextSample: textutils.Sample(text, 120)},
	}
}

func findUnknownBankLabel(text string) string {
	m := unknownBankPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}
