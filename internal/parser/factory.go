package parser

import (
	"fmt"

	"ledgerline/bankstmt-csv/internal/barclaysparser"
	"ledgerline/bankstmt-csv/internal/chaseparser"
	"ledgerline/bankstmt-csv/internal/genericparser"
	"ledgerline/bankstmt-csv/internal/lloydsparser"
	"ledgerline/bankstmt-csv/internal/models"
	"ledgerline/bankstmt-csv/internal/monzoparser"
	"ledgerline/bankstmt-csv/internal/santanderparser"
)

// ForBank returns the parser registered for the given bank name, as produced
// by bankdetect.DetectBank. It acts as a factory for StatementParser
// implementations.
func ForBank(bank string) (StatementParser, error) {
	switch bank {
	case models.BankChase:
		return Func{ParserName: models.ParserChase, ParseFunc: chaseparser.Parse}, nil
	case models.BankMonzo:
		return Func{ParserName: models.ParserMonzo, ParseFunc: monzoparser.Parse}, nil
	case models.BankSantander:
		return Func{ParserName: models.ParserSantander, ParseFunc: santanderparser.Parse}, nil
	case models.BankBarclays:
		return Func{ParserName: models.ParserBarclays, ParseFunc: barclaysparser.Parse}, nil
	case models.BankLloyds:
		return Func{ParserName: models.ParserLloyds, ParseFunc: lloydsparser.Parse}, nil
	default:
		return nil, fmt.Errorf("no parser registered for bank: %s", bank)
	}
}

// Generic returns the fallback parser used when no bank-specific parser
// applies or the bank-specific parser produced nothing.
func Generic() StatementParser {
	return Func{ParserName: models.ParserGeneric, ParseFunc: genericparser.Parse}
}
