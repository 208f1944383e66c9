// Package ofx reads OFX/QFX bank and credit card statements into exodo
// transactions.
package ofx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/exodo/internal/model"
)

// ErrMissingTarget is returned when no account or card is given to receive
// the imported transactions.
var ErrMissingTarget = errors.New("an account or card is required")

const interestCategory = "cat_invest"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Options tells the parser where imported transactions belong.
type Options struct {
	// AccountID receives bank statement entries, and card entries when
	// CardID is empty.
	AccountID string
	// CardID receives credit card statement entries as credit purchases.
	CardID            string
	ExpenseCategoryID string
	IncomeCategoryID  string
}

func (o Options) validate() error {
	if o.AccountID == "" && o.CardID == "" {
		return ErrMissingTarget
	}
	if o.ExpenseCategoryID == "" || o.IncomeCategoryID == "" {
		return errors.New("expense and income categories are required")
	}
	return nil
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	now func() time.Time
}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML exports sometimes drop the closing bracket of a bare opening tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file into settled transactions. Posted
// entries are already cleared, so debits become paid expenses and credits
// received incomes.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader, opts Options) ([]model.Transaction, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			acct := string(stmt.BankAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if tx, ok := p.convertTransaction(ofxTx, acct, false, opts); ok {
					transactions = append(transactions, tx)
				}
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			acct := string(stmt.CCAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if tx, ok := p.convertTransaction(ofxTx, acct, true, opts); ok {
					transactions = append(transactions, tx)
				}
			}
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// TransactionID derives a stable transaction ID from the statement account
// and the institution's FITID, so re-importing a file is detectable.
func TransactionID(statementAccount, fitID string) string {
	return fmt.Sprintf("ofx_%s_%s", statementAccount, fitID)
}

// convertTransaction converts an OFX transaction to our model. Zero amount
// entries are dropped.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, statementAccount string, card bool, opts Options) (model.Transaction, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount == 0 {
		slog.Debug("Skipping zero amount OFX entry", "fitid", ofxTx.FiTID)
		return model.Transaction{}, false
	}

	tx := model.Transaction{
		Date:        model.DateOnly(ofxTx.DtPosted.Time),
		CreatedAt:   p.now(),
		ID:          TransactionID(statementAccount, string(ofxTx.FiTID)),
		Description: p.extractMerchantName(ofxTx),
		Direction:   model.DirectionExpense,
		CategoryID:  opts.ExpenseCategoryID,
		Amount:      amount,
	}
	if amount > 0 {
		tx.Direction = model.DirectionIncome
		tx.CategoryID = opts.IncomeCategoryID
	} else {
		tx.Amount = -amount
	}
	tx.Status = model.SettledStatus(tx.Direction)
	if tx.Description == "" {
		tx.Description = ofxTx.TrnType.String()
	}

	if ofxTx.TrnType == ofxgo.TrnTypeInt {
		tx.CategoryID = interestCategory
	}
	if ofxTx.CheckNum != "" {
		tx.Observation = "check " + string(ofxTx.CheckNum)
	}
	if memo := strings.TrimSpace(string(ofxTx.Memo)); memo != "" && memo != tx.Description {
		tx.Observation = strings.TrimSpace(tx.Observation + " " + memo)
	}

	if card && opts.CardID != "" {
		tx.CardID = opts.CardID
		tx.PaymentMethod = model.PaymentCredit
		return tx, true
	}

	tx.AccountID = opts.AccountID
	tx.PaymentMethod = paymentMethod(ofxTx, tx.Direction)
	return tx, true
}

// paymentMethod maps an OFX transaction type onto the closest account
// payment method.
func paymentMethod(ofxTx ofxgo.Transaction, dir model.Direction) model.PaymentMethod {
	switch ofxTx.TrnType {
	case ofxgo.TrnTypeATM, ofxgo.TrnTypeCash:
		return model.PaymentCash
	case ofxgo.TrnTypeXfer, ofxgo.TrnTypeDirectDep:
		return model.PaymentTransfer
	case ofxgo.TrnTypeDirectDebit, ofxgo.TrnTypeRepeatPmt, ofxgo.TrnTypePayment:
		return model.PaymentBoleto
	}
	if dir == model.DirectionIncome {
		return model.PaymentTransfer
	}
	return model.PaymentDebit
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)

	// MEMO often carries the merchant when NAME is generic.
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
		"COMPRA CARTAO ",
		"COMPRA NO DEBITO ",
		"PIX ENVIADO ",
		"PIX RECEBIDO ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "DD/MM " date stamp.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
		"PIX",
		"COMPRA",
		"PAGAMENTO",
	}

	upperName := strings.ToUpper(strings.TrimSpace(name))
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// Accounts extracts the distinct statement account numbers, sorted.
func (p *Parser) Accounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]bool)
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accountMap[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accountMap[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	accounts := make([]string, 0, len(accountMap))
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}
