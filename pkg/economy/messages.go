package economy

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/shopspring/decimal"
)

const (
	msgUnknownCurrency   = "unknown currency %q"
	msgInvalidCurrency   = "invalid currency %q: %s"
	msgInsufficientFunds = "insufficient funds: balance %s is less than %s"
	msgMissingField      = "transaction field %s must not be null"
	msgInvalidType       = "unknown transaction type %q"
	msgNegativeAmount    = "amount must not be negative: %s"
	msgParseFailure      = "cannot parse %q as an amount"
	msgAccountNotFound   = "account %s not found"
	msgAccountExists     = "account %s already exists"
	msgDuplicateCurrency = "currency %q is already registered"
	msgPrimaryTaken      = "currency %q is already the primary currency"
	msgPrimaryInUse      = "currency %q is the primary currency and cannot be unregistered"
	msgNoCurrency        = "no currency is registered"
	msgTimeout           = "economy operation timed out"
	msgCanceled          = "economy operation was canceled"
	msgStorage           = "economy storage failure"
)

var messageLanguages = []language.Tag{language.English, language.German, language.Spanish}

var messageMatcher = language.NewMatcher(messageLanguages)

var messageCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	entries := map[string][2]string{
		msgUnknownCurrency:   {"unbekannte Währung %q", "moneda desconocida %q"},
		msgInvalidCurrency:   {"ungültige Währung %q: %s", "moneda no válida %q: %s"},
		msgInsufficientFunds: {"nicht genügend Guthaben: Kontostand %s ist kleiner als %s", "fondos insuficientes: el saldo %s es menor que %s"},
		msgMissingField:      {"Transaktionsfeld %s darf nicht leer sein", "el campo de transacción %s no puede ser nulo"},
		msgInvalidType:       {"unbekannter Transaktionstyp %q", "tipo de transacción desconocido %q"},
		msgNegativeAmount:    {"Betrag darf nicht negativ sein: %s", "el importe no puede ser negativo: %s"},
		msgParseFailure:      {"%q kann nicht als Betrag gelesen werden", "no se puede interpretar %q como importe"},
		msgAccountNotFound:   {"Konto %s nicht gefunden", "cuenta %s no encontrada"},
		msgAccountExists:     {"Konto %s existiert bereits", "la cuenta %s ya existe"},
		msgDuplicateCurrency: {"Währung %q ist bereits registriert", "la moneda %q ya está registrada"},
		msgPrimaryTaken:      {"Währung %q ist bereits die Hauptwährung", "la moneda %q ya es la moneda principal"},
		msgPrimaryInUse:      {"Währung %q ist die Hauptwährung und kann nicht entfernt werden", "la moneda %q es la moneda principal y no se puede eliminar"},
		msgNoCurrency:        {"keine Währung registriert", "no hay ninguna moneda registrada"},
		msgTimeout:           {"Zeitüberschreitung bei Wirtschaftsoperation", "la operación económica agotó el tiempo de espera"},
		msgCanceled:          {"Wirtschaftsoperation wurde abgebrochen", "la operación económica fue cancelada"},
		msgStorage:           {"Speicherfehler in der Wirtschaft", "error de almacenamiento de la economía"},
	}
	for key, tr := range entries {
		mustSet(b, language.English, key, key)
		mustSet(b, language.German, key, tr[0])
		mustSet(b, language.Spanish, key, tr[1])
	}
	return b
}

func mustSet(b *catalog.Builder, tag language.Tag, key, msg string) {
	if err := b.SetString(tag, key, msg); err != nil {
		panic(err)
	}
}

// catalogMessage resolves key against the built-in catalog. Locales that do
// not match any catalog language report false.
func catalogMessage(key string, args ...any) MessageFunc {
	return func(locale language.Tag) (string, bool) {
		if locale == language.Und {
			locale = language.English
		}
		_, idx, conf := messageMatcher.Match(locale)
		if conf == language.No {
			return "", false
		}
		p := message.NewPrinter(messageLanguages[idx], message.Catalog(messageCatalog))
		return p.Sprintf(key, args...), true
	}
}

func builtin(kind Kind, key string, args ...any) *Error {
	return MustLocalizedError(kind, catalogMessage(key, args...))
}

func UnknownCurrencyError(currencyID string) *Error {
	return builtin(KindUnknownCurrency, msgUnknownCurrency, currencyID)
}

func InvalidCurrencyError(currencyID, detail string) *Error {
	return builtin(KindInvalidCurrency, msgInvalidCurrency, currencyID, detail)
}

func InsufficientFundsError(balance, required decimal.Decimal) *Error {
	return builtin(KindInsufficientFunds, msgInsufficientFunds, balance.String(), required.String())
}

// MissingFieldError reports a transaction built without a required field.
func MissingFieldError(field string) *Error {
	return builtin(KindInvalidTransaction, msgMissingField, field)
}

func InvalidTransactionTypeError(t TransactionType) *Error {
	return builtin(KindInvalidTransaction, msgInvalidType, string(t))
}

func NegativeAmountError(amount decimal.Decimal) *Error {
	return builtin(KindInvalidTransaction, msgNegativeAmount, amount.String())
}

func ParseError(formatted string) *Error {
	return builtin(KindParseFailure, msgParseFailure, formatted)
}

func AccountNotFoundError(id string) *Error {
	return builtin(KindAccountNotFound, msgAccountNotFound, id)
}

func AccountExistsError(id string) *Error {
	return builtin(KindAccountExists, msgAccountExists, id)
}

func DuplicateCurrencyError(currencyID string) *Error {
	return builtin(KindDuplicateCurrency, msgDuplicateCurrency, currencyID)
}

// PrimaryTakenError reports a second currency declaring itself primary.
func PrimaryTakenError(primaryID string) *Error {
	return builtin(KindPrimaryCurrency, msgPrimaryTaken, primaryID)
}

// PrimaryInUseError reports an attempt to unregister the primary currency.
func PrimaryInUseError(currencyID string) *Error {
	return builtin(KindPrimaryCurrency, msgPrimaryInUse, currencyID)
}

func NoCurrencyError() *Error {
	return builtin(KindUnknownCurrency, msgNoCurrency)
}

func TimeoutError(cause error) *Error {
	return builtin(KindTimeout, msgTimeout).WithCause(cause)
}

func CanceledError(cause error) *Error {
	return builtin(KindCanceled, msgCanceled).WithCause(cause)
}

// StorageError wraps a backend failure. The cause is reachable through
// errors.Unwrap but never shown in the message.
func StorageError(cause error) *Error {
	return builtin(KindStorage, msgStorage).WithCause(cause)
}
