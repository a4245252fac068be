package mapping

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	"github.com/Pyrocube-Network/EconomyApi/internal/dto"
	"github.com/Pyrocube-Network/EconomyApi/internal/models"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	names := make(map[string]models.CurrencyName, len(d.DisplayNames))
	for tag, n := range d.DisplayNames {
		names[tag] = models.CurrencyName{Singular: n.Singular, Plural: n.Plural}
	}
	return models.Currency{
		CurrencyID:      d.CurrencyID,
		Symbol:          d.Symbol,
		Precision:       d.Precision,
		ConversionRate:  d.ConversionRate,
		IsPrimary:       d.IsPrimary,
		StartingBalance: d.StartingBalance,
		DisplayNames:    names,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	names := make(map[string]domain.DisplayName, len(m.DisplayNames))
	for tag, n := range m.DisplayNames {
		names[tag] = domain.DisplayName{Singular: n.Singular, Plural: n.Plural}
	}
	return domain.Currency{
		CurrencyID:      m.CurrencyID,
		Symbol:          m.Symbol,
		Precision:       m.Precision,
		ConversionRate:  m.ConversionRate,
		IsPrimary:       m.IsPrimary,
		StartingBalance: m.StartingBalance,
		DisplayNames:    names,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// FromEconomyCurrency captures the persistable definition of c. Currencies
// that are not StandardCurrency keep their English names only, and their
// starting balance is stored as zero unless they expose a default.
func FromEconomyCurrency(c economy.Currency, now time.Time) domain.Currency {
	d := domain.Currency{
		CurrencyID:     c.Identifier(),
		Symbol:         c.Symbol(),
		Precision:      c.Precision(),
		ConversionRate: c.ConversionRate(),
		IsPrimary:      c.IsPrimary(),
		DisplayNames:   map[string]domain.DisplayName{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	locales := []language.Tag{language.English}
	if sc, ok := c.(*economy.StandardCurrency); ok {
		locales = sc.Locales()
	}
	for _, tag := range locales {
		d.DisplayNames[tag.String()] = domain.DisplayName{
			Singular: c.DisplayName(one, tag),
			Plural:   c.DisplayName(two, tag),
		}
	}

	if sb, ok := c.(interface{ DefaultStartingBalance() decimal.Decimal }); ok {
		d.StartingBalance = sb.DefaultStartingBalance()
	}
	return d
}

// ToEconomyCurrency rebuilds a StandardCurrency from its stored definition.
func ToEconomyCurrency(d domain.Currency) (*economy.StandardCurrency, error) {
	opts := []economy.CurrencyOption{economy.WithStartingBalance(d.StartingBalance)}
	if d.IsPrimary {
		opts = append(opts, economy.AsPrimary())
	}

	tags := make([]string, 0, len(d.DisplayNames))
	for tag := range d.DisplayNames {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, raw := range tags {
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: currency %s has invalid locale %q", apperrors.ErrValidation, d.CurrencyID, raw)
		}
		n := d.DisplayNames[raw]
		opts = append(opts, economy.WithNames(tag, n.Singular, n.Plural))
	}

	c, err := economy.NewStandardCurrency(d.CurrencyID, d.Symbol, d.Precision, d.ConversionRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return c, nil
}

// FromCurrencyDefinition converts a validated configuration entry into a
// domain Currency.
func FromCurrencyDefinition(def dto.CurrencyDefinition, now time.Time) (domain.Currency, error) {
	rate, err := decimal.NewFromString(def.ConversionRate)
	if err != nil {
		return domain.Currency{}, fmt.Errorf("%w: currency %s conversion rate %q", apperrors.ErrValidation, def.ID, def.ConversionRate)
	}
	starting := decimal.Zero
	if def.StartingBalance != "" {
		starting, err = decimal.NewFromString(def.StartingBalance)
		if err != nil {
			return domain.Currency{}, fmt.Errorf("%w: currency %s starting balance %q", apperrors.ErrValidation, def.ID, def.StartingBalance)
		}
	}

	names := make(map[string]domain.DisplayName, len(def.Names))
	for _, n := range def.Names {
		names[n.Locale] = domain.DisplayName{Singular: n.Singular, Plural: n.Plural}
	}

	return domain.Currency{
		CurrencyID:      def.ID,
		Symbol:          def.Symbol,
		Precision:       def.Precision,
		ConversionRate:  rate,
		IsPrimary:       def.Primary,
		StartingBalance: starting,
		DisplayNames:    names,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}, nil
}
