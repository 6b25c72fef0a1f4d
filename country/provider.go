package country

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"retailfaker/apperrors"
	"retailfaker/logging"

	"context"
)

// ReferenceCountry страна по умолчанию при сбое внешних справочников
const ReferenceCountry = "United States"

// Context валютный контекст страны для одного запуска генерации
// Если ExchangeRate равен nil, все денежные значения выражаются в USD
// и CurrencyCode всегда "USD"
type Context struct {
	CurrencyCode  string   `json:"currency_code"`
	InflationRate float64  `json:"inflation_rate"`
	ExchangeRate  *float64 `json:"exchange_rate"`
}

// ProviderConfig конфигурация провайдера справочных данных
type ProviderConfig struct {
	CountriesURL    string        `json:"countries_url"`
	InflationURL    string        `json:"inflation_url"`
	ExchangeRateURL string        `json:"exchange_rate_url"`
	SubdivisionsURL string        `json:"subdivisions_url"`
	FallbackCountry string        `json:"fallback_country"`
	Timeout         time.Duration `json:"timeout"`
	RateLimit       rate.Limit    `json:"rate_limit"`
	Cache           *CacheConfig  `json:"cache"`
}

// Provider выполняет внешние справочные запросы: код страны, валюта,
// инфляция, курс к доллару, список регионов
// Это обертка "лучших усилий": единственный fallback на страну по умолчанию,
// без повторных попыток и backoff
type Provider struct {
	config     ProviderConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
}

// NewProvider создает новый провайдер справочных данных
func NewProvider(config ProviderConfig) *Provider {
	if config.CountriesURL == "" {
		config.CountriesURL = "https://restcountries.com"
	}
	if config.InflationURL == "" {
		config.InflationURL = "https://api.worldbank.org"
	}
	if config.ExchangeRateURL == "" {
		config.ExchangeRateURL = "https://open.er-api.com"
	}
	if config.SubdivisionsURL == "" {
		config.SubdivisionsURL = "https://countriesnow.space"
	}
	if config.FallbackCountry == "" {
		config.FallbackCountry = ReferenceCountry
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(500 * time.Millisecond) // 2 запроса в секунду
	}

	return &Provider{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(config.RateLimit, 1),
		cache:   NewCache(config.Cache),
	}
}

// Resolve разрешает страну в валютный контекст
// Выполняет три независимых запроса: код валюты, инфляция за последние два
// года, курс к доллару. Если любой из них не удался, вся операция повторяется
// для страны по умолчанию; если и она не разрешается, ошибка фатальна —
// частичный контекст не возвращается никогда
func (p *Provider) Resolve(ctx context.Context, countryName string) (*Context, error) {
	resolved, err := p.resolveOnce(ctx, countryName)
	if err == nil {
		return resolved, nil
	}

	if countryName == p.config.FallbackCountry {
		return nil, apperrors.NewLookupError(
			fmt.Sprintf("failed to resolve reference country %q", countryName), err)
	}

	// Диагностика оператору и единственный fallback
	logging.LogWarn("Country lookup failed, falling back to reference country",
		"country", countryName,
		"fallback", p.config.FallbackCountry,
		"error", err.Error(),
	)

	resolved, fallbackErr := p.resolveOnce(ctx, p.config.FallbackCountry)
	if fallbackErr != nil {
		return nil, apperrors.NewLookupError(
			fmt.Sprintf("failed to resolve %q and reference country %q", countryName, p.config.FallbackCountry),
			fmt.Errorf("%v; fallback: %w", err, fallbackErr))
	}
	return resolved, nil
}

// resolveOnce выполняет все три запроса для одной страны
func (p *Provider) resolveOnce(ctx context.Context, countryName string) (*Context, error) {
	code, currency, err := p.lookupCountry(ctx, countryName)
	if err != nil {
		return nil, fmt.Errorf("currency lookup: %w", err)
	}

	inflation, err := p.lookupInflation(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("inflation lookup: %w", err)
	}

	exchangeRate, err := p.lookupExchangeRate(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("exchange rate lookup: %w", err)
	}

	resolved := &Context{
		CurrencyCode:  currency,
		InflationRate: inflation,
		ExchangeRate:  exchangeRate,
	}

	// Инвариант: без курса все денежные значения остаются в долларах
	if exchangeRate == nil {
		logging.LogWarn("Exchange rate unavailable, monetary output stays in USD",
			"country", countryName,
			"currency", currency,
		)
		resolved.CurrencyCode = "USD"
	}

	return resolved, nil
}

// Subdivisions возвращает список регионов страны
// В отличие от Resolve деградация мягкая: при любой ошибке возвращается
// одноэлементный список с именем самой страны, генерация продолжается
func (p *Provider) Subdivisions(ctx context.Context, countryName string) []string {
	subdivisions, err := p.lookupSubdivisions(ctx, countryName)
	if err != nil || len(subdivisions) == 0 {
		if err != nil {
			logging.LogWarn("Subdivision lookup failed, using country name",
				"country", countryName,
				"error", err.Error(),
			)
		}
		return []string{countryName}
	}
	return subdivisions
}
