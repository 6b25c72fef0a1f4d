package country

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// lookupCountry возвращает двухбуквенный код страны и код ее валюты
func (p *Provider) lookupCountry(ctx context.Context, countryName string) (code, currency string, err error) {
	cacheKey := "country:" + countryName
	if cached, ok := p.cache.Get(cacheKey); ok {
		info := cached.(countryInfo)
		return info.Code, info.Currency, nil
	}

	requestURL := fmt.Sprintf("%s/v3.1/name/%s?fields=cca2,currencies",
		p.config.CountriesURL, url.PathEscape(countryName))

	var payload []struct {
		CCA2       string `json:"cca2"`
		Currencies map[string]struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"currencies"`
	}
	if err := p.getJSON(ctx, requestURL, &payload); err != nil {
		return "", "", err
	}
	if len(payload) == 0 {
		return "", "", fmt.Errorf("country %q not found", countryName)
	}

	match := payload[0]
	if match.CCA2 == "" {
		return "", "", fmt.Errorf("country %q has no ISO code", countryName)
	}
	if len(match.Currencies) == 0 {
		return "", "", fmt.Errorf("country %q has no currency", countryName)
	}

	// У некоторых стран несколько валют; берем первую в алфавитном порядке,
	// чтобы результат не зависел от порядка обхода карты
	codes := make([]string, 0, len(match.Currencies))
	for currencyCode := range match.Currencies {
		codes = append(codes, currencyCode)
	}
	sort.Strings(codes)

	info := countryInfo{Code: match.CCA2, Currency: codes[0]}
	p.cache.Set(cacheKey, info)
	return info.Code, info.Currency, nil
}

// countryInfo кэшируемый результат lookupCountry
type countryInfo struct {
	Code     string
	Currency string
}

// lookupInflation возвращает инфляцию страны как долю (0.03 = 3%)
// Запрашивается CPI за окно в последние два года, берется самое свежее
// ненулевое значение
func (p *Provider) lookupInflation(ctx context.Context, countryCode string) (float64, error) {
	cacheKey := "inflation:" + countryCode
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.(float64), nil
	}

	endYear := time.Now().Year()
	startYear := endYear - 2
	requestURL := fmt.Sprintf("%s/v2/country/%s/indicator/FP.CPI.TOTL.ZG?format=json&date=%d:%d",
		p.config.InflationURL, url.PathEscape(countryCode), startYear, endYear)

	// Ответ — массив из двух элементов: метаданные и строки индикатора
	var payload []json.RawMessage
	if err := p.getJSON(ctx, requestURL, &payload); err != nil {
		return 0, err
	}
	if len(payload) < 2 {
		return 0, fmt.Errorf("inflation data not available for %q", countryCode)
	}

	var rows []struct {
		Date  string   `json:"date"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(payload[1], &rows); err != nil {
		return 0, fmt.Errorf("failed to parse inflation rows: %w", err)
	}

	for _, row := range rows {
		if row.Value != nil {
			// Процент -> доля
			inflation := *row.Value / 100.0
			p.cache.Set(cacheKey, inflation)
			return inflation, nil
		}
	}

	return 0, fmt.Errorf("no inflation value in the last two years for %q", countryCode)
}

// lookupExchangeRate возвращает курс локальной валюты к доллару
// Отсутствие валюты в таблице курсов не ошибка: возвращается nil,
// вызывающий переводит весь денежный вывод в USD
func (p *Provider) lookupExchangeRate(ctx context.Context, currencyCode string) (*float64, error) {
	cacheKey := "rates:USD"

	var rates map[string]float64
	if cached, ok := p.cache.Get(cacheKey); ok {
		rates = cached.(map[string]float64)
	} else {
		requestURL := fmt.Sprintf("%s/v6/latest/USD", p.config.ExchangeRateURL)

		var payload struct {
			Result string             `json:"result"`
			Rates  map[string]float64 `json:"rates"`
		}
		if err := p.getJSON(ctx, requestURL, &payload); err != nil {
			return nil, err
		}
		if payload.Result != "success" {
			return nil, fmt.Errorf("exchange rate provider returned result %q", payload.Result)
		}

		rates = payload.Rates
		p.cache.Set(cacheKey, rates)
	}

	exchangeRate, ok := rates[currencyCode]
	if !ok {
		return nil, nil
	}
	return &exchangeRate, nil
}

// lookupSubdivisions возвращает список регионов страны
func (p *Provider) lookupSubdivisions(ctx context.Context, countryName string) ([]string, error) {
	cacheKey := "subdivisions:" + countryName
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.([]string), nil
	}

	requestURL := fmt.Sprintf("%s/api/v0.1/countries/states", p.config.SubdivisionsURL)
	body, err := json.Marshal(map[string]string{"country": countryName})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var payload struct {
		Error bool `json:"error"`
		Data  struct {
			Name   string `json:"name"`
			States []struct {
				Name string `json:"name"`
			} `json:"states"`
		} `json:"data"`
	}
	if err := p.postJSON(ctx, requestURL, body, &payload); err != nil {
		return nil, err
	}
	if payload.Error {
		return nil, fmt.Errorf("subdivision provider returned an error for %q", countryName)
	}

	subdivisions := make([]string, 0, len(payload.Data.States))
	for _, state := range payload.Data.States {
		subdivisions = append(subdivisions, state.Name)
	}
	sort.Strings(subdivisions)

	p.cache.Set(cacheKey, subdivisions)
	return subdivisions, nil
}

// getJSON выполняет GET запрос с учетом лимита скорости и декодирует JSON ответ
func (p *Provider) getJSON(ctx context.Context, requestURL string, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return p.do(req, out)
}

// postJSON выполняет POST запрос с JSON телом
func (p *Provider) postJSON(ctx context.Context, requestURL string, body []byte, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return p.do(req, out)
}

func (p *Provider) do(req *http.Request, out any) error {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
