package retail

// Форматы дат и времени, используемые во всех таблицах
const (
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05"
)

// Типы магазинов
var StoreTypes = []string{"Supermarket", "Convenience Store", "Department Store"}

// Product запись синтетического продукта
// ExchangeRate равен nil, если курс недоступен; в этом случае Currency всегда "USD"
type Product struct {
	ProductID      string   `parquet:"product_id" json:"product_id"`
	ProductName    string   `parquet:"product_name" json:"product_name"`
	Description    string   `parquet:"description" json:"description"`
	Category       string   `parquet:"category" json:"category"`
	Subcategory    string   `parquet:"subcategory" json:"subcategory"`
	Brand          string   `parquet:"brand" json:"brand"`
	PriceInUSD     float64  `parquet:"price_in_usd" json:"price_in_usd"`
	InflationRate  float64  `parquet:"inflation_rate" json:"inflation_rate"`
	ExchangeRate   *float64 `parquet:"exchange_rate,optional" json:"exchange_rate"`
	Currency       string   `parquet:"currency" json:"currency"`
	ExpirationDate string   `parquet:"expiration_date" json:"expiration_date"`
}

// Store запись синтетического магазина
type Store struct {
	StoreID               string `parquet:"store_id" json:"store_id"`
	StoreName             string `parquet:"store_name" json:"store_name"`
	Address               string `parquet:"address" json:"address"`
	City                  string `parquet:"city" json:"city"`
	StateOrProvince       string `parquet:"state_or_province" json:"state_or_province"`
	Country               string `parquet:"country" json:"country"`
	PostalCode            string `parquet:"postal_code" json:"postal_code"`
	StoreType             string `parquet:"store_type" json:"store_type"`
	OpeningHours          string `parquet:"opening_hours" json:"opening_hours"`
	Manager               string `parquet:"manager" json:"manager"`
	NumberOfEmployees     int32  `parquet:"number_of_employees" json:"number_of_employees"`
	NonSelfCheckoutLanes  int32  `parquet:"number_of_non_self_checkout_lanes" json:"number_of_non_self_checkout_lanes"`
	SelfCheckoutLanes     int32  `parquet:"number_of_self_checkout_lanes" json:"number_of_self_checkout_lanes"`
}

// Transaction запись одной строки покупки
// TransactionID может повторяться между строками: несколько строк одного чека
// Total всегда пересчитывается из Quantity и Price при генерации
type Transaction struct {
	TransactionID string   `parquet:"transaction_id" json:"transaction_id"`
	Timestamp     string   `parquet:"timestamp" json:"timestamp"`
	ProductID     string   `parquet:"product_id" json:"product_id"`
	ProductName   string   `parquet:"product_name" json:"product_name"`
	Quantity      int32    `parquet:"quantity" json:"quantity"`
	Price         float64  `parquet:"price" json:"price"`
	ExchangeRate  *float64 `parquet:"exchange_rate,optional" json:"exchange_rate"`
	Currency      string   `parquet:"currency" json:"currency"`
	InflationRate float64  `parquet:"inflation_rate" json:"inflation_rate"`
	Total         float64  `parquet:"total" json:"total"`
}
