package dataset

import "retailfaker/retail"

// ProductsData строит табличное представление списка продуктов
func ProductsData(products []retail.Product) TableData {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{
			p.ProductID, p.ProductName, p.Description, p.Category, p.Subcategory,
			p.Brand, p.PriceInUSD, p.InflationRate, p.ExchangeRate, p.Currency, p.ExpirationDate,
		})
	}
	return TableData{
		Name: ProductsTable,
		Headers: []string{
			"product_id", "product_name", "description", "category", "subcategory",
			"brand", "price_in_usd", "inflation_rate", "exchange_rate", "currency", "expiration_date",
		},
		Rows: rows,
	}
}

// StoresData строит табличное представление списка магазинов
func StoresData(stores []retail.Store) TableData {
	rows := make([][]any, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, []any{
			s.StoreID, s.StoreName, s.Address, s.City, s.StateOrProvince, s.Country,
			s.PostalCode, s.StoreType, s.OpeningHours, s.Manager,
			s.NumberOfEmployees, s.NonSelfCheckoutLanes, s.SelfCheckoutLanes,
		})
	}
	return TableData{
		Name: StoresTable,
		Headers: []string{
			"store_id", "store_name", "address", "city", "state_or_province", "country",
			"postal_code", "store_type", "opening_hours", "manager",
			"number_of_employees", "number_of_non_self_checkout_lanes", "number_of_self_checkout_lanes",
		},
		Rows: rows,
	}
}

// TransactionsData строит табличное представление списка транзакций
func TransactionsData(transactions []retail.Transaction) TableData {
	rows := make([][]any, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []any{
			t.TransactionID, t.Timestamp, t.ProductID, t.ProductName, t.Quantity,
			t.Price, t.ExchangeRate, t.Currency, t.InflationRate, t.Total,
		})
	}
	return TableData{
		Name: TransactionsTable,
		Headers: []string{
			"transaction_id", "timestamp", "product_id", "product_name", "quantity",
			"price", "exchange_rate", "currency", "inflation_rate", "total",
		},
		Rows: rows,
	}
}
