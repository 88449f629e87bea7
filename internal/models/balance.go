package models

// Balance — срез баланса на момент тика. Не кэшируется между итерациями:
// каждый тик запрашивается заново с биржи.
type Balance struct {
	// Crypto — базовый актив торгуемой пары (XRP, BTC, ...).
	Crypto float64
	// USD — котируемая валюта (ZUSD/USD у Kraken).
	USD float64
}
