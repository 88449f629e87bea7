package models

// Side — сторона лимитного ордера, как её отдаёт Kraken в descr.type.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OpenOrder — открытый ордер, нормализованный из ответа OpenOrders.
type OpenOrder struct {
	TxID   string
	Pair   string
	Side   Side
	Price  float64
	Volume float64
}

// Total — стоимость ордера в котируемой валюте.
func (o OpenOrder) Total() float64 { return o.Price * o.Volume }

// OpenOrderPair — открытые ордера бота по торгуемой паре.
// В штатном режиме занят максимум один слот: цикл строго чередует
// sell-pending -> buy-pending -> ни одного. Если заняты оба (ручное
// вмешательство), приоритет в решениях у sell.
type OpenOrderPair struct {
	Sell *OpenOrder
	Buy  *OpenOrder
}

func (p OpenOrderPair) Empty() bool { return p.Sell == nil && p.Buy == nil }
