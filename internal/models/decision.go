package models

// DecisionKind — что делать на текущем тике.
type DecisionKind string

const (
	DecisionWait      DecisionKind = "wait"
	DecisionPlaceBuy  DecisionKind = "place_buy"
	DecisionPlaceSell DecisionKind = "place_sell"
	DecisionSkipSell  DecisionKind = "skip_sell"
)

// Reason уточняет Wait/SkipSell — для логов и health.
type Reason string

const (
	// ReasonSellPending — висит sell-ордер, ждём исполнения.
	ReasonSellPending Reason = "sell_pending"
	// ReasonBuyPending — висит buy-ордер, ждём исполнения.
	ReasonBuyPending Reason = "buy_pending"
	// ReasonStarved — ни ордеров, ни крипты, и USD меньше суммы сделки.
	ReasonStarved Reason = "starved"
	// ReasonVolumeTooSmall — объём продажи ниже минимального размера сделки.
	ReasonVolumeTooSmall Reason = "volume_too_small"
)

// Decision — результат одного прогона машины состояний. Живёт один тик,
// никуда не сохраняется.
type Decision struct {
	Kind   DecisionKind
	Reason Reason

	// Volume/Price заполнены только для place_buy / place_sell.
	Volume float64
	Price  float64
}

func Wait(r Reason) Decision { return Decision{Kind: DecisionWait, Reason: r} }

// SkipSell несёт объём, который не прошёл порог: лог должен показывать
// ровно то, что оценивалось.
func SkipSell(r Reason, volume float64) Decision {
	return Decision{Kind: DecisionSkipSell, Reason: r, Volume: volume}
}

func PlaceBuy(volume, price float64) Decision {
	return Decision{Kind: DecisionPlaceBuy, Volume: volume, Price: price}
}

func PlaceSell(volume, price float64) Decision {
	return Decision{Kind: DecisionPlaceSell, Volume: volume, Price: price}
}
