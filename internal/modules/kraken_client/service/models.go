package service

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrPriceUnavailable — тикер не смог разрезолвить пару в ответе биржи.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrInsufficientFunds — EOrder:Insufficient funds. Для покупки это
	// ожидаемая гонка (баланс мог измениться между запросом и выставлением),
	// трейдер деградирует в ожидание, а не падает.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// OrderRejectedError — биржа отклонила выставление ордера (класс EOrder,
// кроме нехватки средств).
type OrderRejectedError struct {
	Reason string
}

func (e *OrderRejectedError) Error() string {
	return "order rejected: " + e.Reason
}

// apiError маппит массив error из обёртки ответа в типизированные ошибки.
func apiError(path string, apiErrors []string) error {
	joined := strings.Join(apiErrors, "; ")
	for _, e := range apiErrors {
		if strings.Contains(e, "EOrder:Insufficient funds") {
			return errors.Wrapf(ErrInsufficientFunds, "%s", path)
		}
	}
	for _, e := range apiErrors {
		if strings.HasPrefix(e, "EOrder:") {
			return &OrderRejectedError{Reason: joined}
		}
	}
	return errors.Errorf("%s: kraken error: %s", path, joined)
}

// tickerInfo — нужный нам кусок public/Ticker: c = [last price, lot volume].
type tickerInfo struct {
	C []string `json:"c"`
}

// openOrderInfo — сырой открытый ордер из private/OpenOrders.
type openOrderInfo struct {
	Status string `json:"status"`
	Vol    string `json:"vol"`
	Descr  struct {
		Pair  string `json:"pair"`
		Type  string `json:"type"`
		Price string `json:"price"`
	} `json:"descr"`
}

// addOrderResult — ответ private/AddOrder.
type addOrderResult struct {
	TxID  []string `json:"txid"`
	Descr struct {
		Order string `json:"order"`
	} `json:"descr"`
}
