package service

import (
	"sync"
	"time"

	"kraken_bot/internal/modules/config"
	healthsvc "kraken_bot/internal/modules/health/service"

	"github.com/gorilla/websocket"
)

// Client — публичный websocket-фид Kraken (канал ticker) для одной пары.
// Чисто наблюдательный: кэш последней цены идёт в логи тика, решения
// всегда считаются по REST-срезу внутри тика.
type Client struct {
	cfg      *config.Config
	state    *healthsvc.State
	wsDialer *websocket.Dialer
	wsURL    string

	mu        sync.RWMutex
	lastPrice float64
	lastAt    time.Time
}

func NewClient(cfg *config.Config, state *healthsvc.State) *Client {
	return &Client{
		cfg:      cfg,
		state:    state,
		wsDialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		wsURL:    wsURL,
	}
}

func (c *Client) setPrice(price float64) {
	c.mu.Lock()
	c.lastPrice = price
	c.lastAt = time.Now()
	c.mu.Unlock()
}

// LastPrice — последняя цена из фида и время её получения.
// ok=false, пока не пришёл ни один тикер.
func (c *Client) LastPrice() (price float64, at time.Time, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastPrice, c.lastAt, !c.lastAt.IsZero()
}
