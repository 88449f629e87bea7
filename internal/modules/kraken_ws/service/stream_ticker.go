package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"kraken_bot/internal/assets"
	"kraken_bot/pkg/logger"

	"github.com/bytedance/sonic"
)

const wsURL = "wss://ws.kraken.com"

// Start держит подписку на ticker с переподключением. Блокируется до отмены
// контекста, запускать в горутине.
func (c *Client) Start(ctx context.Context) {
	wsName := assets.WSName(c.cfg.Pair)
	retry := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := c.wsDialer.DialContext(ctx, c.wsURL, nil)
		if err != nil {
			retry++
			logger.Warn("[WS] dial failed (attempt %d): %v", retry, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff(retry)):
			}
			continue
		}
		retry = 0
		c.state.SetWSConnected(true)
		logger.Info("[WS] connected, subscribing ticker %s", wsName)

		err = conn.WriteJSON(map[string]any{
			"event":        "subscribe",
			"pair":         []string{wsName},
			"subscription": map[string]string{"name": "ticker"},
		})
		if err != nil {
			logger.Warn("[WS] subscribe failed: %v", err)
			_ = conn.Close()
			c.state.SetWSConnected(false)
			continue
		}

		stopPing := make(chan struct{})
		go func() {
			t := time.NewTicker(15 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-stopPing:
					return
				case <-ctx.Done():
					// ReadMessage блокирует без дедлайна; закрытие
					// соединения — единственный способ его разбудить
					_ = conn.Close()
					return
				case <-t.C:
					_ = conn.WriteJSON(map[string]string{"event": "ping"})
				}
			}
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				close(stopPing)
				_ = conn.Close()
				c.state.SetWSConnected(false)
				logger.Warn("[WS] read failed, reconnecting: %v", err)
				break
			}
			if price, ok := parseTickerFrame(msg); ok {
				c.setPrice(price)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

// parseTickerFrame вытаскивает last price из дата-фрейма канала ticker:
// [channelID, {"c":["<price>","<lot>"], ...}, "ticker", "XRP/USD"].
// Событийные фреймы ({"event":...}) — не данные, пропускаем.
func parseTickerFrame(msg []byte) (float64, bool) {
	if len(msg) == 0 || msg[0] != '[' {
		return 0, false
	}
	var frame []json.RawMessage
	if err := sonic.Unmarshal(msg, &frame); err != nil || len(frame) < 4 {
		return 0, false
	}
	var payload struct {
		C []string `json:"c"`
	}
	if err := sonic.Unmarshal(frame[1], &payload); err != nil || len(payload.C) == 0 {
		return 0, false
	}
	price, err := strconv.ParseFloat(payload.C[0], 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

func backoff(retry int) time.Duration {
	d := time.Duration(300*retry) * time.Millisecond
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	return d
}
