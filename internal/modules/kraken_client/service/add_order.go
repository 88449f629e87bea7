package service

import (
	"context"
	"net/url"

	"kraken_bot/internal/helper"
	"kraken_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// AddOrder выставляет лимитный ордер и возвращает txid.
// Округление объёма под шаг лота — забота биржи; здесь только валидация
// входа. Минимальный размер сделки проверяется ещё в машине состояний.
func (c *Client) AddOrder(
	ctx context.Context,
	pair string,
	side models.Side,
	volume float64,
	price float64,
) (string, error) {
	if side != models.SideBuy && side != models.SideSell {
		return "", errors.Errorf("AddOrder: unsupported side %q", side)
	}
	if volume <= 0 {
		return "", errors.New("AddOrder: volume <= 0")
	}
	if price <= 0 {
		return "", errors.New("AddOrder: price <= 0")
	}

	form := url.Values{}
	form.Set("pair", pair)
	form.Set("type", string(side))
	form.Set("ordertype", "limit")
	form.Set("volume", helper.FormatVolume(volume))
	form.Set("price", helper.FormatPrice(price))

	raw, err := c.private(ctx, "/0/private/AddOrder", form)
	if err != nil {
		return "", err
	}

	var r addOrderResult
	if err := sonic.Unmarshal(raw, &r); err != nil {
		return "", errors.Wrapf(err, "AddOrder decode; body=%s", string(raw))
	}
	if len(r.TxID) == 0 || r.TxID[0] == "" {
		return "", errors.Errorf("AddOrder: empty txid; body=%s", string(raw))
	}
	return r.TxID[0], nil
}
