package service

import (
	"context"
	"strconv"

	"kraken_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// OpenOrders — все открытые ордера аккаунта, нормализованные в плоскую
// структуру (txid, пара, сторона, цена, объём). Фильтрация по паре —
// забота вызывающего.
func (c *Client) OpenOrders(ctx context.Context) (map[string]models.OpenOrder, error) {
	raw, err := c.private(ctx, "/0/private/OpenOrders", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Open map[string]openOrderInfo `json:"open"`
	}
	if err := sonic.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrap(err, "OpenOrders decode")
	}

	orders := make(map[string]models.OpenOrder, len(result.Open))
	for txid, o := range result.Open {
		price, err := strconv.ParseFloat(o.Descr.Price, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "OpenOrders: order %s price %q", txid, o.Descr.Price)
		}
		volume, err := strconv.ParseFloat(o.Vol, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "OpenOrders: order %s vol %q", txid, o.Vol)
		}
		orders[txid] = models.OpenOrder{
			TxID:   txid,
			Pair:   o.Descr.Pair,
			Side:   models.Side(o.Descr.Type),
			Price:  price,
			Volume: volume,
		}
	}
	return orders, nil
}
