package service

import (
	"context"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// QueryOrder — статус ордера по txid через private/QueryOrders:
// "open" / "closed" / "canceled" / "expired". В отличие от OpenOrders
// видит и уже исполненные ордера.
func (c *Client) QueryOrder(ctx context.Context, txid string) (string, error) {
	form := url.Values{}
	form.Set("txid", txid)

	raw, err := c.private(ctx, "/0/private/QueryOrders", form)
	if err != nil {
		return "", err
	}

	var result map[string]openOrderInfo
	if err := sonic.Unmarshal(raw, &result); err != nil {
		return "", errors.Wrap(err, "QueryOrder decode")
	}

	o, ok := result[txid]
	if !ok {
		return "", errors.Errorf("QueryOrder: txid %s not in response", txid)
	}
	if o.Status == "" {
		return "", errors.Errorf("QueryOrder: txid %s has empty status", txid)
	}
	return o.Status, nil
}
