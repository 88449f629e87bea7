package service

import (
	"context"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// CancelOrder снимает ордер по txid. false без ошибки — биржа ответила,
// но ничего не сняла (например, ордер уже исполнился).
func (c *Client) CancelOrder(ctx context.Context, txid string) (bool, error) {
	form := url.Values{}
	form.Set("txid", txid)

	raw, err := c.private(ctx, "/0/private/CancelOrder", form)
	if err != nil {
		return false, err
	}

	var r struct {
		Count int `json:"count"`
	}
	if err := sonic.Unmarshal(raw, &r); err != nil {
		return false, errors.Wrap(err, "CancelOrder decode")
	}
	return r.Count > 0, nil
}
