package service

import (
	"context"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Balance — балансы аккаунта по всем активам. Числа Kraken отдаёт строками.
func (c *Client) Balance(ctx context.Context) (map[string]float64, error) {
	raw, err := c.private(ctx, "/0/private/Balance", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]string
	if err := sonic.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrap(err, "Balance decode")
	}

	balances := make(map[string]float64, len(result))
	for asset, amount := range result {
		v, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Balance: asset %s amount %q", asset, amount)
		}
		balances[asset] = v
	}
	return balances, nil
}
