package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Ticker — текущая цена пары (last trade) через public/Ticker.
// Ключ результата у Kraken гуляет между нотациями (XRPUSD / XXRPZUSD / ...),
// поэтому перебираем варианты, а не верим символу из конфига.
func (c *Client) Ticker(ctx context.Context, pair string) (float64, error) {
	q := url.Values{}
	q.Set("pair", pair)

	raw, err := c.public(ctx, "/0/public/Ticker", q)
	if err != nil {
		return 0, err
	}

	var result map[string]tickerInfo
	if err := sonic.Unmarshal(raw, &result); err != nil {
		return 0, errors.Wrap(err, "Ticker decode")
	}

	key, ok := resolveTickerKey(result, pair)
	if !ok {
		return 0, errors.Wrapf(ErrPriceUnavailable, "pair %s not in ticker response", pair)
	}

	info := result[key]
	if len(info.C) == 0 {
		return 0, errors.Wrapf(ErrPriceUnavailable, "pair %s: empty last-trade field", pair)
	}
	price, err := strconv.ParseFloat(info.C[0], 64)
	if err != nil || price <= 0 {
		return 0, errors.Wrapf(ErrPriceUnavailable, "pair %s: bad price %q", pair, info.C[0])
	}
	return price, nil
}

func resolveTickerKey(result map[string]tickerInfo, pair string) (string, bool) {
	up := strings.ToUpper(pair)

	// легаси-частный случай
	if up == "XBTUSD" {
		if _, ok := result["XXBTZUSD"]; ok {
			return "XXBTZUSD", true
		}
	}

	candidates := []string{
		up,
		"X" + up,
		strings.Replace(up, "USD", "ZUSD", 1),
		"X" + strings.Replace(up, "USD", "ZUSD", 1),
	}
	for _, k := range candidates {
		if _, ok := result[k]; ok {
			return k, true
		}
	}

	// запрашивали одну пару — если ключ ровно один, это она и есть
	if len(result) == 1 {
		for k := range result {
			return k, true
		}
	}
	return "", false
}
