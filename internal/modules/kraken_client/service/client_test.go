package service

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"kraken_bot/internal/modules/config"
	"kraken_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := &config.Config{
		APIKey:    "test-key",
		APISecret: base64.StdEncoding.EncodeToString([]byte("test-secret")),
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	c.baseURL = baseURL
	return c
}

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return testClient(t, srv.URL)
}

// Официальный пример подписи из документации Kraken.
func TestSign(t *testing.T) {
	cfg := &config.Config{
		APIKey:    "key",
		APISecret: "kQH5HW/8p1uGOVjbgWA7FunAmGO8lsSUXNsu3eow76sz84Q18fWxnyRzBHCd3pd5nE9qa99HAZtuZuj6F1huXg==",
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)

	sig := c.sign(
		"/0/private/AddOrder",
		"1616492376594",
		"nonce=1616492376594&ordertype=limit&pair=XBTUSD&price=37500&type=buy&volume=1.25",
	)
	assert.Equal(t, "4/dpxb3iT4tp/ZCVEwSnEsLxx0bqyhLpdfOpc6fn7OR8+UClSV5n9E6aSS8MPtnRfp32bAb0nmbRn6H8ndwLUQ==", sig)
}

func TestTickerVariantKeys(t *testing.T) {
	cases := []struct {
		name string
		pair string
		key  string
	}{
		{"exact", "XRPUSD", "XRPUSD"},
		{"zusd", "XRPUSD", "XRPZUSD"},
		{"x prefix with zusd", "XRPUSD", "XXRPZUSD"},
		{"xbt legacy", "XBTUSD", "XXBTZUSD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := serve(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/0/public/Ticker", r.URL.Path)
				_, _ = w.Write([]byte(`{"error":[],"result":{"` + tc.key + `":{"c":["0.5234","1000"]}}}`))
			})
			price, err := c.Ticker(context.Background(), tc.pair)
			require.NoError(t, err)
			assert.InDelta(t, 0.5234, price, 1e-9)
		})
	}
}

func TestTickerSingleKeyFallback(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":[],"result":{"SOMETHINGWEIRD":{"c":["1.25","10"]}}}`))
	})
	price, err := c.Ticker(context.Background(), "XRPUSD")
	require.NoError(t, err)
	assert.InDelta(t, 1.25, price, 1e-9)
}

func TestTickerPriceUnavailable(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":[],"result":{"AAA":{"c":["1","1"]},"BBB":{"c":["2","1"]}}}`))
	})
	_, err := c.Ticker(context.Background(), "XRPUSD")
	assert.True(t, errors.Is(err, ErrPriceUnavailable))
}

func TestTickerAPIError(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":["EQuery:Unknown asset pair"]}`))
	})
	_, err := c.Ticker(context.Background(), "NOPEUSD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown asset pair")
}

func TestBalance(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/0/private/Balance", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("API-Key"))
		assert.NotEmpty(t, r.Header.Get("API-Sign"))
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.PostForm.Get("nonce"))
		_, _ = w.Write([]byte(`{"error":[],"result":{"ZUSD":"150.0000","XXRP":"50.00000000"}}`))
	})
	balances, err := c.Balance(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 150, balances["ZUSD"], 1e-9)
	assert.InDelta(t, 50, balances["XXRP"], 1e-9)
}

func TestAddOrder(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/0/private/AddOrder", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "XRPUSD", r.PostForm.Get("pair"))
		assert.Equal(t, "buy", r.PostForm.Get("type"))
		assert.Equal(t, "limit", r.PostForm.Get("ordertype"))
		assert.Equal(t, "222.22222222", r.PostForm.Get("volume"))
		assert.Equal(t, "0.45", r.PostForm.Get("price"))
		_, _ = w.Write([]byte(`{"error":[],"result":{"descr":{"order":"buy 222.22222222 XRPUSD @ limit 0.45"},"txid":["OU22CG-KLAF2-FWUDD7"]}}`))
	})
	txid, err := c.AddOrder(context.Background(), "XRPUSD", models.SideBuy, 222.222222222, 0.45)
	require.NoError(t, err)
	assert.Equal(t, "OU22CG-KLAF2-FWUDD7", txid)
}

func TestAddOrderInsufficientFunds(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":["EOrder:Insufficient funds"]}`))
	})
	_, err := c.AddOrder(context.Background(), "XRPUSD", models.SideBuy, 10, 0.45)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
}

func TestAddOrderRejected(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":["EOrder:Order minimum not met"]}`))
	})
	_, err := c.AddOrder(context.Background(), "XRPUSD", models.SideSell, 0.000001, 0.60)
	var rejected *OrderRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Contains(t, rejected.Reason, "Order minimum not met")
}

func TestAddOrderValidation(t *testing.T) {
	c := testClient(t, "http://unused.invalid")
	_, err := c.AddOrder(context.Background(), "XRPUSD", models.SideBuy, 0, 0.45)
	assert.Error(t, err)
	_, err = c.AddOrder(context.Background(), "XRPUSD", "hold", 1, 0.45)
	assert.Error(t, err)
}

func TestOpenOrders(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/0/private/OpenOrders", r.URL.Path)
		_, _ = w.Write([]byte(`{"error":[],"result":{"open":{
			"OSELL1-AAAAA-BBBBB1":{"status":"open","vol":"166.66666667","descr":{"pair":"XRPUSD","type":"sell","price":"0.60"}},
			"OBUY11-AAAAA-BBBBB2":{"status":"open","vol":"0.5","descr":{"pair":"ETHUSD","type":"buy","price":"2000"}}
		}}}`))
	})
	orders, err := c.OpenOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	sell := orders["OSELL1-AAAAA-BBBBB1"]
	assert.Equal(t, "XRPUSD", sell.Pair)
	assert.Equal(t, models.SideSell, sell.Side)
	assert.InDelta(t, 0.60, sell.Price, 1e-9)
	assert.InDelta(t, 166.66666667, sell.Volume, 1e-9)
	assert.InDelta(t, 100, sell.Total(), 1e-6)
}

func TestOpenOrdersEmpty(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":[],"result":{"open":{}}}`))
	})
	orders, err := c.OpenOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCancelOrder(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "OU22CG-KLAF2-FWUDD7", r.PostForm.Get("txid"))
		_, _ = w.Write([]byte(`{"error":[],"result":{"count":1}}`))
	})
	ok, err := c.CancelOrder(context.Background(), "OU22CG-KLAF2-FWUDD7")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCancelOrderNothingCancelled(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":[],"result":{"count":0}}`))
	})
	ok, err := c.CancelOrder(context.Background(), "OU22CG-KLAF2-FWUDD7")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryOrder(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/0/private/QueryOrders", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "OSELL1-AAAAA-BBBBB1", r.PostForm.Get("txid"))
		_, _ = w.Write([]byte(`{"error":[],"result":{
			"OSELL1-AAAAA-BBBBB1":{"status":"closed","vol":"166.66666667","descr":{"pair":"XRPUSD","type":"sell","price":"0.60"}}
		}}`))
	})
	status, err := c.QueryOrder(context.Background(), "OSELL1-AAAAA-BBBBB1")
	require.NoError(t, err)
	assert.Equal(t, "closed", status)
}

func TestQueryOrderUnknownTxid(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":[],"result":{}}`))
	})
	_, err := c.QueryOrder(context.Background(), "ONOPE1-AAAAA-BBBBB1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in response")
}

func TestHTTPError(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.Balance(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
}

func TestNonceMonotonic(t *testing.T) {
	c := testClient(t, "http://unused.invalid")
	prev := c.nextNonce()
	for i := 0; i < 1000; i++ {
		n := c.nextNonce()
		assert.Greater(t, n, prev)
		prev = n
	}
}
