package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"kraken_bot/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.kraken.com"

// Client — REST-клиент Kraken Spot. Машина состояний сырых ответов биржи
// не видит: вся нормализация (обёртка result, варианты имён пар, строковые
// числа) живёт здесь.
type Client struct {
	http    *http.Client
	baseURL string

	apiKey string
	secret []byte // api secret после base64-декода

	// nonce обязан строго расти в рамках ключа
	nonce atomic.Int64
}

func NewClient(cfg *config.Config) (*Client, error) {
	secret, err := base64.StdEncoding.DecodeString(cfg.APISecret)
	if err != nil {
		return nil, errors.Wrap(err, "decode api secret")
	}
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  cfg.APIKey,
		secret:  secret,
	}, nil
}

// envelope — стандартная обёртка всех ответов Kraken.
type envelope struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

// public — GET к публичному эндпоинту.
func (c *Client) public(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: new request", path)
	}
	return c.do(path, req)
}

// private — POST к приватному эндпоинту с подписью API-Sign.
func (c *Client) private(ctx context.Context, path string, form url.Values) (json.RawMessage, error) {
	if form == nil {
		form = url.Values{}
	}
	nonce := strconv.FormatInt(c.nextNonce(), 10)
	form.Set("nonce", nonce)
	body := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: new request", path)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("API-Sign", c.sign(path, nonce, body))

	return c.do(path, req)
}

func (c *Client) do(path string, req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: do", path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read body", path)
	}
	if resp.StatusCode/100 != 2 {
		return nil, errors.Errorf("%s: http %d: %s", path, resp.StatusCode, string(data))
	}

	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrapf(err, "%s: decode; body=%s", path, string(data))
	}
	if len(env.Error) > 0 {
		return nil, apiError(path, env.Error)
	}
	// у некоторых зеркал result лежит прямо в корне
	if len(env.Result) == 0 {
		return data, nil
	}
	return env.Result, nil
}

// nextNonce — unix-миллисекунды, монотонно растущие даже при вызовах
// внутри одной миллисекунды.
func (c *Client) nextNonce() int64 {
	for {
		now := time.Now().UnixMilli()
		last := c.nonce.Load()
		if now <= last {
			now = last + 1
		}
		if c.nonce.CompareAndSwap(last, now) {
			return now
		}
	}
}
