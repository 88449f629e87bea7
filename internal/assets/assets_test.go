package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(codes []string, code string) int {
	for i, c := range codes {
		if c == code {
			return i
		}
	}
	return -1
}

func TestResolveXBT(t *testing.T) {
	name, codes := Resolve("XBTUSD")
	assert.Equal(t, "BTC", name)

	xbt := indexOf(codes, "XBT")
	xxbt := indexOf(codes, "XXBT")
	require.GreaterOrEqual(t, xbt, 0, "XBT должен быть среди кандидатов")
	require.GreaterOrEqual(t, xxbt, 0, "XXBT должен быть среди кандидатов")
	assert.Less(t, xbt, xxbt, "XBT идёт раньше XXBT")
}

func TestResolveXRP(t *testing.T) {
	name, codes := Resolve("XRPUSD")
	assert.Equal(t, "XRP", name)
	assert.Equal(t, "XRP", codes[0])
	assert.Contains(t, codes, "XXRP")
}

func TestResolveLedgerNotation(t *testing.T) {
	// пара может прийти уже с классовым префиксом
	name, codes := Resolve("XXRPUSD")
	assert.Equal(t, "XRP", name)
	assert.Contains(t, codes, "XRP")
	assert.Contains(t, codes, "XXRP")
}

func TestResolveUnknownCode(t *testing.T) {
	name, codes := Resolve("ABCUSD")
	assert.Equal(t, "ABC", name)
	assert.Equal(t, "ABC", codes[0])
}

func TestResolveDeterministic(t *testing.T) {
	_, a := Resolve("ETHUSD")
	_, b := Resolve("ETHUSD")
	assert.Equal(t, a, b)
}

func TestWSName(t *testing.T) {
	assert.Equal(t, "XRP/USD", WSName("XRPUSD"))
	assert.Equal(t, "XBT/USD", WSName("XBTUSD"))
	assert.Equal(t, "XRP/USD", WSName("XXRPUSD"))
}

func TestBalanceFor(t *testing.T) {
	balances := map[string]float64{"XXRP": 50, "ZUSD": 150}

	_, codes := Resolve("XRPUSD")
	assert.InDelta(t, 50, BalanceFor(balances, codes), 1e-9)
	assert.InDelta(t, 150, QuoteBalance(balances), 1e-9)
}

func TestBalanceForFirstMatchWins(t *testing.T) {
	// первый найденный ключ авторитетен, даже если дальше есть другие
	balances := map[string]float64{"XRP": 10, "XXRP": 50}
	_, codes := Resolve("XRPUSD")
	assert.InDelta(t, 10, BalanceFor(balances, codes), 1e-9)
}

func TestBalanceForNoMatch(t *testing.T) {
	_, codes := Resolve("XRPUSD")
	assert.Zero(t, BalanceFor(map[string]float64{"XETH": 1}, codes))
	assert.Zero(t, QuoteBalance(map[string]float64{}))
}
