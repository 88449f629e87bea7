package assets

import "strings"

// Kraken исторически держит несколько нотаций для одного актива: голый код
// (XRP), код с классовым префиксом X/Z (XXRP, ZUSD) и легаси-алиасы (XBT для
// BTC). В каком виде актив придёт в Balance — зависит от аккаунта, поэтому
// резолвим пару в упорядоченный список кандидатов и пробуем по очереди.

// assetNames — известные коды -> человекочитаемое имя базового актива.
var assetNames = map[string]string{
	"XBT":  "BTC",
	"XXBT": "BTC",
	"XRP":  "XRP",
	"XXRP": "XRP",
	"ETH":  "ETH",
	"XETH": "ETH",
	"ADA":  "ADA",
	"SOL":  "SOL",
	"XDG":  "DOGE",
	"XXDG": "DOGE",
	"XLTC": "LTC",
	"LTC":  "LTC",
}

// quoteCodes — варианты кода котируемой валюты в Balance, по приоритету.
var quoteCodes = []string{"ZUSD", "USD"}

// Resolve переводит символ пары (например "XRPUSD") в человекочитаемое имя
// базового актива и упорядоченный список кодов, под которыми баланс этого
// актива может лежать в леджере. Чистая функция, без I/O.
func Resolve(pair string) (name string, codes []string) {
	base := strings.TrimSuffix(strings.ToUpper(pair), "USD")
	stripped := stripClassPrefix(base)

	codes = append(codes, base)
	codes = appendUnique(codes, "X"+base)
	codes = appendUnique(codes, stripped)
	codes = appendUnique(codes, "Z"+stripped)

	if n, ok := assetNames[base]; ok {
		return n, codes
	}
	if n, ok := assetNames[stripped]; ok {
		return n, codes
	}
	return stripped, codes
}

// WSName — имя пары для публичного websocket-фида ("XRPUSD" -> "XRP/USD").
// Kraken в ws-канале использует код без классового префикса (XBT, не BTC).
func WSName(pair string) string {
	up := strings.ToUpper(pair)
	base := strings.TrimSuffix(up, "USD")
	if base == up {
		return up
	}
	return stripClassPrefix(base) + "/USD"
}

// BalanceFor пробует кандидатов по порядку; первый найденный ключ
// авторитетен. Ни одного совпадения — баланс считается нулевым.
func BalanceFor(balances map[string]float64, codes []string) float64 {
	for _, code := range codes {
		if v, ok := balances[code]; ok {
			return v
		}
	}
	return 0
}

// QuoteBalance — баланс котируемой валюты (ZUSD приоритетнее USD).
func QuoteBalance(balances map[string]float64) float64 {
	return BalanceFor(balances, quoteCodes)
}

// stripClassPrefix снимает классовый префикс X/Z у четырёхбуквенных кодов
// (XXBT -> XBT, ZUSD -> USD). Трёхбуквенные коды не трогаем: у "XBT"
// X — часть кода, а не префикс.
func stripClassPrefix(code string) string {
	if len(code) >= 4 && (code[0] == 'X' || code[0] == 'Z') {
		return code[1:]
	}
	return code
}

func appendUnique(codes []string, code string) []string {
	for _, c := range codes {
		if c == code {
			return codes
		}
	}
	return append(codes, code)
}
