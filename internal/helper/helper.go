package helper

import (
	"strconv"
	"strings"
)

// FormatVolume — объём в строку для API: фиксированные 8 знаков,
// хвостовые нули срезаем. Kraken принимает объёмы с точностью до 1e-8.
func FormatVolume(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatPrice — цена в строку без экспоненциальной записи.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
