package web

import "strconv"

func itoa(value int) string {
	return strconv.Itoa(value)
}

func utoa(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "0"
	}
	if part > whole {
		part = whole
	}
	return strconv.Itoa(part * 100 / whole)
}
