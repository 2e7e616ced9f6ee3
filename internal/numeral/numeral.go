// Package numeral renders decimal CNY amounts in the capitalized
// character form (大写金额) required on Chinese financial documents.
package numeral

import (
	"errors"
	"math"
	"strings"
)

var (
	// ErrNegativeAmount is returned for amounts below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrAmountTooLarge is returned for amounts of one billion yuan or
	// more, beyond the supported positional units.
	ErrAmountTooLarge = errors.New("amount exceeds 999,999,999.99 yuan")
)

var digits = [10]string{"零", "壹", "贰", "叁", "肆", "伍", "陆", "柒", "捌", "玖"}

// groupUnits are the positional units inside one group of four digits.
var groupUnits = [4]string{"", "拾", "佰", "仟"}

const maxCents = 100_000_000_000 // 10^9 yuan

// Capital converts amount (rounded to two decimal places first) into
// its formal capitalized representation. The conversion is a pure
// function of the decimal input.
func Capital(amount float64) (string, error) {
	if amount < 0 {
		return "", ErrNegativeAmount
	}
	cents := int64(math.Round(amount * 100))
	if cents >= maxCents {
		return "", ErrAmountTooLarge
	}

	yuan := cents / 100
	jiao := (cents / 10) % 10
	fen := cents % 10

	result := convertYuan(yuan) + "元"

	if jiao == 0 && fen == 0 {
		return result + "整", nil
	}
	if jiao != 0 {
		result += digits[jiao] + "角"
	} else {
		// A bare placeholder zero marks the skipped jiao position when
		// only fen is present.
		result += digits[0]
	}
	if fen != 0 {
		result += digits[fen] + "分"
	}
	return result, nil
}

// convertYuan renders the integer yuan part. The number is split into
// groups of four digits scaled by 亿 and 万; a placeholder zero marks
// each gap between groups, so e.g. 100100 reads 壹拾万零壹佰.
func convertYuan(yuan int64) string {
	if yuan == 0 {
		return digits[0]
	}

	high := yuan / 100_000_000
	mid := (yuan / 10_000) % 10_000
	low := yuan % 10_000

	var b strings.Builder
	if high > 0 {
		b.WriteString(convertGroup(high))
		b.WriteString("亿")
	}
	if mid > 0 {
		if high > 0 && mid < 1000 {
			b.WriteString(digits[0])
		}
		b.WriteString(convertGroup(mid))
		b.WriteString("万")
	}
	if low > 0 {
		// A gap exists when the group above is absent, ends in zero, or
		// the low group lacks its leading 仟 digit.
		if yuan >= 10_000 && (mid == 0 || mid%10 == 0 || low < 1000) {
			b.WriteString(digits[0])
		}
		b.WriteString(convertGroup(low))
	}
	return b.String()
}

// convertGroup renders one group of up to four digits, walking from
// least to most significant. A single placeholder zero marks each run
// of zeros sandwiched between non-zero digits.
func convertGroup(n int64) string {
	result := ""
	for i := 0; n > 0; i++ {
		digit := n % 10
		n /= 10
		if digit != 0 {
			result = digits[digit] + groupUnits[i] + result
		} else if result != "" && !strings.HasPrefix(result, digits[0]) {
			result = digits[0] + result
		}
	}
	return result
}
