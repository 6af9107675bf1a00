package tzconv

// ParseDigits interprets an accumulating digit buffer (up to four digits) as
// an hour:minute reading, reparsed on every keystroke:
//
//	"5"    -> 05:00
//	"14"   -> 14:00
//	"143"  -> 01:43 (three digits prefer a one-digit hour when the minute fits)
//	"1930" -> 19:30
//
// Hours clamp to 23 and minutes to 59. ok is false when the buffer is empty,
// longer than four digits, or contains a non-digit.
func ParseDigits(buffer string) (hour, minute int, ok bool) {
	if len(buffer) == 0 || len(buffer) > 4 {
		return 0, 0, false
	}
	digits := make([]int, len(buffer))
	for i, c := range buffer {
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		digits[i] = int(c - '0')
	}

	switch len(digits) {
	case 1:
		return clampHour(digits[0]), 0, true
	case 2:
		return clampHour(digits[0]*10 + digits[1]), 0, true
	case 3:
		if m := digits[1]*10 + digits[2]; m <= 59 {
			return clampHour(digits[0]), m, true
		}
		return clampHour(digits[0]*10 + digits[1]), digits[2], true
	default:
		return clampHour(digits[0]*10 + digits[1]), clampMinute(digits[2]*10 + digits[3]), true
	}
}

func clampHour(h int) int {
	if h > 23 {
		return 23
	}
	return h
}

func clampMinute(m int) int {
	if m > 59 {
		return 59
	}
	return m
}
