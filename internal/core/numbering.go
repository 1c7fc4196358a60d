package core

import (
	"fmt"
	"strconv"
	"strings"
)

// InvoiceNumberPrefix starts every generated invoice number.
const InvoiceNumberPrefix = "FTR"

// FormatInvoiceNumber renders FTR + YYYYMMDD + a 4-digit sequence.
func FormatInvoiceNumber(day Date, seq int) string {
	return fmt.Sprintf("%s%s%04d", InvoiceNumberPrefix, day.Compact(), seq)
}

// DayPrefix is the generated-number prefix shared by all invoices of day.
func DayPrefix(day Date) string {
	return InvoiceNumberPrefix + day.Compact()
}

// ParseSequence extracts the sequence from a generated number for day. It
// reports false for caller-assigned numbers that do not follow the format.
func ParseSequence(day Date, number string) (int, bool) {
	rest, ok := strings.CutPrefix(number, DayPrefix(day))
	if !ok || len(rest) < 4 {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextSequence picks the sequence for the next invoice of a day, given the
// number of invoices already issued that day and the highest generated
// sequence among them. Counting alone would re-issue a number after a
// delete; the unique constraint still guards concurrent creates.
func NextSequence(count, maxSeq int) int {
	return max(count, maxSeq) + 1
}
