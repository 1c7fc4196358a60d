package core_test

import (
	"testing"
	"time"

	"accounting-backend/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestFormatInvoiceNumber(t *testing.T) {
	day := core.NewDate(2024, time.March, 7)
	assert.Equal(t, "FTR202403070001", core.FormatInvoiceNumber(day, 1))
	assert.Equal(t, "FTR202403070042", core.FormatInvoiceNumber(day, 42))
	assert.Equal(t, "FTR2024030712345", core.FormatInvoiceNumber(day, 12345))
}

func TestParseSequence(t *testing.T) {
	day := core.NewDate(2024, time.March, 7)

	n, ok := core.ParseSequence(day, "FTR202403070013")
	assert.True(t, ok)
	assert.Equal(t, 13, n)

	_, ok = core.ParseSequence(day, "FTR202403080013")
	assert.False(t, ok, "other day")

	_, ok = core.ParseSequence(day, "MANUAL-1")
	assert.False(t, ok)

	_, ok = core.ParseSequence(day, "FTR20240307AB12")
	assert.False(t, ok)
}

func TestNextSequence(t *testing.T) {
	assert.Equal(t, 1, core.NextSequence(0, 0))
	assert.Equal(t, 3, core.NextSequence(2, 2))
	// after deleting 0001 of {0001, 0002}: count=1, max=2
	assert.Equal(t, 3, core.NextSequence(1, 2))
	// manual numbers count towards the day but carry no sequence
	assert.Equal(t, 4, core.NextSequence(3, 1))
}
