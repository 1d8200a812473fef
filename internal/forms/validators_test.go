package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	check := Required("name is required")

	assert.Equal(t, "name is required", check(""))
	assert.Equal(t, "name is required", check("   "))
	assert.Empty(t, check("Alice Wilson"))
}

func TestEmail(t *testing.T) {
	check := Email("invalid email")

	assert.Empty(t, check("admin@hospital.test"))
	assert.Equal(t, "invalid email", check("not-an-email"))
	assert.Equal(t, "invalid email", check("missing@domain"))
	// Optional field: empty passes, Required catches mandatory cases
	assert.Empty(t, check(""))
}

func TestPhone(t *testing.T) {
	check := Phone("invalid phone")

	assert.Empty(t, check("+1 (555) 010-2345"))
	assert.Empty(t, check("5550102345"))
	assert.Equal(t, "invalid phone", check("call me maybe"))
	assert.Empty(t, check(""))
}

func TestIntRange(t *testing.T) {
	check := IntRange(1, 120, "age must be between 1 and 120")

	assert.Empty(t, check("35"))
	assert.Empty(t, check("1"))
	assert.Empty(t, check("120"))
	assert.Equal(t, "age must be between 1 and 120", check("0"))
	assert.Equal(t, "age must be between 1 and 120", check("121"))
	assert.Equal(t, "age must be between 1 and 120", check("abc"))
	assert.Equal(t, "age must be between 1 and 120", check(""))
}

func TestMinLen(t *testing.T) {
	check := MinLen(10, "description too short")

	assert.Equal(t, "description too short", check("short"))
	assert.Equal(t, "description too short", check("   padded   "))
	assert.Empty(t, check("a proper department description"))
}

func TestNotPastDate(t *testing.T) {
	check := NotPastDate("date cannot be in the past")

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	assert.Empty(t, check(today))
	assert.Empty(t, check(tomorrow))
	assert.Equal(t, "date cannot be in the past", check(yesterday))
	assert.Equal(t, "date cannot be in the past", check("not a date"))
	assert.Empty(t, check(""))
}
