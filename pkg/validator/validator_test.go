package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	errs := ValidateRegister("ana@example.com", "ana_123", "Sup3rSecret")
	require.False(t, errs.HasErrors())

	errs = ValidateRegister("not-an-email", "a", "short")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "username")
	require.Contains(t, errs, "password")

	errs = ValidateRegister("ana@example.com", "bad name!", "alllowercase1")
	require.Contains(t, errs, "username")
	require.Equal(t, "Password must contain at least one uppercase letter", errs["password"])
}

func TestValidateLogin(t *testing.T) {
	require.False(t, ValidateLogin("ana@example.com", "whatever").HasErrors())

	errs := ValidateLogin("", "")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
}

func TestValidateCommunity(t *testing.T) {
	require.False(t, ValidateCommunity("Elm Street", "12 Elm St").HasErrors())

	errs := ValidateCommunity(" ", "")
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "address")
}

func TestValidateMessageContent(t *testing.T) {
	require.False(t, ValidateMessageContent("hello").HasErrors())
	require.Contains(t, ValidateMessageContent("   "), "content")
	require.Contains(t, ValidateMessageContent(strings.Repeat("x", MaxMessageLength+1)), "content")
	require.False(t, ValidateMessageContent(strings.Repeat("x", MaxMessageLength)).HasErrors())
}
