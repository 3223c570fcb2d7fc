package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerifyEmail(t *testing.T) {
	subject, text, html, err := Render(VerifyEmail, map[string]any{
		"Name":      "Alice",
		"VerifyURL": "http://localhost:3000/user/verify-email?token=abc&email=alice%40x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Verify your email address", subject)
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "token=abc")
	assert.Contains(t, html, `<a href="http://localhost:3000/user/verify-email?token=abc&amp;email=alice%40x.com">`)
}

func TestRenderResetPassword(t *testing.T) {
	subject, text, html, err := Render(ResetPassword, map[string]any{
		"Name":      "Bob",
		"ResetURL":  "http://localhost:3000/user/reset-password?token=xyz&email=bob%40x.com",
		"ExpiresIn": "10 minutes",
	})
	require.NoError(t, err)

	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, text, "10 minutes")
	assert.Contains(t, html, "Reset password")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
