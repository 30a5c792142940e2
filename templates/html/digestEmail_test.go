package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderUnreadDigestEmail(t *testing.T) {
	html := RenderUnreadDigestEmail("Student One", 5)

	assert.True(t, strings.Contains(html, "Hi Student One,"))
	assert.True(t, strings.Contains(html, "<span>5</span> unread notifications"))
}

func TestRenderUnreadDigestEmailSingular(t *testing.T) {
	html := RenderUnreadDigestEmail("Student One", 1)

	assert.True(t, strings.Contains(html, "<span>1</span> unread notification"))
	assert.False(t, strings.Contains(html, "notifications"))
}
