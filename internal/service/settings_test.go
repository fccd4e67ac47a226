package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/validation"
)

func TestParseChatWidget(t *testing.T) {
	code := `<div id="vapi"></div>` +
		`<script src="https://cdn.example.com/widget.js" async></script>` +
		`<script>window.widgetConfig = {id: 7};</script>`

	widget, err := ParseChatWidget(code)
	require.NoError(t, err)

	assert.True(t, widget.Enabled)
	assert.Equal(t, `<div id="vapi"></div>`, widget.Markup)
	require.Len(t, widget.Scripts, 2)
	assert.Equal(t, "https://cdn.example.com/widget.js", widget.Scripts[0].Attributes["src"])
	assert.Contains(t, widget.Scripts[0].Attributes, "async")
	assert.Empty(t, widget.Scripts[0].Text)
	assert.Equal(t, "window.widgetConfig = {id: 7};", widget.Scripts[1].Text)
}

func TestParseChatWidget_Blank(t *testing.T) {
	widget, err := ParseChatWidget("  \n ")
	require.NoError(t, err)
	assert.False(t, widget.Enabled)
	assert.Empty(t, widget.Scripts)
	assert.Empty(t, widget.Markup)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(newTestStore(t), validation.New(), nil)

	empty, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.ChatWidgetCode)
	assert.False(t, empty.ChatWidget.Enabled)

	saved, err := svc.Save(ctx, SettingsUpdate{ChatWidgetCode: `<script src="https://x.test/w.js"></script>`})
	require.NoError(t, err)
	assert.True(t, saved.ChatWidget.Enabled)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, `<script src="https://x.test/w.js"></script>`, got.ChatWidgetCode)
	require.Len(t, got.ChatWidget.Scripts, 1)
}
