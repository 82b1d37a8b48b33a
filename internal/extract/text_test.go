package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCollapsesWhitespace(t *testing.T) {
	text, err := Text("<html><body><h1>Title</h1>\n<p>First   paragraph.</p>\n<p>Second.</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "Title First paragraph. Second.", text)
}

func TestTextSkipsNonRenderedContent(t *testing.T) {
	doc := `<html><head><title>hidden</title><style>p { color: red }</style></head>
<body><script>var hidden = 1;</script><noscript>hidden too</noscript><p>visible</p></body></html>`
	text, err := Text(doc)
	require.NoError(t, err)
	assert.Equal(t, "visible", text)
}

func TestTextPlainInputPassesThrough(t *testing.T) {
	text, err := Text("just some plain text")
	require.NoError(t, err)
	assert.Equal(t, "just some plain text", text)
}

func TestTextEmptyDocument(t *testing.T) {
	text, err := Text("")
	require.NoError(t, err)
	assert.Empty(t, text)
}
