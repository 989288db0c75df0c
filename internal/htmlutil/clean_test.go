package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanToTextSkipsScriptAndStyle(t *testing.T) {
	html := `<html><head><title>ignored</title><style>.x{color:red}</style></head>
	<body><script>var x = 1;</script><p>Rich and smooth</p><p>Long finish</p></body></html>`

	text, err := CleanToText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Rich and smooth")
	assert.Contains(t, text, "Long finish")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "color:red")
}

func TestCleanToTextCollapsesWhitespaceAcrossBlockElements(t *testing.T) {
	html := `<div>  Oak   and vanilla  </div><div>Finish is long</div>`
	text, err := CleanToText(html)
	require.NoError(t, err)
	assert.Equal(t, "Oak and vanilla Finish is long", text)
}

func TestCleanToTextSkipsNavAndFooter(t *testing.T) {
	html := `<body><nav>Home About</nav><p>Main content</p><footer>Copyright 2024</footer></body>`
	text, err := CleanToText(html)
	require.NoError(t, err)
	assert.Equal(t, "Main content", text)
}
