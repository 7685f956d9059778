package ansi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text passes through",
			input:    "[youtube] abc123: Downloading webpage",
			expected: "[youtube] abc123: Downloading webpage",
		},
		{
			name:     "plain text is escaped",
			input:    `<b>"Tom" & 'Jerry'</b>`,
			expected: "&lt;b&gt;&quot;Tom&quot; &amp; &#39;Jerry&#39;&lt;/b&gt;",
		},
		{
			name:     "red then reset",
			input:    "\x1b[31mHello\x1b[0m World",
			expected: `<span style="color: #ff6b6b">Hello</span> World`,
		},
		{
			name:     "empty parameter list resets",
			input:    "\x1b[1;32mok\x1b[m done",
			expected: `<span style="color: #51cf66; font-weight: bold">ok</span> done`,
		},
		{
			name:     "unknown code is ignored",
			input:    "\x1b[58mHi",
			expected: "Hi",
		},
		{
			name:     "unknown codes mixed with known ones",
			input:    "\x1b[58;4;999mHi",
			expected: `<span style="text-decoration: underline">Hi</span>`,
		},
		{
			name:     "background renders as background-color",
			input:    "\x1b[41mx",
			expected: `<span style="background-color: #ff6b6b">x</span>`,
		},
		{
			name:     "bright background",
			input:    "\x1b[107mx",
			expected: `<span style="background-color: #ffffff">x</span>`,
		},
		{
			name:     "all attributes combine in fixed order",
			input:    "\x1b[4;3;2;1;44;93mx",
			expected: `<span style="color: #ffec8c; background-color: #667eea; font-weight: bold; opacity: 0.7; font-style: italic; text-decoration: underline">x</span>`,
		},
		{
			name:     "foreground reset keeps background",
			input:    "\x1b[31;42ma\x1b[39mb",
			expected: `<span style="color: #ff6b6b; background-color: #51cf66">a</span><span style="background-color: #51cf66">b</span>`,
		},
		{
			name:     "background reset keeps foreground",
			input:    "\x1b[31;42ma\x1b[49mb",
			expected: `<span style="color: #ff6b6b; background-color: #51cf66">a</span><span style="color: #ff6b6b">b</span>`,
		},
		{
			name:     "22 clears bold and dim",
			input:    "\x1b[1;2;3ma\x1b[22mb",
			expected: `<span style="font-weight: bold; opacity: 0.7; font-style: italic">a</span><span style="font-style: italic">b</span>`,
		},
		{
			name:     "23 and 24 clear italic and underline",
			input:    "\x1b[3;4ma\x1b[23mb\x1b[24mc",
			expected: `<span style="font-style: italic; text-decoration: underline">a</span><span style="text-decoration: underline">b</span>c`,
		},
		{
			name:     "reset in the middle of a list",
			input:    "\x1b[1;31;0;4mx",
			expected: `<span style="text-decoration: underline">x</span>`,
		},
		{
			name:     "repeated identical state merges into one span",
			input:    "\x1b[31mab\x1b[31mcd",
			expected: `<span style="color: #ff6b6b">abcd</span>`,
		},
		{
			name:     "only escape sequences",
			input:    "\x1b[31m\x1b[0m",
			expected: "",
		},
		{
			name:     "non numeric tokens are dropped",
			input:    "\x1b[1;;32mx",
			expected: `<span style="color: #51cf66; font-weight: bold">x</span>`,
		},
		{
			name:     "private mode sequence ending in m is not SGR",
			input:    "\x1b[?1mx",
			expected: "x",
		},
		{
			name:     "escaped text inside a span",
			input:    "\x1b[33m<script>alert('x')</script>",
			expected: `<span style="color: #ffd93d">&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;</span>`,
		},
		{
			name:     "non SGR sequences are dropped",
			input:    "\x1b[Kdone\x1b[31;1H",
			expected: "done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.input))
		})
	}
}

func TestRender_EscapingIsTotal(t *testing.T) {
	inputs := []string{
		`<img src=x onerror="alert(1)">`,
		"\x1b[31m<a href='javascript:x'>\x1b[0m&",
		"\x1b[1m\"\x1b[22m'\x1b[4m<\x1b[24m>",
	}

	for _, input := range inputs {
		out := Render(input)
		// Strip the markup the renderer itself produces, then no raw
		// special characters may remain.
		stripped := spanTag.ReplaceAllString(out, "")
		stripped = strings.ReplaceAll(stripped, "</span>", "")
		for _, ch := range []string{"<", ">", `"`, "'"} {
			assert.NotContains(t, stripped, ch, "input %q", input)
		}
		for _, entity := range []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#39;"} {
			stripped = strings.ReplaceAll(stripped, entity, "")
		}
		assert.NotContains(t, stripped, "&", "input %q", input)
	}
}

func TestRender_ResetClearsEverything(t *testing.T) {
	out := Render("\x1b[1;2;3;4;31;41mstyled\x1b[0mplain")
	require.True(t, strings.HasSuffix(out, "</span>plain"))
}

func TestPalette_BrightAndStandardDiffer(t *testing.T) {
	red, ok := ForegroundColor(31)
	require.True(t, ok)
	brightRed, ok := ForegroundColor(91)
	require.True(t, ok)
	assert.NotEqual(t, red, brightRed)

	for _, code := range foregroundCodes() {
		_, ok := ForegroundColor(code)
		assert.True(t, ok, "foreground %d", code)
		_, ok = BackgroundColor(code + 10)
		assert.True(t, ok, "background %d", code+10)
	}
	assert.Len(t, foregroundCodes(), 16)
}

func TestParse(t *testing.T) {
	runs := Parse("a\x1b[1mb\x1b[31mc\x1b[0md")

	require.Len(t, runs, 4)
	assert.Equal(t, Run{Text: "a"}, runs[0])
	assert.Equal(t, Run{Text: "b", Style: StyleState{Bold: true}}, runs[1])
	assert.Equal(t, Run{Text: "c", Style: StyleState{Bold: true, Foreground: 31}}, runs[2])
	assert.Equal(t, Run{Text: "d"}, runs[3])
	assert.True(t, runs[3].Style.IsZero())
}

func TestParse_DropsNonSGRSequences(t *testing.T) {
	runs := Parse("\x1b[K[download] \x1b[0;94m 42.0%\x1b[0m\x1b[2K done\x1b[?25l")

	require.Len(t, runs, 3)
	assert.Equal(t, Run{Text: "[download] "}, runs[0])
	assert.Equal(t, Run{Text: " 42.0%", Style: StyleState{Foreground: 94}}, runs[1])
	assert.Equal(t, Run{Text: " done"}, runs[2])
}

func TestRenderLine(t *testing.T) {
	assert.Equal(t, `<span style="color: #ff6b6b">x</span>`, RenderLine("\x1b[31mx"))
	assert.Equal(t, `<span style="color: #ff6b6b">ERROR: boom</span>`, RenderLine("ERROR: boom"))

	// an erase-line sequence alone still takes the escape path
	html := RenderLine("\x1b[K[download] Destination: video.mp4")
	assert.Equal(t, "[download] Destination: video.mp4", html)
	assert.NotContains(t, html, "\x1b")

	assert.True(t, HasEscapes("\x1b[K"))
	assert.False(t, HasEscapes("[download] 5%"))
}

// foregroundCodes lists every foreground code in the palette, standard first.
func foregroundCodes() []int {
	codes := make([]int, 0, len(basePalette))
	for i := 0; i < 8; i++ {
		codes = append(codes, FGFirst+i)
	}
	for i := 0; i < 8; i++ {
		codes = append(codes, BrightFGFirst+i)
	}
	return codes
}
