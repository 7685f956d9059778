package ansi

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var spanTag = regexp.MustCompile(`<span style="[^"]*">`)

func TestColorize(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{
			name:     "medium progress colors the percentage",
			line:     "[download]  45.2% of 10MiB",
			expected: `[download]  <span style="color: #ffd93d; font-weight: bold">45.2%</span> of 10MiB`,
		},
		{
			name:     "low progress",
			line:     "[download]   3.0% of 10MiB at 1.00MiB/s ETA 00:09",
			expected: `[download]   <span style="color: #ff6b6b; font-weight: bold">3.0%</span> of 10MiB at 1.00MiB/s ETA 00:09`,
		},
		{
			name:     "high progress",
			line:     "[download] 100% of 10MiB",
			expected: `[download] <span style="color: #51cf66; font-weight: bold">100%</span> of 10MiB`,
		},
		{
			name:     "tag without percentage",
			line:     "[download] Destination: a.mp4",
			expected: `<span style="color: #667eea">[download]</span> Destination: a.mp4`,
		},
		{
			name:     "download tag wins over error words",
			line:     "[download] error.mp4 has already been downloaded",
			expected: `<span style="color: #667eea">[download]</span> error.mp4 has already been downloaded`,
		},
		{
			name:     "error line",
			line:     "ERROR: Failed to fetch",
			expected: `<span style="color: #ff6b6b">ERROR: Failed to fetch</span>`,
		},
		{
			name:     "failed wins over complete",
			line:     "Post-processing failed, merge not complete",
			expected: `<span style="color: #ff6b6b">Post-processing failed, merge not complete</span>`,
		},
		{
			name:     "success line",
			line:     "Download completed successfully",
			expected: `<span style="color: #51cf66">Download completed successfully</span>`,
		},
		{
			name:     "warning line",
			line:     "WARNING: unable to extract uploader",
			expected: `<span style="color: #ffd93d">WARNING: unable to extract uploader</span>`,
		},
		{
			name:     "speed and eta fragments",
			line:     "at 2.5MiB/s ETA 01:02",
			expected: `at <span style="color: #66d9ef">2.5 MiB/s</span> <span style="color: #4ecdc4">ETA 01:02</span>`,
		},
		{
			name:     "eta with hours",
			line:     "ETA 1:02:03",
			expected: `<span style="color: #4ecdc4">ETA 1:02:03</span>`,
		},
		{
			name:     "token without numbers stays plain",
			line:     "KiB/s unknown",
			expected: "KiB/s unknown",
		},
		{
			name:     "nothing matches",
			line:     "[youtube] abc: Downloading m3u8 information",
			expected: "[youtube] abc: Downloading m3u8 information",
		},
		{
			name:     "escaped before styling",
			line:     "error <script>",
			expected: `<span style="color: #ff6b6b">error &lt;script&gt;</span>`,
		},
		{
			name:     "escaped inside progress line",
			line:     `[download] 50% of "a&b"`,
			expected: `[download] <span style="color: #ffd93d; font-weight: bold">50%</span> of &quot;a&amp;b&quot;`,
		},
		{
			name:     "empty line",
			line:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Colorize(tt.line))
		})
	}
}

func TestProgressColor(t *testing.T) {
	tests := []struct {
		percent  float64
		expected string
	}{
		{0, ColorRed},
		{32.9, ColorRed},
		{33, ColorYellow},
		{66, ColorYellow},
		{66.1, ColorGreen},
		{100, ColorGreen},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ProgressColor(tt.percent), "percent %v", tt.percent)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"[download]  12.5% of 10.00MiB", ColorRed},
		{"[download]  50.0% of 10.00MiB", ColorYellow},
		{"[download] 100% of 10.00MiB", ColorGreen},
		{"[download] Destination: video.mp4", ColorAccent},
		{"ERROR: unable to download", ColorError},
		{"Merging finished", ColorSuccess},
		{"WARNING: falling back", ColorWarning},
		{"2.50MiB/s ETA 00:03", ColorSpeed},
		{"[info] Writing metadata", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.line), tt.line)
	}
}
