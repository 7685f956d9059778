package ansi

// SGR attribute codes
const (
	CodeReset        = 0
	CodeBold         = 1
	CodeDim          = 2
	CodeItalic       = 3
	CodeUnderline    = 4
	CodeNotBoldDim   = 22
	CodeNotItalic    = 23
	CodeNotUnderline = 24
	CodeDefaultFG    = 39
	CodeDefaultBG    = 49
)

// SGR color code ranges
const (
	FGFirst       = 30
	FGLast        = 37
	BGFirst       = 40
	BGLast        = 47
	BrightFGFirst = 90
	BrightFGLast  = 97
	BrightBGFirst = 100
	BrightBGLast  = 107
)

// Dark theme colors
const (
	ColorBlack         = "#1a1a1a"
	ColorRed           = "#ff6b6b"
	ColorGreen         = "#51cf66"
	ColorYellow        = "#ffd93d"
	ColorBlue          = "#667eea"
	ColorMagenta       = "#c44569"
	ColorCyan          = "#4ecdc4"
	ColorWhite         = "#e0e0e0"
	ColorBrightBlack   = "#404040"
	ColorBrightRed     = "#ff8787"
	ColorBrightGreen   = "#69db7c"
	ColorBrightYellow  = "#ffec8c"
	ColorBrightBlue    = "#7c8aff"
	ColorBrightMagenta = "#d63384"
	ColorBrightCyan    = "#66d9ef"
	ColorBrightWhite   = "#ffffff"
)

// basePalette is indexed by color offset: 0-7 standard, 8-15 bright.
var basePalette = [16]string{
	ColorBlack, ColorRed, ColorGreen, ColorYellow,
	ColorBlue, ColorMagenta, ColorCyan, ColorWhite,
	ColorBrightBlack, ColorBrightRed, ColorBrightGreen, ColorBrightYellow,
	ColorBrightBlue, ColorBrightMagenta, ColorBrightCyan, ColorBrightWhite,
}

var (
	foregroundPalette = buildPalette(FGFirst, BrightFGFirst)
	backgroundPalette = buildPalette(BGFirst, BrightBGFirst)
)

func buildPalette(first, brightFirst int) map[int]string {
	palette := make(map[int]string, len(basePalette))
	for i := 0; i < 8; i++ {
		palette[first+i] = basePalette[i]
		palette[brightFirst+i] = basePalette[8+i]
	}
	return palette
}

// ForegroundColor returns the hex color for a foreground code (30-37, 90-97).
func ForegroundColor(code int) (string, bool) {
	c, ok := foregroundPalette[code]
	return c, ok
}

// BackgroundColor returns the hex color for a background code (40-47, 100-107).
func BackgroundColor(code int) (string, bool) {
	c, ok := backgroundPalette[code]
	return c, ok
}

func isForeground(code int) bool {
	return (code >= FGFirst && code <= FGLast) || (code >= BrightFGFirst && code <= BrightFGLast)
}

func isBackground(code int) bool {
	return (code >= BGFirst && code <= BGLast) || (code >= BrightBGFirst && code <= BrightBGLast)
}
