package render

// Scope drawing colors. The backdrop is deliberately darker than the clear
// color so the plot area reads as a panel.
var (
	ClearColor     = RGB(12, 12, 16)
	BackdropColor  = RGB(4, 8, 4)
	BorderColor    = RGB(90, 110, 90)
	TickColor      = RGB(70, 85, 70)
	GridColor      = RGB(40, 70, 40)
	HighlightColor = RGB(120, 160, 120)
	TextColor      = RGB(200, 210, 200)
)

var traceColors = []Color{
	RGB(80, 250, 123),
	RGB(255, 184, 108),
	RGB(139, 233, 253),
	RGB(255, 121, 198),
	RGB(241, 250, 140),
	RGB(189, 147, 249),
}

// TraceColor returns the default color for channel i, cycling when there are
// more channels than palette entries.
func TraceColor(i int) Color {
	if i < 0 {
		i = 0
	}
	return traceColors[i%len(traceColors)]
}
