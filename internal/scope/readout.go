package scope

import (
	"fmt"
	"strings"

	"tracescope/internal/render"
)

// Label is one positioned text fragment of the cursor readout overlay.
type Label struct {
	X    int
	Text string
	Col  render.Color
}

// readoutSpec carries the layout inputs for one readout build.
type readoutSpec struct {
	title      string
	timeText   string
	spacing    int
	tabSpacing int
	margin     int
}

// buildReadout formats the textual overlay for cursor: the title, the
// optional time label, then one label per channel laid out left to right
// with a fixed spacing gap. Channel templates beginning with a tab get extra
// spacing before the label. When the cursor sample is absent only the title
// and time label are produced.
//
// cursor is clamped to the last buffer position before lookup; the buffer
// never shrinks, but reshaping the index space on a channel-count change
// requires the same guard.
func buildReadout(buf *Buffer, channels []Channel, cursor int, spec readoutSpec, measure func(string) int) []Label {
	var labels []Label
	x := spec.margin

	if spec.title != "" {
		labels = append(labels, Label{X: x, Text: spec.title, Col: render.TextColor})
		x += measure(spec.title) + spec.spacing
	}
	if spec.timeText != "" {
		labels = append(labels, Label{X: x, Text: spec.timeText, Col: render.TextColor})
		x += measure(spec.timeText) + spec.spacing
	}

	if buf.Len() == 0 {
		return labels
	}
	if cursor > buf.Len()-1 {
		cursor = buf.Len() - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	sample, ok := buf.At(cursor)
	if !ok {
		return labels
	}

	for k, ch := range channels {
		format := ch.LabelFormat
		if strings.HasPrefix(format, "\t") {
			format = format[1:]
			x += spec.tabSpacing
		}
		if format == "" {
			format = "%.2f"
		}
		text := fmt.Sprintf(format, sample[k])
		labels = append(labels, Label{X: x, Text: text, Col: ch.Color})
		x += measure(text) + spec.spacing
	}
	return labels
}
