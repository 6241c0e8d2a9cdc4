package scope

import "testing"

func runeWidth(s string) int { return len([]rune(s)) }

func readoutChannels() []Channel {
	return []Channel{
		{MinDisplay: -1, MaxDisplay: 1, LabelFormat: "a=%.1f"},
		{MinDisplay: -1, MaxDisplay: 1, LabelFormat: "\tb=%.1f"},
	}
}

func TestReadoutLabels(t *testing.T) {
	buf := NewBuffer(1)
	buf.Append(Sample{0.5, -0.25})
	spec := readoutSpec{title: "scope", timeText: "00:01", spacing: 2, tabSpacing: 6, margin: 10}

	labels := buildReadout(buf, readoutChannels(), 0, spec, runeWidth)
	if len(labels) != 4 {
		t.Fatalf("labels=%d want=4", len(labels))
	}
	if labels[0].Text != "scope" || labels[0].X != 10 {
		t.Fatalf("title label=%+v", labels[0])
	}
	if labels[1].Text != "00:01" {
		t.Fatalf("time label=%+v", labels[1])
	}
	if labels[2].Text != "a=0.5" {
		t.Fatalf("channel 0 label=%+v", labels[2])
	}
	// title(5)+2 then time(5)+2 after margin 10
	if labels[2].X != 10+5+2+5+2 {
		t.Fatalf("channel 0 x=%d want=%d", labels[2].X, 10+5+2+5+2)
	}
}

func TestReadoutTabMarkerAddsSpacing(t *testing.T) {
	buf := NewBuffer(1)
	buf.Append(Sample{0.5, -0.25})
	spec := readoutSpec{spacing: 2, tabSpacing: 6, margin: 0}

	labels := buildReadout(buf, readoutChannels(), 0, spec, runeWidth)
	if len(labels) != 2 {
		t.Fatalf("labels=%d want=2", len(labels))
	}
	if labels[1].Text != "b=-0.2" {
		t.Fatalf("channel 1 label=%+v", labels[1])
	}
	// channel 0 at x=0 width 5, spacing 2, plus tab spacing 6
	if labels[1].X != 5+2+6 {
		t.Fatalf("channel 1 x=%d want=%d", labels[1].X, 5+2+6)
	}
}

func TestReadoutAbsentSampleOmitsChannelLabels(t *testing.T) {
	buf := NewBuffer(1)
	buf.AppendAbsent()
	spec := readoutSpec{title: "scope", spacing: 2, tabSpacing: 6, margin: 0}

	labels := buildReadout(buf, readoutChannels(), 0, spec, runeWidth)
	if len(labels) != 1 || labels[0].Text != "scope" {
		t.Fatalf("labels=%+v want title only", labels)
	}
}

func TestReadoutClampsCursor(t *testing.T) {
	buf := NewBuffer(2)
	buf.Append(Sample{1, 1})
	buf.Append(Sample{0.5, -0.25})
	spec := readoutSpec{spacing: 2, tabSpacing: 6, margin: 0}

	labels := buildReadout(buf, readoutChannels(), 99, spec, runeWidth)
	if len(labels) != 2 || labels[0].Text != "a=0.5" {
		t.Fatalf("labels=%+v want values from last sample", labels)
	}
}

func TestReadoutEmptyBuffer(t *testing.T) {
	buf := NewBuffer(0)
	spec := readoutSpec{title: "scope", timeText: "t", spacing: 2, tabSpacing: 6, margin: 0}
	labels := buildReadout(buf, readoutChannels(), 0, spec, runeWidth)
	if len(labels) != 2 {
		t.Fatalf("labels=%d want=2 (title and time only)", len(labels))
	}
}
