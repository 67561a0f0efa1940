package utils

import "testing"

func TestFormatMessage_HTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold** and *italic*\nline2", "<strong>bold</strong> and <em>italic</em><br>line2"},
		{"plain", "plain"},
		{"a\nb\nc", "a<br>b<br>c"},
		{"**x** **y**", "<strong>x</strong> <strong>y</strong>"},
		{"*one* *two*", "<em>one</em> <em>two</em>"},
		{"2 * 3 = 6", "2 * 3 = 6"},
		{"<b>raw</b>", "&lt;b&gt;raw&lt;/b&gt;"},
	}

	for _, tt := range tests {
		if got := FormatMessage(tt.in, HTML()); got != tt.want {
			t.Errorf("FormatMessage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAnalysis_HTML(t *testing.T) {
	got := FormatAnalysis("**Scene:** a desk\n*not italic*", HTML())
	want := "<strong>Scene:</strong> a desk<br>*not italic*"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatMessage_Plain(t *testing.T) {
	got := FormatMessage("**bold** and *italic*\nline2", Plain())
	if got != "bold and italic\nline2" {
		t.Errorf("unexpected plain output %q", got)
	}
}

// Line breaks are replaced first, so emphasis may wrap a <br>
func TestFormatMessage_BoldAcrossBreak(t *testing.T) {
	got := FormatMessage("**a\nb**", HTML())
	if got != "<strong>a<br>b</strong>" {
		t.Errorf("unexpected output %q", got)
	}
}
