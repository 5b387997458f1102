package xml

import (
	"encoding/xml"
	"testing"
)

func TestRunGetText(t *testing.T) {
	tests := []struct {
		name string
		run  *Run
		want string
	}{
		{
			name: "plain text",
			run:  &Run{Content: []RunContent{&Text{Value: "Market value"}}},
			want: "Market value",
		},
		{
			name: "empty run",
			run:  &Run{},
			want: "",
		},
		{
			name: "multiple text elements",
			run: &Run{Content: []RunContent{
				&Text{Value: "{{MV:"},
				&Text{Value: "LON_001:£,0}}"},
			}},
			want: "{{MV:LON_001:£,0}}",
		},
		{
			name: "tab counts one character",
			run: &Run{Content: []RunContent{
				&Text{Value: "Asset"},
				&Tab{},
				&Text{Value: "Value"},
			}},
			want: "Asset\tValue",
		},
		{
			name: "line break counts one character",
			run: &Run{Content: []RunContent{
				&Text{Value: "Page 1"},
				&Break{},
				&Text{Value: "Page 2"},
			}},
			want: "Page 1\nPage 2",
		},
		{
			name: "carriage return counts one character",
			run: &Run{Content: []RunContent{
				&Text{Value: "a"},
				&CarriageReturn{},
				&Text{Value: "b"},
			}},
			want: "a\nb",
		},
		{
			name: "raw content contributes nothing",
			run: &Run{Content: []RunContent{
				&Text{Value: "before"},
				&RawXMLElement{Name: xml.Name{Local: "drawing"}, Content: []byte("<w:drawing></w:drawing>")},
				&Text{Value: "after"},
			}},
			want: "beforeafter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.run.GetText(); got != tt.want {
				t.Errorf("GetText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunSetText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantSpace string
	}{
		{name: "plain text", text: "£2,500,000", wantSpace: ""},
		{name: "leading space needs preserve", text: " 4.75%", wantSpace: "preserve"},
		{name: "trailing space needs preserve", text: "Net yield: ", wantSpace: "preserve"},
		{name: "trailing tab needs preserve", text: "Total\t", wantSpace: "preserve"},
		{name: "interior space alone does not", text: "22,000 sq ft", wantSpace: ""},
		{name: "empty string keeps a text element", text: "", wantSpace: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{
				Properties: &RunProperties{Raw: []byte("<w:rPr><w:b></w:b></w:rPr>")},
				Content: []RunContent{
					&Text{Value: "old"},
					&Tab{},
					&Text{Value: "content"},
				},
			}
			run.SetText(tt.text)

			if len(run.Content) != 1 {
				t.Fatalf("expected 1 content element after SetText, got %d", len(run.Content))
			}
			text, ok := run.Content[0].(*Text)
			if !ok {
				t.Fatalf("expected *Text, got %T", run.Content[0])
			}
			if text.Value != tt.text {
				t.Errorf("text value = %q, want %q", text.Value, tt.text)
			}
			if text.Space != tt.wantSpace {
				t.Errorf("xml:space = %q, want %q", text.Space, tt.wantSpace)
			}
			if got := run.GetText(); got != tt.text {
				t.Errorf("GetText() after SetText = %q, want %q", got, tt.text)
			}
			if run.Properties == nil || string(run.Properties.Raw) != "<w:rPr><w:b></w:b></w:rPr>" {
				t.Error("SetText must leave run properties untouched")
			}
		})
	}
}

func TestNewTextRun(t *testing.T) {
	props := &RunProperties{Bold: true}
	run := NewTextRun(" indented", props)

	if run.Properties != props {
		t.Error("expected properties to be attached as given")
	}
	if got := run.GetText(); got != " indented" {
		t.Errorf("GetText() = %q, want %q", got, " indented")
	}
	text, ok := run.Content[0].(*Text)
	if !ok {
		t.Fatalf("expected *Text, got %T", run.Content[0])
	}
	if text.Space != "preserve" {
		t.Errorf("expected xml:space=preserve for leading space, got %q", text.Space)
	}
}

func TestNewPageBreakRun(t *testing.T) {
	run := NewPageBreakRun()

	if len(run.Content) != 1 {
		t.Fatalf("expected 1 content element, got %d", len(run.Content))
	}
	br, ok := run.Content[0].(*Break)
	if !ok {
		t.Fatalf("expected *Break, got %T", run.Content[0])
	}
	if len(br.Attrs) != 1 || br.Attrs[0].Name.Local != "w:type" || br.Attrs[0].Value != "page" {
		t.Errorf("expected w:type=page attribute, got %v", br.Attrs)
	}
	if got := run.GetText(); got != "\n" {
		t.Errorf("GetText() = %q, want %q", got, "\n")
	}
}
