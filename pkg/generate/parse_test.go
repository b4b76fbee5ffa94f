package generate

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"type":"class"}`,
			want: `{"type":"class"}`,
		},
		{
			name: "fenced with language tag",
			in:   "```json\n{\"type\":\"class\"}\n```",
			want: `{"type":"class"}`,
		},
		{
			name: "fenced without language tag",
			in:   "```\n{\"type\":\"class\"}\n```",
			want: `{"type":"class"}`,
		},
		{
			name: "prose around object",
			in:   `Here is the diagram: {"type":"class","classes":[]} hope that helps!`,
			want: `{"type":"class","classes":[]}`,
		},
		{
			name: "nested braces",
			in:   `{"a":{"b":{"c":1}},"d":2} trailing`,
			want: `{"a":{"b":{"c":1}},"d":2}`,
		},
		{
			name: "braces inside strings ignored",
			in:   `{"label":"if {x} then"} extra`,
			want: `{"label":"if {x} then"}`,
		},
		{
			name: "escaped quote inside string",
			in:   `{"label":"say \"}\" now"} extra`,
			want: `{"label":"say \"}\" now"}`,
		},
		{
			name: "top-level array",
			in:   `result: [1,2,3] done`,
			want: `[1,2,3]`,
		},
		{
			name: "unterminated object returned as-is from start",
			in:   `prefix {"a":1`,
			want: `{"a":1`,
		},
		{
			name: "no json at all",
			in:   "sorry, I cannot help with that",
			want: "sorry, I cannot help with that",
		},
		{
			name: "whitespace only trimmed",
			in:   "  \n {\"a\":1} \n ",
			want: `{"a":1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
