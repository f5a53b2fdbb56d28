package event

import "testing"

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{
			name: "file/d share link",
			raw:  "https://drive.google.com/file/d/ABC123/view?usp=sharing",
			want: "https://lh3.googleusercontent.com/d/ABC123",
		},
		{
			name: "open?id= link",
			raw:  "https://drive.google.com/open?id=1a-B_c",
			want: "https://lh3.googleusercontent.com/d/1a-B_c",
		},
		{
			name: "id parameter after another parameter",
			raw:  "https://drive.google.com/uc?export=view&id=XYZ",
			want: "https://lh3.googleusercontent.com/d/XYZ",
		},
		{
			name: "query id wins over path id",
			raw:  "https://drive.google.com/file/d/PATH/view?id=QUERY",
			want: "https://lh3.googleusercontent.com/d/QUERY",
		},
		{
			name: "plain absolute URL passes through",
			raw:  "https://example.com/poster.png",
			want: "https://example.com/poster.png",
		},
		{
			name: "trimmed before use",
			raw:  "  http://example.com/a.jpg ",
			want: "http://example.com/a.jpg",
		},
		{"relative path is dropped", "images/poster.png", ""},
		{"free text is dropped", "see poster board", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeImageURL(tt.raw); got != tt.want {
				t.Errorf("NormalizeImageURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
