package util

import "testing"

func TestSHA256Hex(t *testing.T) {
	got := SHA256Hex([]byte("menu"))
	if got != SHA256Hex([]byte("menu")) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "menu.jpg", want: "menu.jpg"},
		{in: " lunch/menu.png ", want: "lunch_menu.png"},
		{in: `dir\menu.jpeg`, want: "dir_menu.jpeg"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "menu\x00.png", want: "menu.png"},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestFileExt(t *testing.T) {
	if got := FileExt("Menu.JPG"); got != "jpg" {
		t.Fatalf("expected jpg, got %q", got)
	}
	if got := FileExt("menu"); got != "" {
		t.Fatalf("expected empty ext, got %q", got)
	}
}
