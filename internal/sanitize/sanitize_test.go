package sanitize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "safe name unchanged",
			input: "My File.txt",
			want:  "My File.txt",
		},
		{
			name:  "closing parenthesis may end a name",
			input: "report(final).txt",
			want:  "report(final).txt",
		},
		{
			name:  "smb invalid characters become hyphens",
			input: "My:File*.doc",
			want:  "My-File.doc",
		},
		{
			name:  "angle brackets collapse before extension",
			input: "file<>.txt",
			want:  "file.txt",
		},
		{
			name:  "question mark run collapses",
			input: "a??b.mp3",
			want:  "a-b.mp3",
		},
		{
			name:  "tab becomes hyphen",
			input: "a\tb",
			want:  "a-b",
		},
		{
			name:  "no-break space becomes regular space",
			input: "a\u00a0b.txt",
			want:  "a b.txt",
		},
		{
			name:  "dash variant run collapses to one hyphen",
			input: "a\u2013\u2014b",
			want:  "a-b",
		},
		{
			name:  "combining diacritic dropped before extension",
			input: "e\u0301.txt",
			want:  "e.txt",
		},
		{
			name:  "leading star keeps sort intent",
			input: "*sort.txt",
			want:  "_sort.txt",
		},
		{
			name:  "brackets become hyphens and leading hyphen trims",
			input: "[2024] notes.txt",
			want:  "2024- notes.txt",
		},
		{
			name:  "leading hyphen stripped",
			input: "-leading.txt",
			want:  "leading.txt",
		},
		{
			name:  "leading and pre-extension spaces stripped",
			input: " spaced .txt",
			want:  "spaced.txt",
		},
		{
			name:  "space before extension dropped",
			input: "name .txt",
			want:  "name.txt",
		},
		{
			name:  "trailing period stripped",
			input: "trailing.",
			want:  "trailing",
		},
		{
			name:  "original trailing hyphen stripped in base pass",
			input: "file-",
			want:  "file",
		},
		{
			name:  "period runs collapse",
			input: "weird..name.txt",
			want:  "weird.name.txt",
		},
		{
			name:  "space-period runs collapse",
			input: "April ....doc",
			want:  "April.doc",
		},
		{
			name:  "reserved stem escaped before extension",
			input: "CON.txt",
			want:  "CON_.txt",
		},
		{
			name:  "reserved stem escaped lowercase",
			input: "con",
			want:  "con_",
		},
		{
			name:  "reserved com port escaped",
			input: "COM7.log",
			want:  "COM7_.log",
		},
		{
			name:  "reserved lpt port escaped",
			input: "LPT99",
			want:  "LPT99_",
		},
		{
			name:  "non-reserved lookalike untouched",
			input: "COMX.txt",
			want:  "COMX.txt",
		},
		{
			name:  "hidden file untouched",
			input: ".hidden",
			want:  ".hidden",
		},
		{
			name:  "empty name becomes placeholder",
			input: "",
			want:  PlaceholderUnnamed,
		},
		{
			name:  "star alone becomes placeholder",
			input: "*",
			want:  PlaceholderUnnamed,
		},
		{
			name:  "periods alone become placeholder",
			input: "...",
			want:  PlaceholderUnnamed,
		},
		{
			name:  "invalid characters alone keep extension",
			input: "***.txt",
			want:  PlaceholderFile + ".txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"My:File*.doc",
		"CON.txt",
		"con",
		"CON_",
		"weird..name.txt",
		"April ....doc",
		"*sort.txt",
		"[2024] notes.txt",
		"a\u00a0b.txt",
		"a\u2013\u2014b",
		" spaced .txt",
		"file<>.txt",
		"...",
		"*",
		"",
		".hidden",
		"..hidden",
		"...doc",
		"normal.txt",
	}

	for _, input := range inputs {
		once, _ := Clean(input)
		twice, _ := Clean(once)
		if twice != once {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestClean_SafeNamesReturnedVerbatim(t *testing.T) {
	safe := []string{
		"report.pdf",
		"My File.txt",
		"photo (1).jpg",
		".gitignore",
		"2024-01-15 minutes.doc",
	}

	for _, name := range safe {
		if NeedsCleaning(name) {
			t.Errorf("NeedsCleaning(%q) = true, want false", name)
			continue
		}
		got, warnings := Clean(name)
		if got != name {
			t.Errorf("Clean(%q) = %q, want identical", name, got)
		}
		if len(warnings) != 0 {
			t.Errorf("Clean(%q) produced warnings %v, want none", name, warnings)
		}
	}
}

func TestClean_NeverEmpty(t *testing.T) {
	inputs := []string{"", "*", "...", "---", "???", " ", "\t", "-", "."}

	for _, input := range inputs {
		got, _ := Clean(input)
		if got == "" {
			t.Errorf("Clean(%q) returned an empty name", input)
		}
	}
}

func TestClean_EmptyResultWarns(t *testing.T) {
	_, warnings := Clean("***")
	if len(warnings) == 0 {
		t.Fatal("expected a warning for a name that cleans to nothing")
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "empty") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings %v do not mention emptiness", warnings)
	}
}

func TestNeedsCleaning(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"clean name", "notes.txt", false},
		{"empty", "", true},
		{"smb invalid character", "a:b.txt", true},
		{"control character", "a\x07b", true},
		{"no-break space", "a\u00a0b", true},
		{"reserved device name", "NUL", true},
		{"reserved with extension", "prn.doc", true},
		{"double period", "a..b", true},
		{"double hyphen", "a--b", true},
		{"leading space", " a.txt", true},
		{"leading hyphen", "-a.txt", true},
		{"trailing space", "a.txt ", true},
		{"trailing underscore", "a_", true},
		{"trailing parenthesis ok", "a(1)", false},
		{"space before period", "a .txt", true},
		{"single dash variant ok", "a\u2013b.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsCleaning(tt.input); got != tt.want {
				t.Errorf("NeedsCleaning(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		input    string
		wantBase string
		wantExt  string
	}{
		{"file.txt", "file", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{"trailing.", "trailing.", ""},
		{".hidden", ".hidden", ""},
		{"..hidden", "..hidden", ""},
		{"a.b-c", "a.b-c", ""},
	}

	for _, tt := range tests {
		base, ext := SplitExt(tt.input)
		if base != tt.wantBase || ext != tt.wantExt {
			t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)",
				tt.input, base, ext, tt.wantBase, tt.wantExt)
		}
	}
}

func TestIsReserved(t *testing.T) {
	reserved := []string{"CON", "con", "PRN.txt", "aux.doc", "NUL", "COM1", "COM99", "LPT1", "lpt42.log"}
	for _, name := range reserved {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false, want true", name)
		}
	}

	notReserved := []string{"CONSOLE", "COM0", "COM100", "LPT0", "AUXILIARY.txt", "console.con"}
	for _, name := range notReserved {
		if IsReserved(name) {
			t.Errorf("IsReserved(%q) = true, want false", name)
		}
	}
}
