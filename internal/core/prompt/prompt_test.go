package prompt

import (
	"strings"
	"testing"
)

func TestTranslationDeterministic(t *testing.T) {
	a := Translation("Hello", "World", "news", "spanish")
	b := Translation("Hello", "World", "news", "spanish")
	if a != b {
		t.Fatalf("identical input produced different prompts:\n%s\n---\n%s", a, b)
	}
}

func TestTranslationContainsFields(t *testing.T) {
	p := Translation("My Title", "My Body", "culture", "french")
	for _, want := range []string{
		"Translate the following text to french:",
		"Title: My Title",
		"Body: My Body",
		"Section: culture",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestSummaryLanguageSelection(t *testing.T) {
	en := Summary("some article", "en")
	es := Summary("algún artículo", "es")

	if !strings.Contains(en, "engaging article descriptions") {
		t.Fatalf("english template not selected:\n%s", en)
	}
	if !strings.Contains(es, "descripciones atractivas") {
		t.Fatalf("spanish template not selected:\n%s", es)
	}
	if !strings.Contains(en, "some article") {
		t.Fatalf("article body missing from english prompt")
	}
	if !strings.Contains(es, "algún artículo") {
		t.Fatalf("article body missing from spanish prompt")
	}
}

func TestParseTranslation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Fields
	}{
		{
			name: "well formed",
			in:   "Title: Hola\nBody: Mundo\nSection: noticias",
			want: Fields{Title: "Hola", Body: "Mundo", Section: "noticias"},
		},
		{
			name: "case insensitive labels",
			in:   "title: Hola\nBODY: Mundo",
			want: Fields{Title: "Hola", Body: "Mundo"},
		},
		{
			name: "continuation lines join the previous field",
			in:   "Title: Hola\nBody: primera línea\nsegunda línea",
			want: Fields{Title: "Hola", Body: "primera línea segunda línea"},
		},
		{
			name: "no labels falls back to body",
			in:   "  Hola Mundo  ",
			want: Fields{Body: "Hola Mundo"},
		},
		{
			name: "empty completion",
			in:   "",
			want: Fields{},
		},
		{
			name: "blank labelled fields stay empty",
			in:   "Title:\nBody: Mundo\nSection:",
			want: Fields{Body: "Mundo"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTranslation(tc.in)
			if got != tc.want {
				t.Fatalf("ParseTranslation(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
