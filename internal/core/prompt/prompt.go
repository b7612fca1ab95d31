// Package prompt renders the fixed instruction templates sent to the backend
// model and decomposes its completions. Rendering is deterministic: identical
// sanitized input always produces byte-identical prompt text.
package prompt

import (
	"fmt"
	"strings"
)

const translationTemplate = `Translate the following text to %s:

Title: %s
Body: %s
Section: %s

Rules:
- Translate the text after each label and keep the Title:/Body:/Section: labels exactly as they are, one field per line.
- Provide only one translation, no alternatives or explanations.
- Use a neutral, formal, and clear style. Avoid slang or regional idioms.
- Do not wrap the answer in markdown and do not say "Here is your translation".`

// Translation renders the translation instruction for one request. The
// Title:/Body:/Section: labels let ParseTranslation split the completion back
// into fields.
func Translation(title, body, section, targetLanguage string) string {
	return fmt.Sprintf(translationTemplate, targetLanguage, title, body, section)
}

const summaryTemplateEN = `You are an AI specialized in creating engaging article descriptions. Given the blog article below, generate a description that provides a clear idea of its content while encouraging readers to explore further. Rules:
Always write in the same language as the original article.
Style: neutral, professional, and clear. Avoid slang, exaggeration, or personal commentary.
Purpose: create a teaser that sparks curiosity without fully revealing the article.
Output only the description text (no titles, labels, or explanations).
Length: a single paragraph of 30 to 40 words.
%s`

const summaryTemplateES = `Eres una IA especializada en crear descripciones atractivas de artículos. En función del artículo de blog al final de las instrucciones, genera una descripción que proporcione una idea clara de su contenido mientras anima a los lectores a explorar más. Reglas:
Siempre escribe en el mismo idioma que el artículo original.
Estilo: neutral, profesional y claro. Evita la jerga, la exageración o los comentarios personales.
Propósito: crear una pequeña introducción que despierte la curiosidad sin revelar completamente el artículo.
Salida: solo el texto de la descripción (sin títulos, etiquetas ni explicaciones).
Longitud: un solo párrafo de 30 a 40 palabras.
%s`

// Summary renders the article-teaser instruction. Language selects the
// Spanish template for "es", the English one otherwise.
func Summary(article, language string) string {
	if language == "es" {
		return fmt.Sprintf(summaryTemplateES, article)
	}
	return fmt.Sprintf(summaryTemplateEN, article)
}

// Fields is a completion decomposed back into the request's field boundaries.
type Fields struct {
	Title   string
	Body    string
	Section string
}

// ParseTranslation splits a completion on the Title:/Body:/Section: labels
// the prompt asked the model to preserve. Models do not always follow
// instructions: when no label is found the whole completion lands in Body so
// nothing the backend produced is silently dropped.
func ParseTranslation(completion string) Fields {
	var f Fields
	current := ""
	seen := false

	appendTo := func(field string, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		var dst *string
		switch field {
		case "title":
			dst = &f.Title
		case "body":
			dst = &f.Body
		case "section":
			dst = &f.Section
		default:
			return
		}
		if *dst == "" {
			*dst = text
		} else {
			*dst += " " + text
		}
	}

	for _, line := range strings.Split(completion, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "title:"):
			current = "title"
			seen = true
			appendTo(current, trimmed[len("title:"):])
		case strings.HasPrefix(lower, "body:"):
			current = "body"
			seen = true
			appendTo(current, trimmed[len("body:"):])
		case strings.HasPrefix(lower, "section:"):
			current = "section"
			seen = true
			appendTo(current, trimmed[len("section:"):])
		default:
			// Continuation of the last labelled field.
			appendTo(current, trimmed)
		}
	}

	if !seen {
		f = Fields{Body: strings.TrimSpace(completion)}
	}
	return f
}
