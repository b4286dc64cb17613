package builder

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"

	"github.com/yuin/goldmark"

	"github.com/SpkEazy/Auction-Onsite-Builder/internal/assets"
)

// templateLoader produces the populated, mounted page markup for a
// variant and form snapshot.
type templateLoader interface {
	Load(ctx context.Context, variant Variant, form FormData, rec BrokerRecord) (string, error)
}

// Compile-time interface check.
var _ templateLoader = (*assetTemplateLoader)(nil)

// shellTemplateName is the page shell holding the per-variant mount slots.
const shellTemplateName = "shell"

// tokenPattern matches {{name}} placeholders in variant markup.
var tokenPattern = regexp.MustCompile(`\{\{[a-zA-Z0-9_]+\}\}`)

// assetTemplateLoader fetches variant markup from the asset resolver,
// substitutes form values and mounts the result into the page shell.
type assetTemplateLoader struct {
	loader   assets.Loader
	markdown goldmark.Markdown
}

func newAssetTemplateLoader(loader assets.Loader) *assetTemplateLoader {
	return &assetTemplateLoader{
		loader:   loader,
		markdown: goldmark.New(),
	}
}

// Load fetches the variant's markup, replaces every {{field}} token with
// the form value (absent fields become empty strings), and mounts the
// subtree into the shell's slot for the variant, replacing any previous
// content.
func (l *assetTemplateLoader) Load(ctx context.Context, variant Variant, form FormData, rec BrokerRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	spec := variantSpecs[variant]

	markup, err := l.loader.LoadTemplate(spec.Template)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	shell, err := l.loader.LoadTemplate(shellTemplateName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	markup = substituteTokens(markup, form.tokens(rec, l.renderDescription(form.Description)))

	mounted, ok := setElementHTML(shell, spec.Slot, markup)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMountTargetMissing, spec.Slot)
	}

	return mounted, nil
}

// substituteTokens replaces every {{name}} placeholder in one
// left-to-right scan of the document. Names with no field blank out,
// and substituted values are placed verbatim, never rescanned, so the
// result is independent of field order.
func substituteTokens(markup string, tokens map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(markup, func(tok string) string {
		return tokens[tok[2:len(tok)-2]]
	})
}

// renderDescription converts the optional markdown listing description to
// HTML. A conversion failure degrades to the escaped plain text rather
// than aborting the render.
func (l *assetTemplateLoader) renderDescription(md string) string {
	if md == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := l.markdown.Convert([]byte(md), &buf); err != nil {
		return html.EscapeString(md)
	}
	return buf.String()
}
