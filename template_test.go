package builder

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTemplateLoaderLoad(t *testing.T) {
	t.Parallel()

	loader := newAssetTemplateLoader(&stubAssets{templates: map[string]string{
		"social": `<div id="capture-container-social"><span>{{headline}}</span><span>{{city}}</span><span>{{nosuchfield}}</span></div>`,
		"shell":  `<html><body><div id="social-preview">stale</div></body></html>`,
	}})

	form := FormData{Headline: "ON AUCTION", City: "Cape Town"}
	got, err := loader.Load(context.Background(), VariantSocial, form, BrokerRecord{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !strings.Contains(got, "<span>ON AUCTION</span>") {
		t.Errorf("headline token not substituted: %q", got)
	}
	if !strings.Contains(got, "<span>Cape Town</span>") {
		t.Errorf("city token not substituted: %q", got)
	}
	if strings.Contains(got, "{{") {
		t.Errorf("leftover token survived substitution: %q", got)
	}
	if strings.Contains(got, "stale") {
		t.Errorf("previous slot content not replaced: %q", got)
	}
}

func TestTemplateLoaderMountReplacesPreviousContent(t *testing.T) {
	t.Parallel()

	loader := newAssetTemplateLoader(&stubAssets{templates: map[string]string{
		"social": `<div id="capture-container-social">{{headline}}</div>`,
		"shell":  `<div id="social-preview"></div>`,
	}})

	first, err := loader.Load(context.Background(), VariantSocial, FormData{Headline: "FIRST"}, BrokerRecord{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := loader.Load(context.Background(), VariantSocial, FormData{Headline: "SECOND"}, BrokerRecord{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !strings.Contains(first, "FIRST") || strings.Contains(first, "SECOND") {
		t.Errorf("first mount = %q", first)
	}
	if !strings.Contains(second, "SECOND") || strings.Contains(second, "FIRST") {
		t.Errorf("second mount = %q", second)
	}
}

func TestTemplateLoaderMissingTemplate(t *testing.T) {
	t.Parallel()

	loader := newAssetTemplateLoader(&stubAssets{templates: map[string]string{
		"shell": `<div id="social-preview"></div>`,
	}})

	_, err := loader.Load(context.Background(), VariantSocial, FormData{}, BrokerRecord{})
	if !errors.Is(err, ErrTemplateLoad) {
		t.Errorf("Load() error = %v, want ErrTemplateLoad", err)
	}
}

func TestTemplateLoaderMissingSlot(t *testing.T) {
	t.Parallel()

	loader := newAssetTemplateLoader(&stubAssets{templates: map[string]string{
		"social": `<div id="capture-container-social"></div>`,
		"shell":  `<html><body></body></html>`,
	}})

	_, err := loader.Load(context.Background(), VariantSocial, FormData{}, BrokerRecord{})
	if !errors.Is(err, ErrMountTargetMissing) {
		t.Errorf("Load() error = %v, want ErrMountTargetMissing", err)
	}
}

func TestTemplateLoaderCancelledContext(t *testing.T) {
	t.Parallel()

	loader := newAssetTemplateLoader(&stubAssets{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.Load(ctx, VariantSocial, FormData{}, BrokerRecord{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestSubstituteTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		tokens map[string]string
		want   string
	}{
		{
			name:   "repeated token replaced everywhere",
			markup: "{{city}} / {{city}}",
			tokens: map[string]string{"city": "Durban"},
			want:   "Durban / Durban",
		},
		{
			name:   "unknown token blanked",
			markup: "a {{mystery}} b",
			tokens: map[string]string{},
			want:   "a  b",
		},
		{
			name:   "literal replacement keeps markup around tokens",
			markup: `<span class="fit">{{tag1}}</span>`,
			tokens: map[string]string{"tag1": "NO RESERVE"},
			want:   `<span class="fit">NO RESERVE</span>`,
		},
		{
			name:   "value containing token syntax is not reinterpreted",
			markup: "<div>{{headline}}</div><div>{{city}}</div>",
			tokens: map[string]string{"headline": "{{city}}", "city": "Cape Town"},
			want:   "<div>{{city}}</div><div>Cape Town</div>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Map iteration order must not leak into the output.
			for i := 0; i < 50; i++ {
				if got := substituteTokens(tt.markup, tt.tokens); got != tt.want {
					t.Fatalf("substituteTokens() = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestRenderDescription(t *testing.T) {
	t.Parallel()

	loader := newAssetTemplateLoader(&stubAssets{})

	if got := loader.renderDescription(""); got != "" {
		t.Errorf("renderDescription(\"\") = %q, want empty", got)
	}

	got := loader.renderDescription("A **spacious** family home.")
	if !strings.Contains(got, "<strong>spacious</strong>") {
		t.Errorf("renderDescription() = %q, want rendered emphasis", got)
	}
}
