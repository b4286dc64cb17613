package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedLoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{"shell", "social", "newsletter", "flyer"} {
		content, err := loader.LoadTemplate(name)
		if err != nil {
			t.Errorf("LoadTemplate(%q) error = %v", name, err)
			continue
		}
		if content == "" {
			t.Errorf("LoadTemplate(%q) returned empty markup", name)
		}
	}

	if _, err := loader.LoadTemplate("poster"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(\"poster\") error = %v, want ErrTemplateNotFound", err)
	}
}

func TestEmbeddedLoadImageAlwaysNotFound(t *testing.T) {
	t.Parallel()

	if _, err := NewEmbeddedLoader().LoadImage("red-tag.png"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("LoadImage() error = %v, want ErrImageNotFound", err)
	}
}

func TestEmbeddedLoadBrokerConfig(t *testing.T) {
	t.Parallel()

	content, err := NewEmbeddedLoader().LoadBrokerConfig()
	if err != nil {
		t.Fatalf("LoadBrokerConfig() error = %v", err)
	}
	if !strings.Contains(content, "default:") {
		t.Errorf("broker config missing default record: %q", content)
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		asset   string
		wantErr bool
	}{
		{name: "simple name", asset: "social", wantErr: false},
		{name: "empty", asset: "", wantErr: true},
		{name: "slash", asset: "a/b", wantErr: true},
		{name: "backslash", asset: `a\b`, wantErr: true},
		{name: "dotdot", asset: "..social", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateAssetName(tt.asset)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %v", tt.asset, err, tt.wantErr)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rel     string
		wantErr bool
	}{
		{name: "flat asset", rel: "red-tag.png", wantErr: false},
		{name: "broker subdir", rel: "brokers/jdupreez/broker-photo.jpg", wantErr: false},
		{name: "empty", rel: "", wantErr: true},
		{name: "parent escape", rel: "../secrets.png", wantErr: true},
		{name: "nested escape", rel: "brokers/../../etc/passwd", wantErr: true},
		{name: "absolute", rel: "/etc/passwd", wantErr: true},
		{name: "backslash", rel: `brokers\x`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateImagePath(tt.rel)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.rel, err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "templates", "social.html"), "<div>custom social</div>")
	mustWrite(t, filepath.Join(dir, "images", "red-tag.png"), "fakepng")
	mustWrite(t, filepath.Join(dir, "brokers.yaml"), "default:\n  name: Custom Team\n")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	if got, err := loader.LoadTemplate("social"); err != nil || got != "<div>custom social</div>" {
		t.Errorf("LoadTemplate() = %q, %v", got, err)
	}
	if _, err := loader.LoadTemplate("shell"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(\"shell\") error = %v, want ErrTemplateNotFound", err)
	}

	if got, err := loader.LoadImage("red-tag.png"); err != nil || string(got) != "fakepng" {
		t.Errorf("LoadImage() = %q, %v", got, err)
	}
	if _, err := loader.LoadImage("missing.png"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("LoadImage(\"missing.png\") error = %v, want ErrImageNotFound", err)
	}

	if got, err := loader.LoadBrokerConfig(); err != nil || !strings.Contains(got, "Custom Team") {
		t.Errorf("LoadBrokerConfig() = %q, %v", got, err)
	}
}

func TestNewFilesystemLoaderInvalidPath(t *testing.T) {
	t.Parallel()

	if _, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
	}

	file := filepath.Join(t.TempDir(), "file")
	mustWrite(t, file, "not a dir")
	if _, err := NewFilesystemLoader(file); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewFilesystemLoader(file) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestResolverFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "templates", "social.html"), "<div>override</div>")

	resolver, err := NewResolver(dir)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Fatal("HasCustomLoader() = false with a custom path")
	}

	// Present in the override directory: the custom copy wins.
	if got, err := resolver.LoadTemplate("social"); err != nil || got != "<div>override</div>" {
		t.Errorf("LoadTemplate(\"social\") = %q, %v", got, err)
	}

	// Absent from the override directory: embedded fallback serves it.
	shell, err := resolver.LoadTemplate("shell")
	if err != nil {
		t.Fatalf("LoadTemplate(\"shell\") fallback error = %v", err)
	}
	if shell == "" {
		t.Error("embedded fallback returned empty markup")
	}

	// Broker config falls back to the embedded directory too.
	if got, err := resolver.LoadBrokerConfig(); err != nil || !strings.Contains(got, "default:") {
		t.Errorf("LoadBrokerConfig() = %q, %v", got, err)
	}
}

func TestResolverEmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver(\"\") error = %v", err)
	}
	if resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = true without a custom path")
	}
	if _, err := resolver.LoadTemplate("flyer"); err != nil {
		t.Errorf("LoadTemplate(\"flyer\") error = %v", err)
	}
}

func TestResolverDoesNotFallBackOnValidationErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "templates", "ok.html"), "ok")

	resolver, err := NewResolver(dir)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	if _, err := resolver.LoadImage("../escape.png"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadImage() error = %v, want ErrPathTraversal", err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
