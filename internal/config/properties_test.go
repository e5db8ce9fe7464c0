package config_test

import (
	"testing"

	"github.com/flowstage/xplat-exec-core/internal/config"
)

func TestStaticPropertiesGetOptionalStringProperty(t *testing.T) {
	p := &config.StaticProperties{Values: map[string]string{"a": "1"}}

	v, ok := p.GetOptionalStringProperty("a")
	if !ok || v != "1" {
		t.Fatalf("got (%q, %v), want (\"1\", true)", v, ok)
	}

	_, ok = p.GetOptionalStringProperty("missing")
	if ok {
		t.Fatal("expected ok=false for a missing key")
	}
}

func TestNoUdfSelectivityProviderAlwaysFails(t *testing.T) {
	var provider config.UdfSelectivityProvider = config.NoUdfSelectivityProvider{}

	_, err := provider.ProvideFor("some.predicate")
	if err == nil {
		t.Fatal("expected an error from the no-op provider")
	}
	var noProvider *config.NoProviderError
	if _, ok := err.(*config.NoProviderError); !ok {
		t.Fatalf("expected *NoProviderError, got %T", err)
	}
	_ = noProvider
}

func TestStaticPropertiesReturnsConfiguredUdfProvider(t *testing.T) {
	stub := config.NoUdfSelectivityProvider{}
	p := &config.StaticProperties{UdfSelectivity: stub}

	if p.GetUdfSelectivityProvider() != stub {
		t.Fatal("expected GetUdfSelectivityProvider to return the configured provider")
	}
}
