package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestContainerConfig_DefaultsAreValid(t *testing.T) {
	probe := &cobra.Command{Use: "probe"}
	addContainerFlags(probe)

	if err := probe.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}
	if err := bindContainerFlags(probe, nil); err != nil {
		t.Fatalf("bindContainerFlags returned error: %v", err)
	}

	cfg := containerConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default flag configuration should validate, got: %v", err)
	}
	if cfg.Engine != "memory" {
		t.Fatalf("expected memory engine by default, got %q", cfg.Engine)
	}
}

func TestContainerConfig_FlagOverrides(t *testing.T) {
	probe := &cobra.Command{Use: "probe"}
	addContainerFlags(probe)

	if err := probe.PersistentFlags().Set("store-engine", "redis"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := probe.PersistentFlags().Set("codec", "msgpack"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := probe.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}
	if err := bindContainerFlags(probe, nil); err != nil {
		t.Fatalf("bindContainerFlags returned error: %v", err)
	}

	cfg := containerConfig()
	if cfg.Engine != "redis" {
		t.Fatalf("expected redis engine, got %q", cfg.Engine)
	}
	if cfg.Codec != "msgpack" {
		t.Fatalf("expected msgpack codec, got %q", cfg.Codec)
	}
}
