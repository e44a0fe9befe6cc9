package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const pattern = "github.com/coinbase/easyrsa-go/pkg/easyrsa/..."

func loadPackages(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{Mode: mode}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages matching %s have errors", pattern)
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages match %s", pattern)
	}
	return pkgs
}
