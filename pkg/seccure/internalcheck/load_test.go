package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

var libraryPackages = []string{
	"github.com/hsiuhsiu/seccure-go/pkg/seccure",
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec",
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve",
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/dh",
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/ecdsa",
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/ecies",
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/exponent",
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem",
	"github.com/hsiuhsiu/seccure-go/internal/backend",
}

func loadLibrary(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{Mode: mode}
	pkgs, err := packages.Load(cfg, libraryPackages...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if n := packages.PrintErrors(pkgs); n > 0 {
		t.Fatalf("%d errors loading packages", n)
	}
	if len(pkgs) != len(libraryPackages) {
		t.Fatalf("loaded %d packages, want %d", len(pkgs), len(libraryPackages))
	}
	return pkgs
}
