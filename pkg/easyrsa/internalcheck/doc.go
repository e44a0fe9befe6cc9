// Package internalcheck holds source-policy tests for the easyrsa packages.
//
// The tests load the non-test sources with golang.org/x/tools/go/packages
// and fail on patterns that leak or weaken key material: byte slices
// compared with ==, %x formatting, and imports of math/rand.
package internalcheck
