// Package internalcheck holds source policy tests for the seccure packages.
//
// The tests load the library packages with golang.org/x/tools/go/packages
// and inspect their syntax trees:
//
//   - byte slices and arrays are never compared with == or != (tags and keys
//     go through crypto/hmac or crypto/subtle);
//   - format strings never use %x, which is how secrets end up in logs;
//   - math/rand is never imported.
//
// The package has no exported API.
package internalcheck
