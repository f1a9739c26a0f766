// Package transform rewrites the string fields of decoded schema structs in
// place. It is meant to be called from [librarian.Normalizer] implementations:
//
//	func (b *BookFields) Normalize() {
//	    transform.TrimSpace(b)
//	}
//
// Fields that must reach validation untouched, such as passwords, are tagged
// `transform:"-"`.
package transform
