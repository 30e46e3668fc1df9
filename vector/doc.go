// Package vector implements the structure-of-arrays column store shared by
// every stand-level collection (reference trees, tree strata): a set of
// named, equal-length, contiguous columns with create/read/update/delete,
// and a finalize/copy-on-write lifecycle that lets branch forks share
// unchanged columns instead of deep-copying the whole collection.
//
// A Store owns an ordered set of named Columns. Finalize marks every column
// read-only and returns a shallow clone sharing the same backing arrays;
// any later mutation of a shared column first clones that column's backing
// array (ensureOwned), leaving every other column byte-identical to the
// parent's, per the branch-fork invariant in the simulation core's spec.
//
// Errors:
//
//	ErrColumnNotFound  operation referenced an undeclared column name
//	ErrLengthMismatch  supplied row data does not match the store's schema
//	ErrIndexOutOfRange delete/update/read index outside [0, size)
//	ErrUnknownKind     Field.Kind not one of the declared Kind constants
package vector
