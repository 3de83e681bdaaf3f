// Package ids implements the coordinate-aware hierarchical data tree
// that all physics components communicate through.
//
// The tree mirrors a standardized fusion data schema: [Node] records
// with named fields, resizable [NodeArray] arrays of structures, and
// numeric [FieldArray] values whose coordinates are declared by an
// embedded data dictionary. Assigning array data validates (or
// synthesizes, for implicit 1..N index coordinates) the declared
// coordinates, so coordinate and data lengths can never drift apart.
//
// Parent references are non-owning and exist only so that [Node.Path],
// [Node.Top] and coordinate resolution can walk upward; ownership is
// strictly top-down and a subtree is released by dropping the root
// reference.
package ids
