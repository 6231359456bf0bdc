// Package decl defines the symbol tree produced by a header scan: an
// ownership tree of namespaces, structs/classes, enums and their
// members, rooted at an implicit global namespace.
//
// Nodes hold raw source text for everything the scanner does not
// interpret: default values, array sizes, enum entry values, parameter
// types and inline bodies are verbatim slices of the input. Duplicate
// names are preserved in source order; downstream consumers decide what
// duplicates mean.
//
// Builder owns the frame stack during a scan. Nodes are created when
// their opening construct is recognized, populated incrementally, and
// sealed into their parent in source order when the closing brace is
// consumed.
package decl
