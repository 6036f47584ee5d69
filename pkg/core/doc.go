// Package core contains the pure data model shared by Quill's builder,
// renderer, and adapters: the condition tree for WHERE/HAVING/ON predicates,
// mutable parameter cells, raw SQL expressions, and the closed operator set.
//
// Nothing in this package renders SQL or talks to a database. Rendering
// behavior lives in pkg/qb, dialect rules in pkg/dialect, and execution in
// pkg/adapter.
package core
