// Package memhost provides an in-memory host backend for the runtime.
//
// It implements runtime.HostOps over a plain node tree, counts every
// mutation by kind, and serializes subtrees to an HTML-like string. The
// package backs the runtime's tests and benchmarks and works headless
// anywhere a real display tree is unavailable.
//
//	doc := memhost.NewDocument()
//	app := runtime.NewApp(doc.Ops(), root)
//	app.Mount(doc.Body())
//	fmt.Println(doc.Body().HTML())
package memhost
