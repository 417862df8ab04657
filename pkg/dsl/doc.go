/*
Package dsl provides a fluent Go builder for state layouts.

It is the programmatic alternative to layout.yaml and Loam directories, useful
for tests and for hosts that already know their machine at compile time.

	b := dsl.New()

	b.State("idle").
		At(0, 0).Size(120, 40).
		On("start", "go", "busy")

	b.State("busy").
		At(200, 0).Size(120, 40).
		Go("idle")

	catalog, err := b.Build()
*/
package dsl
