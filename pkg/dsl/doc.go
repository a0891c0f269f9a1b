/*
Package dsl builds scene catalogs in Go instead of scene files.

It is useful for tests, for generated exhibits and for hosts that embed
sceneflow as a library:

	b := dsl.New().Restart("intro")

	b.Scene("intro").Entry().Dwell(5).Notes("Welcome")
	b.Scene("gallery").Music("music/gallery.wav")
	b.Scene("outro").Dwell(8)
	b.Chain("intro", "gallery", "outro")

	catalog, err := b.Build()
	// engine, err := sceneflow.New("exhibit", sceneflow.WithCatalog(catalog))
*/
package dsl
