/*
Package sceneflow drives the scene-to-scene flow of an interactive installation
(museum kiosk, VR exhibit, attract loop).

Each scene fades in from black, dwells for a configured time (or until a visitor
presses Skip), fades out while crossfading its background music to silence, then
hands control to the next scene. A scene without a next scene ends the experience
and waits for Reset. Reset is honored on every tick, in every phase, and reloads
the scene's restart target.

# Concept

The flow of a single scene activation is a small, deterministic state machine
(internal/runtime.Controller) advanced by a per-frame Tick. It never blocks and
never loads scenes by itself: a Tick returns an Outcome and the host, usually
runner.Director, acts on it. Scenes come from a ports.SceneCatalog; the fade
overlay and music volume are ports.OpacityOutput and ports.VolumeOutput.

# Usage

	eng, err := sceneflow.New("./exhibit")
	if err != nil {
		log.Fatal(err)
	}

	director := runner.NewDirector(eng)
	r := runner.New(director, runner.WithInput(keyboard))
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}

# Catalogs

A directory is read as a Loam repository of markdown documents whose frontmatter
holds the flow settings (dwell_seconds, next, restart, is_entry, music) and whose
body becomes the scene notes. A single .yaml file can hold every scene under a
"scenes" key. Any other source can be plugged in with WithCatalog.
*/
package sceneflow
