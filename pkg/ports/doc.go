/*
Package ports defines the driven ports (interfaces) of the scene flow.

These interfaces decouple the flow state machine from the installation it runs
in: input hardware, the scene loader, the overlay renderer and the audio
system are all reached through them, so the same controller can run in a
terminal kiosk, a headless service or a test.

# Key Interfaces

  - InputSource: the two logical buttons, polled fresh every tick.
  - SceneLoader: switches to a scene by name; once called the old scene is discarded.
  - OpacityOutput / VolumeOutput: write-only sinks for the overlay and the music volume.
  - SceneCatalog: resolves scene names to their FlowConfig.
  - Presenter / StatusPublisher: consumers of per-tick snapshots.
*/
package ports
