/*
Package domain contains the core models of the scene flow state machine.

It defines the per-scene configuration, the phases a scene moves through, the
input sample polled each tick and the outcomes a tick hands back to the host.
This package is kept pure and free of I/O, following the same hexagonal split
as the rest of sceneflow: the runtime drives these types, adapters only read
and write them.

# Key Entities

  - FlowConfig: immutable settings of one scene (entry flag, dwell, next and restart scenes).
  - Phase: FadingIn, Waiting, FadingOut, Ended and the two terminal request phases.
  - InputSample: the skip/reset buttons as sampled for a single tick.
  - Outcome: what the host must do after a tick (nothing, load a scene, reset, or note the end).
  - Snapshot: a read-only copy of a running scene, used by status surfaces.
*/
package domain
