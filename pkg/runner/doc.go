/*
Package runner implements the host loop that drives sceneflow controllers.

It is the bridge between the per-scene state machine and the outside world: it
samples the input buttons once per frame, ticks the active controller and acts on
the returned outcome by loading the next scene or the restart scene.

# Key Components

  - Director: the SceneLoader. Owns the active controller, the activation counter
    and a read-safe snapshot for operator surfaces.
  - Runner: the frame loop. Step advances a single tick; Run drives Step from a ticker.
  - CombineInputs: merges keyboard, HTTP, Redis and MQTT buttons into one source.
  - LineInput: operator commands ("skip", "reset") read line by line, for headless hosts.
  - SignalManager: SIGINT/SIGTERM handling for the CLI.

# Usage

	director := runner.NewDirector(engine)
	r := runner.New(director,
		runner.WithInput(runner.CombineInputs(keyboard, httpInput)),
		runner.WithPresenter(screen),
		runner.WithTickRate(60),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
