package sceneflow_test

import (
	"fmt"
	"log"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
)

// ExampleNew_memory demonstrates the Engine with an in-memory catalog and a host
// that ticks the controller by hand.
func ExampleNew_memory() {
	lobby := domain.NewFlowConfig("lobby", "lobby")
	lobby.IsEntryScene = true
	lobby.DwellSeconds = 0
	lobby.NextScene = "gallery"

	gallery := domain.NewFlowConfig("gallery", "lobby")

	engine, err := sceneflow.New("", sceneflow.WithCatalog(memory.NewCatalog(lobby, gallery)))
	if err != nil {
		log.Fatal(err)
	}

	ctrl, err := engine.Activate(engine.EntryScene())
	if err != nil {
		log.Fatal(err)
	}

	for {
		out := ctrl.Tick(1.0, domain.InputSample{})
		fmt.Printf("%s opacity=%.1f\n", ctrl.State().Phase, ctrl.Opacity())
		if out.Kind != domain.OutcomeNone {
			fmt.Println(out.Kind, out.Scene)
			break
		}
	}

	// Output:
	// fading_out opacity=0.5
	// load_requested opacity=1.0
	// load gallery
}
