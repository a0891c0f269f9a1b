package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/sceneflow/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedScenes []string
	CurrentScene  string
}

// GenerateMermaid produces a Mermaid flowchart of the scene graph.
// It applies semantic styling:
// - Entry scene: ((Circle))
// - Terminal scene (no next): ([Stadium])
// - Default: [Rectangle]
// Every label carries the dwell time. Next links are solid, reset links dotted.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(scenes []domain.FlowConfig, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, scene := range scenes {
		safeID := sanitizeMermaidID(scene.Name)

		opener, closer := "[", "]"
		switch {
		case scene.IsEntryScene:
			opener, closer = "((", "))"
		case scene.IsTerminal():
			opener, closer = "([", "])"
		}

		dwell := strconv.FormatFloat(scene.DwellSeconds, 'f', -1, 64)
		fmt.Fprintf(&sb, "    %s%s\"%s <br/> ⏱️ %ss\"%s\n", safeID, opener, scene.Name, dwell, closer)

		if scene.NextScene != "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, sanitizeMermaidID(scene.NextScene))
		}
		if scene.RestartScene != "" {
			fmt.Fprintf(&sb, "    %s -. reset .-> %s\n", safeID, sanitizeMermaidID(scene.RestartScene))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, name := range overlay.VisitedScenes {
			safeID := sanitizeMermaidID(name)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentScene != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentScene))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
