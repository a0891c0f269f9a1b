// Package mqtt lets building-automation panels and wall buttons drive a sceneflow
// installation over MQTT.
//
// Topic layout, for a prefix "sceneflow":
//
//	sceneflow/input/skip    any press payload ("", "1", "true", "on", "press")
//	sceneflow/input/reset   idem
//	sceneflow/status        retained "online"/"offline" (last will)
//	sceneflow/status/scene  retained JSON snapshot on every phase change
package mqtt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
)

var (
	ErrUnknownTopic   = errors.New("mqtt topic is not a sceneflow input")
	ErrInvalidPayload = errors.New("mqtt payload is not a button press")
)

// Topics builds the topic names of an installation.
type Topics struct {
	Prefix string
}

func (t Topics) Input(b domain.Button) string { return t.Prefix + "/input/" + string(b) }
func (t Topics) AllInputs() string            { return t.Prefix + "/input/+" }
func (t Topics) Status() string               { return t.Prefix + "/status" }
func (t Topics) Scene() string                { return t.Prefix + "/status/scene" }

// Input implements ports.InputSource from MQTT messages.
// Messages are latched as presses and consumed by the next tick.
type Input struct {
	*memory.Input
	topics Topics
}

// NewInput creates an input for the installation under prefix.
func NewInput(prefix string) *Input {
	return &Input{
		Input:  memory.NewInput(),
		topics: Topics{Prefix: prefix},
	}
}

// Handle applies a received message. It has the shape of a subscription handler.
// Release payloads ("0", "false", "off") are accepted and ignored.
func (in *Input) Handle(topic string, payload []byte) error {
	name, ok := strings.CutPrefix(topic, in.topics.Prefix+"/input/")
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	b, ok := domain.ParseButton(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}

	switch strings.ToLower(strings.TrimSpace(string(payload))) {
	case "", "1", "true", "on", "press", "pressed":
		in.Press(b)
	case "0", "false", "off", "release", "released":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPayload, payload)
	}
	return nil
}
