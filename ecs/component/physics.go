package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
type PhysicsBody struct {
	Body          *cp.Body
	Shape         *cp.Shape
	Width         float64
	Height        float64
	Mass          float64
	Friction      float64
	Elasticity    float64
	Static        bool
	FixedRotation bool
	// Disabled bodies are pulled out of the space. Clearing the flag puts the
	// body back at the entity's transform with zero velocity.
	Disabled bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
