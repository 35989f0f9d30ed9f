package editor

import "reconstruct-editor/internal/geometry"

// AddObjectCommand adds an object to the scene and selects it.
// Undo removes it and restores the previous selection.
type AddObjectCommand struct {
	Object *geometry.Object

	prevSelected *geometry.Object
}

func NewAddObjectCommand(obj *geometry.Object) *AddObjectCommand {
	return &AddObjectCommand{Object: obj}
}

func (c *AddObjectCommand) Name() string {
	return "Add Object: " + c.Object.Name
}

func (c *AddObjectCommand) Execute(s *Scene) {
	c.prevSelected = s.Selected()
	s.Add(c.Object)
	s.Select(c.Object)
}

func (c *AddObjectCommand) Undo(s *Scene) {
	s.Remove(c.Object)
	s.Select(c.prevSelected)
}

// RemoveObjectCommand removes an object. Undo puts it back at its old position.
type RemoveObjectCommand struct {
	Object *geometry.Object

	index       int
	wasSelected bool
}

func NewRemoveObjectCommand(obj *geometry.Object) *RemoveObjectCommand {
	return &RemoveObjectCommand{Object: obj, index: -1}
}

func (c *RemoveObjectCommand) Name() string {
	return "Remove Object: " + c.Object.Name
}

func (c *RemoveObjectCommand) Execute(s *Scene) {
	c.wasSelected = s.Selected() == c.Object
	c.index = s.Remove(c.Object)
}

func (c *RemoveObjectCommand) Undo(s *Scene) {
	if c.index < 0 {
		return
	}
	s.Insert(c.index, c.Object)
	if c.wasSelected {
		s.Select(c.Object)
	}
}
