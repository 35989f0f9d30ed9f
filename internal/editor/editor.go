package editor

import (
	"fmt"
	"sync"

	"reconstruct-editor/internal/config"
	"reconstruct-editor/internal/geometry"
	"reconstruct-editor/internal/locale"
)

// Command is an undoable scene mutation. Execute and Undo run with the editor lock held
// and must only touch the scene they are given.
type Command interface {
	Name() string
	Execute(s *Scene)
	Undo(s *Scene)
}

// Scene is the object list and current selection. It is only reachable through commands
// and the Editor accessors, which serialize access.
type Scene struct {
	objects  []*geometry.Object
	selected *geometry.Object
}

// Add appends obj to the scene.
func (s *Scene) Add(obj *geometry.Object) {
	s.objects = append(s.objects, obj)
}

// Remove deletes obj and returns its former position, or -1 if it was not in the scene.
// Removing the selected object clears the selection.
func (s *Scene) Remove(obj *geometry.Object) int {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			if s.selected == obj {
				s.selected = nil
			}
			return i
		}
	}
	return -1
}

// Insert puts obj back at index i (clamped).
func (s *Scene) Insert(i int, obj *geometry.Object) {
	if i < 0 || i > len(s.objects) {
		i = len(s.objects)
	}
	s.objects = append(s.objects, nil)
	copy(s.objects[i+1:], s.objects[i:])
	s.objects[i] = obj
}

func (s *Scene) Select(obj *geometry.Object) {
	s.selected = obj
}

func (s *Scene) Selected() *geometry.Object {
	return s.selected
}

// Editor is the editor context handed to sidebar panels: scene, selection, undo history,
// preferences and localized strings.
type Editor struct {
	Prefs   config.Prefs
	Strings *locale.Strings

	mu        sync.Mutex
	scene     Scene
	undos     []Command
	redos     []Command
	listeners []func()
}

// New returns an empty editor.
func New(prefs config.Prefs, strings *locale.Strings) *Editor {
	if strings == nil {
		strings = locale.New(prefs.Panels.Locale)
	}
	return &Editor{Prefs: prefs, Strings: strings}
}

// OnChange registers fn to be called after every scene or selection change.
func (e *Editor) OnChange(fn func()) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

func (e *Editor) notify() {
	e.mu.Lock()
	ls := make([]func(), len(e.listeners))
	copy(ls, e.listeners)
	e.mu.Unlock()
	for _, fn := range ls {
		fn()
	}
}

// Execute applies cmd and records it for undo. The redo stack is cleared.
func (e *Editor) Execute(cmd Command) {
	e.mu.Lock()
	cmd.Execute(&e.scene)
	e.undos = append(e.undos, cmd)
	e.redos = nil
	e.mu.Unlock()
	e.notify()
}

// Undo reverts the last executed command. Returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	if len(e.undos) == 0 {
		e.mu.Unlock()
		return false
	}
	cmd := e.undos[len(e.undos)-1]
	e.undos = e.undos[:len(e.undos)-1]
	cmd.Undo(&e.scene)
	e.redos = append(e.redos, cmd)
	e.mu.Unlock()
	e.notify()
	return true
}

// Redo re-applies the last undone command. Returns false when there is nothing to redo.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	if len(e.redos) == 0 {
		e.mu.Unlock()
		return false
	}
	cmd := e.redos[len(e.redos)-1]
	e.redos = e.redos[:len(e.redos)-1]
	cmd.Execute(&e.scene)
	e.undos = append(e.undos, cmd)
	e.mu.Unlock()
	e.notify()
	return true
}

// History returns the names of undoable and redoable commands, oldest first.
func (e *Editor) History() (undos, redos []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.undos {
		undos = append(undos, c.Name())
	}
	for _, c := range e.redos {
		redos = append(redos, c.Name())
	}
	return undos, redos
}

// Selected returns the current selection, or nil.
func (e *Editor) Selected() *geometry.Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.selected
}

// Select sets the current selection (nil clears it). Selection changes are not undoable.
func (e *Editor) Select(obj *geometry.Object) {
	e.mu.Lock()
	e.scene.selected = obj
	e.mu.Unlock()
	e.notify()
}

// SelectByID selects the object with the given ID.
func (e *Editor) SelectByID(id string) error {
	obj := e.ObjectByID(id)
	if obj == nil {
		return fmt.Errorf("editor: no object with id %q", id)
	}
	e.Select(obj)
	return nil
}

// Objects returns a snapshot of the scene objects in insertion order.
func (e *Editor) Objects() []*geometry.Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*geometry.Object, len(e.scene.objects))
	copy(out, e.scene.objects)
	return out
}

// ObjectByID returns the object with the given ID (a unique prefix is accepted), or nil.
func (e *Editor) ObjectByID(id string) *geometry.Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	var match *geometry.Object
	for _, o := range e.scene.objects {
		if o.ID == id {
			return o
		}
		if id != "" && len(id) < len(o.ID) && o.ID[:len(id)] == id {
			if match != nil {
				return nil
			}
			match = o
		}
	}
	return match
}
