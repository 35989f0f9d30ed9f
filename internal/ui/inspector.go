package ui

import "fmt"

// Inspector is a panel under the sidebar that describes the selected object.
// It owns its nodes and rewrites their text on Update; hidden while nothing is selected.
type Inspector struct {
	Panel    *Node
	title    *Node
	name     *Node
	kind     *Node
	vertices *Node
	filePath *Node
	download *Node
}

// Selection is the data shown in the inspector. The caller fills it from the editor; ui does not depend on editor.
type Selection struct {
	Name      string
	Kind      string
	Vertices  int
	Triangles int
	FilePath  string
	Download  string
}

func NewInspector(tk *Toolkit) *Inspector {
	in := &Inspector{
		Panel:    tk.Panel("inspector"),
		title:    tk.Label("header", "Inspector"),
		name:     tk.Label("inspector-name", ""),
		kind:     tk.Label("inspector-kind", ""),
		vertices: tk.Label("inspector-vertices", ""),
		filePath: tk.Label("inspector-path", ""),
		download: tk.Label("inspector-download", ""),
	}
	in.Panel.Add(in.title, in.name, in.kind, in.vertices, in.filePath, in.download)
	in.Panel.SetHidden(true)
	return in
}

// Update refreshes the labels from sel, or hides the panel when sel is nil.
func (in *Inspector) Update(sel *Selection) {
	if sel == nil {
		in.Panel.SetHidden(true)
		return
	}
	in.name.SetText("Name: " + sel.Name)
	in.kind.SetText("Type: " + sel.Kind)
	if sel.Triangles > 0 {
		in.vertices.SetText(fmt.Sprintf("Vertices: %d, triangles: %d", sel.Vertices, sel.Triangles))
	} else {
		in.vertices.SetText(fmt.Sprintf("Points: %d", sel.Vertices))
	}
	in.filePath.SetText("File: " + orDash(sel.FilePath))
	in.download.SetText("Download: " + orDash(sel.Download))
	in.Panel.SetHidden(false)
}

// Lines returns the visible label texts, in order.
func (in *Inspector) Lines() []string {
	if in.Panel.Hidden() {
		return nil
	}
	var out []string
	for _, c := range in.Panel.Children() {
		out = append(out, c.Text())
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
