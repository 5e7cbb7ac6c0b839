// Package scene implements the retained scene graph and its update pipeline.
//
// # Nodes
//
// Every object in the graph is a Node: an Attribute carrying one typed
// property, an Element grouping attributes and children, a Box (an element
// that can be placed on screen) or a Text leaf. A node may have several
// parents, so the graph is a DAG. Ownership uses two counters: the parent
// count, maintained by Element.Add and Element.Remove, and the handle count,
// maintained by Retain and Handle.Release. A node is destroyed exactly when
// both reach zero. Destruction detaches the node's children, which are in
// turn destroyed unless they are still attached elsewhere or still handled.
//
// # Views
//
// A Box is realized on screen through Views, one per distinct path from a
// window root to the box. Views are created lazily by the layout pass of
// their parent view and destroyed as soon as their path disappears. A
// destroyed view is removed from every focus slot before it is disposed.
//
// # Cascade
//
// Layout and paint rebuild an UpdateContext top-down for every view. A
// property resolves to the node's own attribute if it has one, otherwise to
// the inherited value for inherited properties, otherwise to the default
// from the node's Style. Contexts are never cached across passes.
//
// # Updates
//
// Mutations never lay out synchronously. They post requests to the Engine's
// update.Scheduler, which merges them and runs layout and paint when the
// host loop calls Engine.Drain or Engine.Frame.
package scene
