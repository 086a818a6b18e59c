// Package state binds avg components to named, observable models.
//
// [Define] pairs a component, functional component or plugin with a model
// schema, its actions and the events it may emit. [Definition.Connect]
// creates the model, registers it in a [StateTree] under a key and returns
// the element type to render. Views connected with observation re-render
// when their model changes.
//
// Events flow through a [HandlerTable]. A handler is a Go function or an
// action descriptor such as
//
//	event: next
//	handlers:
//	  - action: story.advance
//	    data:
//	      input: {speed: settings.speed}
//	      expression: "{line: evt.line, speed: speed}"
//
// Descriptor expressions run in the expr-lang sandbox. In a handler list,
// pass() skips the next handler and terminate() stops the list.
package state
