package avg

import "strings"

// isHandlerProp matches "on" followed by an upper-case letter.
func isHandlerProp(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on") && key[2] >= 'A' && key[2] <= 'Z'
}

// installHandlers routes every on<Event> prop into the node's handler table.
// onClick turns on ButtonMode unless buttonMode is explicitly false.
func (c *Component) installHandlers(props Props) {
	for key, v := range props {
		if !isHandlerProp(key) {
			continue
		}
		evt, ok := ParseEventType(key[2:])
		if !ok {
			c.rt.Logger.Debug("unknown event handler prop", "prop", key)
			continue
		}
		fn := toPointerHandler(v)
		if fn == nil {
			if v != nil {
				c.rt.Logger.Warn("event handler prop is not a function", "prop", key)
			}
			continue
		}
		if evt == EventClick && props["buttonMode"] != false {
			c.node.ButtonMode = true
		}
		c.node.SetHandler(evt, fn)
	}
}

// removeHandlers clears the slots installed from props.
func (c *Component) removeHandlers(props Props) {
	for key := range props {
		if !isHandlerProp(key) {
			continue
		}
		if evt, ok := ParseEventType(key[2:]); ok {
			c.node.ClearHandler(evt)
		}
	}
}

func toPointerHandler(v any) PointerHandler {
	switch fn := v.(type) {
	case PointerHandler:
		return fn
	case func(*PointerEvent):
		return fn
	case func():
		if fn == nil {
			return nil
		}
		return func(*PointerEvent) { fn() }
	}
	return nil
}
