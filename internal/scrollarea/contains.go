package scrollarea

import "reflect"

// Contains reports whether child is parent or one of its descendants. The
// walk follows parent links and, at a shadow root, hops to the host, so
// nodes rendered inside a shadow tree still count as contained.
func Contains(parent, child Node) bool {
	if isNil(parent) || isNil(child) {
		return false
	}
	for next := child; !isNil(next); {
		if next == parent {
			return true
		}
		up := next.ParentNode()
		if isNil(up) {
			up = next.Host()
		}
		next = up
	}
	return false
}

// isNil also catches typed nil pointers stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
