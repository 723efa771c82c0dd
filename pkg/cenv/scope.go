package cenv

// frame is one typedef-name scope: a name maps to true if it is bound as a
// typedef in this frame, or false if it has been explicitly shadowed
// (spec §3 "Typedef environment").
type frame struct {
	bindings map[string]bool
}

func newFrame() *frame {
	return &frame{bindings: make(map[string]bool)}
}
