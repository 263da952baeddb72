package scaffold

// state is one step of the scaffold flow. Each step decides on its own
// whether it needs to ask anything, and returns the step that follows.
type state int

const (
	stateName state = iota
	stateOverwrite
	statePackageName
	stateTemplate
	stateMaterialize
	stateGenerate
	stateOverlay
	stateManifest
	stateDone
)

var stateNames = [...]string{
	stateName:        "name",
	stateOverwrite:   "overwrite-check",
	statePackageName: "package-name",
	stateTemplate:    "template",
	stateMaterialize: "materialize",
	stateGenerate:    "generate",
	stateOverlay:     "overlay",
	stateManifest:    "manifest",
	stateDone:        "done",
}

func (s state) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// interactive reports whether the state may prompt. Cancellation is only
// possible while the flow is in one of these states, all of which come
// before anything is written.
func (s state) interactive() bool {
	return s < stateMaterialize
}
