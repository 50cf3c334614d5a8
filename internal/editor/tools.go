package editor

// ToolMode is the active creation tool.
type ToolMode int

const (
	ToolSelect       ToolMode = iota // Pick and transform existing objects
	ToolOneSeat                      // Click to drop a single seat
	ToolMultipleSeat                 // Drag to lay out a grid of seats
	ToolShapeSquare                  // Click to drop a zone
	ToolText                         // Click to drop a label
)

func (m ToolMode) String() string {
	switch m {
	case ToolOneSeat:
		return "one-seat"
	case ToolMultipleSeat:
		return "multiple-seat"
	case ToolShapeSquare:
		return "shape-square"
	case ToolText:
		return "text"
	default:
		return "select"
	}
}

// ToolAction records the last pending clipboard or delete action.
type ToolAction int

const (
	ActionNone ToolAction = iota
	ActionDelete
	ActionCopy
	ActionCut
	ActionPaste
)

func (a ToolAction) String() string {
	switch a {
	case ActionDelete:
		return "delete"
	case ActionCopy:
		return "copy"
	case ActionCut:
		return "cut"
	case ActionPaste:
		return "paste"
	default:
		return "null"
	}
}
