package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone          Action = iota
	ActionUp                   // W, Up arrow - steer selected player up
	ActionDown                 // S, Down arrow - steer selected player down
	ActionPause                // Space - pause/unpause
	ActionSelectLeft           // 1 - select Player 1
	ActionSelectRight          // 2 - select Player 2
	ActionCustomize            // C, Enter - open customization dialog
	ActionShotSpeedUp          // ] - raise shot speed
	ActionShotSpeedDown        // [ - lower shot speed
	ActionMoveSpeedUp          // + - raise move speed
	ActionMoveSpeedDown        // - - lower move speed
	ActionQuit                 // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionPause:
		return "Pause"
	case ActionSelectLeft:
		return "SelectLeft"
	case ActionSelectRight:
		return "SelectRight"
	case ActionCustomize:
		return "Customize"
	case ActionShotSpeedUp:
		return "ShotSpeedUp"
	case ActionShotSpeedDown:
		return "ShotSpeedDown"
	case ActionMoveSpeedUp:
		return "MoveSpeedUp"
	case ActionMoveSpeedDown:
		return "MoveSpeedDown"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
