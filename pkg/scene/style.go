package scene

import (
	"fmt"

	"github.com/go-drift/scene/pkg/errors"
	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/units"
)

// Interaction is the interaction state a box is displayed in.
type Interaction uint8

const (
	InteractionIdle Interaction = iota
	InteractionArmed
	InteractionDisabled

	interactionCount
)

func (i Interaction) String() string {
	switch i {
	case InteractionIdle:
		return "idle"
	case InteractionArmed:
		return "armed"
	case InteractionDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("Interaction(%d)", i)
	}
}

// StateColors is one cell of a ColorTable. Nil entries keep the cascaded
// foreground and the style background.
type StateColors struct {
	Color      *graphics.Color
	Background *graphics.Color
}

// ColorTable maps selection state x interaction state to colors.
type ColorTable [2][interactionCount]StateColors

// Cell returns the cell for the given state.
func (t *ColorTable) Cell(selected bool, i Interaction) StateColors {
	if i >= interactionCount {
		i = InteractionIdle
	}
	row := 0
	if selected {
		row = 1
	}
	return t[row][i]
}

// Set fills the cell for the given state.
func (t *ColorTable) Set(selected bool, i Interaction, fg, bg *graphics.Color) {
	row := 0
	if selected {
		row = 1
	}
	t[row][i] = StateColors{Color: fg, Background: bg}
}

// ColorRef returns a pointer suitable for a ColorTable cell.
func ColorRef(c graphics.Color) *graphics.Color { return &c }

// PropValue is a property value carried by a Style.
type PropValue struct {
	Prop  Prop
	Value any
}

// Style is the prototype shared by every box of a class. Styles are built
// once on first use and must not be modified afterwards.
type Style struct {
	Class string

	// Defaults seed the root context when a box of this class is a window
	// root. They are inherited properties.
	Defaults []PropValue
	// Props apply to every box of the class as if each box carried them as
	// its first attributes.
	Props []PropValue

	// Local geometry defaults. They are never cascaded.
	Width      units.Length
	Height     units.Length
	Padding    Edges
	Border     Border
	Background graphics.Color
	Alpha      float64
	Mode       LayoutMode

	Colors    ColorTable
	Focusable bool
}

// Built-in classes.
const (
	ClassBox    = "box"
	ClassHBox   = "hbox"
	ClassVBox   = "vbox"
	ClassFlow   = "flowbox"
	ClassTable  = "table"
	ClassRow    = "row"
	ClassText   = "text"
	ClassButton = "button"
	ClassWindow = "window"
)

var (
	styleBuilders = map[string]func(s *Style){
		ClassBox: func(*Style) {},
		ClassHBox: func(s *Style) {
			s.Props = []PropValue{{PropOrient, Horizontal}}
		},
		ClassVBox: func(s *Style) {
			s.Props = []PropValue{{PropOrient, Vertical}}
		},
		ClassFlow: func(s *Style) {
			s.Mode = LayoutFlow
		},
		ClassTable: func(s *Style) {
			s.Mode = LayoutTable
		},
		ClassRow: func(s *Style) {
			s.Props = []PropValue{{PropOrient, Horizontal}}
		},
		ClassText: func(*Style) {},
		ClassButton: func(s *Style) {
			s.Padding = Edges{Left: units.Px(6), Top: units.Px(2), Right: units.Px(6), Bottom: units.Px(2)}
			s.Border = Border{Width: units.Px(1), Color: graphics.ColorDarkGrey}
			s.Background = graphics.ColorLightGrey
			s.Props = []PropValue{{PropCursor, CursorPointer}}
			s.Colors.Set(false, InteractionArmed, nil, ColorRef(graphics.ColorGrey))
			s.Colors.Set(false, InteractionDisabled, ColorRef(graphics.ColorGrey), nil)
			s.Colors.Set(true, InteractionIdle, ColorRef(graphics.ColorWhite), ColorRef(graphics.ColorNavy))
			s.Colors.Set(true, InteractionArmed, ColorRef(graphics.ColorWhite), ColorRef(graphics.ColorBlue))
			s.Colors.Set(true, InteractionDisabled, ColorRef(graphics.ColorGrey), ColorRef(graphics.ColorNavy))
			s.Focusable = true
		},
		ClassWindow: func(s *Style) {
			s.Background = graphics.ColorWhite
			s.Props = []PropValue{{PropOrient, Vertical}}
			s.Defaults = []PropValue{
				{PropColor, graphics.ColorBlack},
				{PropCursor, CursorDefault},
			}
		},
	}
	styles = map[string]*Style{}
)

// RegisterClass installs the builder of a class style. It must be called
// before the first StyleFor(class); later registrations are rejected.
func RegisterClass(class string, build func(s *Style)) error {
	if _, built := styles[class]; built {
		return errors.Fail("scene.RegisterClass", errors.KindUsage, class, errors.ErrConstant)
	}
	styleBuilders[class] = build
	return nil
}

// StyleFor returns the prototype of class, building it on first use.
// Unknown classes get the plain box style under their own name.
func StyleFor(class string) *Style {
	if s, ok := styles[class]; ok {
		return s
	}
	s := newStyle(class)
	if build, ok := styleBuilders[class]; ok {
		build(s)
	} else {
		errors.Warn("scene.StyleFor", errors.KindUsage, class, fmt.Errorf("unknown style class %q", class))
	}
	styles[class] = s
	return s
}

func newStyle(class string) *Style {
	return &Style{
		Class:      class,
		Width:      units.Auto(),
		Height:     units.Auto(),
		Background: graphics.ColorTransparent,
		Alpha:      1,
		Mode:       LayoutStack,
	}
}
