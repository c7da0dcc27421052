package compose

import "fmt"

// Anchor names the on-screen position of an overlay.
type Anchor int

const (
	AnchorTopRight Anchor = iota
	AnchorTopLeft
	AnchorBottomRight
	AnchorBottomLeft
	AnchorCenter
)

var anchorNames = map[Anchor]string{
	AnchorTopRight:    "top-right",
	AnchorTopLeft:     "top-left",
	AnchorBottomRight: "bottom-right",
	AnchorBottomLeft:  "bottom-left",
	AnchorCenter:      "center",
}

func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return fmt.Sprintf("anchor(%d)", int(a))
}

// ParseAnchor maps the CLI/job-file spelling to an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	for a, name := range anchorNames {
		if s == name {
			return a, nil
		}
	}
	return AnchorTopRight, fmt.Errorf("unknown anchor %q (expected top-right, top-left, bottom-right, bottom-left or center)", s)
}
