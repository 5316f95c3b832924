package layout

import (
	"fmt"
	"strings"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

// Default layout constants.
const (
	DefaultColumnWidth = 50.0
	DefaultLineStep    = 100.0
	DefaultBendOffsetY = -80.0
	DefaultNodeWidth   = 30.0
	DefaultNodeHeight  = 30.0
	DefaultNodeColor   = uint32(0xCCCCCC)
)

// EdgeMode selects how edges between a division and its daughters are drawn.
type EdgeMode int

const (
	// EdgeStraight draws a direct line between the two nodes.
	EdgeStraight EdgeMode = iota
	// EdgeRectangular bends one line step above the daughter, giving
	// right-angled "tree" edges.
	EdgeRectangular
	// EdgeBent bends [Config.BendOffsetY] above the daughter.
	EdgeBent
)

var edgeModeNames = []string{
	EdgeStraight:    "straight",
	EdgeRectangular: "rectangular",
	EdgeBent:        "bent",
}

func (m EdgeMode) String() string {
	if m < 0 || int(m) >= len(edgeModeNames) {
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
	return edgeModeNames[m]
}

// ParseEdgeMode parses "straight", "rectangular" or "bent".
func ParseEdgeMode(s string) (EdgeMode, error) {
	for i, n := range edgeModeNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return EdgeMode(i), nil
		}
	}
	return 0, gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown edge mode %q (want straight, rectangular or bent)", s)
}

// NodeIdentity selects which vertex of a compressed chain names the
// diagram node.
type NodeIdentity int

const (
	// IdentityEndpoint keeps the endpoints of every chain: roots, divisions
	// and leaves appear under their own IDs. A root that heads a chain is
	// drawn one generation above the chain's end.
	IdentityEndpoint NodeIdentity = iota
	// IdentityChainHead draws one node per chain, at the chain's end, named
	// and labelled after the chain's first vertex.
	IdentityChainHead
)

var identityNames = []string{
	IdentityEndpoint:  "endpoint",
	IdentityChainHead: "chain-head",
}

func (i NodeIdentity) String() string {
	if i < 0 || int(i) >= len(identityNames) {
		return fmt.Sprintf("NodeIdentity(%d)", int(i))
	}
	return identityNames[i]
}

// ParseNodeIdentity parses "endpoint" or "chain-head".
func ParseNodeIdentity(s string) (NodeIdentity, error) {
	for i, n := range identityNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return NodeIdentity(i), nil
		}
	}
	return 0, gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown node identity %q (want endpoint or chain-head)", s)
}

// Config holds the layout constants. All lengths are in diagram units.
type Config struct {
	ColumnWidth float64 // Horizontal footprint of a leaf
	LineStep    float64 // Vertical distance between generations
	BendOffsetY float64 // Bend position relative to the daughter, for EdgeBent
	NodeWidth   float64
	NodeHeight  float64
	NodeColor   uint32 // Colour of vertices without their own colour
	EdgeMode    EdgeMode
	Identity    NodeIdentity
}

// DefaultConfig returns a Config with the default constants.
func DefaultConfig() Config {
	return Config{
		ColumnWidth: DefaultColumnWidth,
		LineStep:    DefaultLineStep,
		BendOffsetY: DefaultBendOffsetY,
		NodeWidth:   DefaultNodeWidth,
		NodeHeight:  DefaultNodeHeight,
		NodeColor:   DefaultNodeColor,
	}
}

// Validate checks that the config can produce a diagram.
func (c Config) Validate() error {
	switch {
	case c.ColumnWidth <= 0:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "column width must be positive, got %g", c.ColumnWidth)
	case c.LineStep <= 0:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "line step must be positive, got %g", c.LineStep)
	case c.NodeWidth < 0 || c.NodeHeight < 0:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "node size must not be negative, got %gx%g", c.NodeWidth, c.NodeHeight)
	case c.NodeColor > 0xFFFFFF:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "node colour %#x is not 0xRRGGBB", c.NodeColor)
	case c.EdgeMode < EdgeStraight || c.EdgeMode > EdgeBent:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown edge mode %d", int(c.EdgeMode))
	case c.Identity < IdentityEndpoint || c.Identity > IdentityChainHead:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown node identity %d", int(c.Identity))
	}
	return nil
}

// bendOffset returns the bend offset for the configured mode, and false
// for straight edges.
func (c Config) bendOffset() (float64, bool) {
	switch c.EdgeMode {
	case EdgeRectangular:
		return -c.LineStep, true
	case EdgeBent:
		return c.BendOffsetY, true
	}
	return 0, false
}
