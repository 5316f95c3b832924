package sink

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gentree/pkg/layout"
)

// Tee returns a sink that forwards every call to all sinks in order. A
// draw call stops at the first failing sink; Close reaches every sink and
// joins their errors.
func Tee(sinks ...layout.Sink) layout.Sink {
	return tee(sinks)
}

type tee []layout.Sink

func (t tee) AddNode(n layout.Node) error {
	for _, s := range t {
		if err := s.AddNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) AddStraightEdge(from, to string) error {
	for _, s := range t {
		if err := s.AddStraightEdge(from, to); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) AddBentEdge(from, to string, toX, toY, bendOffsetY float64) error {
	for _, s := range t {
		if err := s.AddBentEdge(from, to, toX, toY, bendOffsetY); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Close() error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// Logging returns a sink that logs every draw call at debug level.
func Logging(logger *log.Logger) layout.Sink {
	return &logging{logger: logger}
}

type logging struct {
	logger *log.Logger
	nodes  int
	edges  int
}

func (l *logging) AddNode(n layout.Node) error {
	l.nodes++
	l.logger.Debug("node", "generation", n.Generation, "id", n.ID, "label", n.Label, "kind", n.Kind, "x", n.X, "y", n.Y)
	return nil
}

func (l *logging) AddStraightEdge(from, to string) error {
	l.edges++
	l.logger.Debug("edge", "from", from, "to", to)
	return nil
}

func (l *logging) AddBentEdge(from, to string, toX, toY, bendOffsetY float64) error {
	l.edges++
	l.logger.Debug("edge", "from", from, "to", to, "bend_x", toX, "bend_y", toY+bendOffsetY)
	return nil
}

func (l *logging) Close() error {
	l.logger.Debug("diagram complete", "nodes", l.nodes, "edges", l.edges)
	return nil
}
