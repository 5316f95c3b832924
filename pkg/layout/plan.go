package layout

import gerrors "github.com/matzehuels/gentree/pkg/errors"

// plan buffers the draw calls of one root so that a root aborted by
// non-forest input leaves no trace in the sink.
type plan struct {
	ops   []op
	stats Stats
}

type op struct {
	node     *Node
	from, to string
	toX, toY float64
}

func (p *plan) addNode(n Node) {
	p.ops = append(p.ops, op{node: &n})
	p.stats.Nodes++
}

func (p *plan) addEdge(from string, to placed) {
	p.ops = append(p.ops, op{from: from, to: to.id, toX: to.x, toY: to.y})
	p.stats.Edges++
}

func (p *plan) flush(sink Sink, cfg Config) error {
	offset, bent := cfg.bendOffset()
	for _, o := range p.ops {
		if o.node != nil {
			if err := sink.AddNode(*o.node); err != nil {
				return gerrors.Wrap(gerrors.ErrCodeSinkFailure, err, "add node %s", o.node.ID)
			}
			continue
		}
		var err error
		if bent {
			err = sink.AddBentEdge(o.from, o.to, o.toX, o.toY, offset)
		} else {
			err = sink.AddStraightEdge(o.from, o.to)
		}
		if err != nil {
			return gerrors.Wrap(gerrors.ErrCodeSinkFailure, err, "add edge %s->%s", o.from, o.to)
		}
	}
	return nil
}
