package weft

// edgeAction is the payload carried by every recorded edge. Actions are
// recorded during build-time validation and are never invoked by Execute.
type edgeAction func(Database)

type edge struct {
	from   int
	to     int
	action edgeAction
}

// Edge is a read-only view of a recorded relation between two nodes,
// addressed by their positions in Nodes().
type Edge struct {
	From int
	To   int
}

// topology is the append-only node/edge record accumulated while building.
// Nodes are key identities; the same identity may legitimately appear more
// than once (two tasks sharing an input type each record their own node).
type topology struct {
	nodes []KeyID
	edges []edge
}

// addNode appends a node for id and returns its index.
func (t *topology) addNode(id KeyID) int {
	t.nodes = append(t.nodes, id)
	return len(t.nodes) - 1
}

func (t *topology) addEdge(from, to int, action edgeAction) {
	t.edges = append(t.edges, edge{from: from, to: to, action: action})
}

// indexOf reports the first node carrying id, if any.
func (t *topology) indexOf(id KeyID) (int, bool) {
	for i, node := range t.nodes {
		if node == id {
			return i, true
		}
	}
	return 0, false
}

func (t *topology) snapshotNodes() []KeyID {
	nodes := make([]KeyID, len(t.nodes))
	copy(nodes, t.nodes)
	return nodes
}

func (t *topology) snapshotEdges() []Edge {
	edges := make([]Edge, 0, len(t.edges))
	for _, e := range t.edges {
		edges = append(edges, Edge{From: e.from, To: e.to})
	}
	return edges
}
