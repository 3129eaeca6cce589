package search

// Details describes an algorithm for display next to the board.
type Details struct {
	Kind        Kind     `json:"algorithm"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Best        string   `json:"best"`
	Average     string   `json:"average"`
	Worst       string   `json:"worst"`
	Space       string   `json:"space"`
	Optimal     bool     `json:"optimal"`
	Steps       []string `json:"steps"`
}

var details = map[Kind]Details{
	Dijkstra: {
		Kind:        Dijkstra,
		Name:        "Dijkstra's algorithm",
		Description: "Dijkstra's algorithm finds the shortest path between nodes in a graph with non-negative edge weights.",
		Best:        "O(E + V log V)",
		Average:     "O(E + V log V)",
		Worst:       "O(E + V log V)",
		Space:       "O(V)",
		Optimal:     true,
		Steps: []string{
			"Initialize distance values for all nodes (INF for all except start node = 0)",
			"Create a priority queue keyed by distance",
			"While the queue is not empty, extract the node with minimum distance",
			"For each neighbor, update distances if a shorter path is found",
			"When the end node is reached, reconstruct the path",
		},
	},
	AStar: {
		Kind:        AStar,
		Name:        "A* search",
		Description: "A* search finds the shortest path between nodes using heuristics to guide its search.",
		Best:        "O(E)",
		Average:     "O(E)",
		Worst:       "O(V²)",
		Space:       "O(V)",
		Optimal:     true,
		Steps: []string{
			"Initialize open and closed sets",
			"Add start node to open set with f-score = heuristic",
			"While open set is not empty, select node with lowest f-score",
			"If current node is the goal, reconstruct and return the path",
			"Add current node to closed set and process all neighbors",
		},
	},
	BFS: {
		Kind:        BFS,
		Name:        "Breadth-first search",
		Description: "Breadth-first search explores all nodes at the present depth before moving to nodes at the next depth level.",
		Best:        "O(V + E)",
		Average:     "O(V + E)",
		Worst:       "O(V + E)",
		Space:       "O(V)",
		Optimal:     true,
		Steps: []string{
			"Initialize a queue and visited set",
			"Add start node to queue and mark as visited",
			"While queue is not empty, dequeue a node",
			"If node is the goal, reconstruct and return the path",
			"Enqueue all unvisited neighbors and mark them as visited",
		},
	},
	DFS: {
		Kind:        DFS,
		Name:        "Depth-first search",
		Description: "Depth-first search explores as far as possible along each branch before backtracking.",
		Best:        "O(V + E)",
		Average:     "O(V + E)",
		Worst:       "O(V + E)",
		Space:       "O(V)",
		Optimal:     false,
		Steps: []string{
			"Initialize a stack and visited set",
			"Push start node to stack and mark as visited",
			"While stack is not empty, pop a node",
			"If node is the goal, reconstruct and return the path",
			"Push all unvisited neighbors to stack and mark them as visited",
		},
	},
}

// Describe returns the display details of kind.
func Describe(kind Kind) (Details, bool) {
	d, ok := details[kind]
	return d, ok
}

// Catalog returns the details of every algorithm in Kinds order.
func Catalog() []Details {
	catalog := make([]Details, 0, len(Kinds))
	for _, k := range Kinds {
		catalog = append(catalog, details[k])
	}
	return catalog
}
