package datastructure

// StronglyConnectedComponents. kosaraju's algorithm. returns the component of every vertex and the number of
// components. components are numbered in the order the second pass finds them. both passes use an explicit stack,
// road networks are deep enough to make recursion expensive.
func (g *Graph) StronglyConnectedComponents() ([]Index, int) {
	n := g.NumberOfVertices()

	// transpose in compressed sparse row layout
	firstIn := make([]Index, n+1)
	for _, e := range g.outEdges {
		firstIn[e.head+1]++
	}
	for v := 0; v < n; v++ {
		firstIn[v+1] += firstIn[v]
	}
	inTails := make([]Index, len(g.outEdges))
	fill := make([]Index, n)
	copy(fill, firstIn[:n])
	for _, e := range g.outEdges {
		inTails[fill[e.head]] = e.tail
		fill[e.head]++
	}

	// first pass: vertices in order of dfs completion
	order := make([]Index, 0, n)
	visited := make([]bool, n)
	type frame struct {
		v    Index
		next Index // next out edge position to look at
	}
	stack := make([]frame, 0)
	for s := Index(0); s < Index(n); s++ {
		if visited[s] {
			continue
		}
		visited[s] = true
		stack = append(stack, frame{v: s, next: g.firstOut[s]})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < g.firstOut[top.v+1] {
				head := g.outEdges[top.next].head
				top.next++
				if !visited[head] {
					visited[head] = true
					stack = append(stack, frame{v: head, next: g.firstOut[head]})
				}
				continue
			}
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}
	}

	// second pass on the transpose, in reverse completion order
	sccs := make([]Index, n)
	for i := range sccs {
		sccs[i] = INVALID_VERTEX_ID
	}
	numComponents := 0
	todo := make([]Index, 0)
	for i := len(order) - 1; i >= 0; i-- {
		root := order[i]
		if sccs[root] != INVALID_VERTEX_ID {
			continue
		}
		c := Index(numComponents)
		numComponents++

		sccs[root] = c
		todo = append(todo[:0], root)
		for len(todo) > 0 {
			v := todo[len(todo)-1]
			todo = todo[:len(todo)-1]
			for j := firstIn[v]; j < firstIn[v+1]; j++ {
				u := inTails[j]
				if sccs[u] == INVALID_VERTEX_ID {
					sccs[u] = c
					todo = append(todo, u)
				}
			}
		}
	}

	return sccs, numComponents
}

// LargestComponent. vertices of the biggest strongly connected component, ties go to the component holding the
// smallest vertex index.
func (g *Graph) LargestComponent() []Index {
	sccs, k := g.StronglyConnectedComponents()
	if k == 0 {
		return []Index{}
	}

	size := make([]int, k)
	best := -1
	for v := range sccs {
		c := int(sccs[v])
		size[c]++
	}
	for v := range sccs {
		c := int(sccs[v])
		if best == -1 || size[c] > size[best] {
			best = c
		}
	}

	component := make([]Index, 0, size[best])
	for v := range sccs {
		if int(sccs[v]) == best {
			component = append(component, Index(v))
		}
	}
	return component
}
