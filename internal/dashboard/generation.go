package dashboard

// Generations hands out a counter per refresh kind. A response is applied
// only if it carries the latest generation issued for its kind, so a slow
// reply that lost a race with a newer request is dropped.
type Generations struct {
	latest map[Refresh]uint64
}

func NewGenerations() *Generations {
	return &Generations{latest: make(map[Refresh]uint64)}
}

func (g *Generations) Issue(r Refresh) uint64 {
	g.latest[r]++
	return g.latest[r]
}

func (g *Generations) Current(r Refresh, gen uint64) bool {
	return g.latest[r] == gen
}
