package qoi

// runner is the cache of recently seen pixels, addressed by pixel.hash.
// A slot always holds the last pixel written with its hash.
type runner struct {
	seen [cacheSize]pixel
}

// newRunner returns a cache with every slot holding transparent black.
func newRunner() *runner {
	return &runner{}
}

// matchOrUpdate returns the slot of p if the slot already holds p. Otherwise
// p is stored for later lookups.
func (r *runner) matchOrUpdate(p pixel) (uint8, bool) {
	hash := p.hash()
	if r.seen[hash] == p {
		return hash, true
	}
	r.seen[hash] = p
	return 0, false
}

func (r *runner) update(p pixel) {
	r.seen[p.hash()] = p
}

func (r *runner) at(index uint8) pixel {
	return r.seen[index&payloadMask]
}
