package pipeline

// SetSeedSource replaces the fallback seed source for tests.
func (r *Runner) SetSeedSource(f func() int64) { r.seeds = f }
