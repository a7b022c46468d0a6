package worker

// SetIDGenerator replaces the UUID source for tests.
func (wk *Worker) SetIDGenerator(gen func() string) {
	wk.newID = gen
}
