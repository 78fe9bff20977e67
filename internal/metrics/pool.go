package metrics

// blockingPool hands out shared resources to concurrent borrowers and
// blocks when every one is checked out.
type blockingPool[T any] struct {
	pool chan T
}

func newBlockingPool[T any](capacity int) blockingPool[T] {
	return blockingPool[T]{pool: make(chan T, capacity)}
}

func (p *blockingPool[T]) Get() T    { return <-p.pool }
func (p *blockingPool[T]) Put(obj T) { p.pool <- obj }
