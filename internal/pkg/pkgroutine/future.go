package pkgroutine

import "context"

// Future is the settled outcome of one task started with Submit.
// It holds either a value or an error, never both.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Submit runs f on m and returns a Future for its outcome.
//
// A failure of f, including a panic, only settles its own Future. Sibling
// tasks on the same Manager keep running.
func Submit[T any](ctx context.Context, m *Manager, f func(ctx context.Context) (T, error)) *Future[T] {
	fut := &Future[T]{done: make(chan struct{})}

	err := m.Go(ctx, func(ctx context.Context) error {
		defer close(fut.done)

		var value T
		err := protect(ctx, func(ctx context.Context) error {
			var err error
			value, err = f(ctx)
			return err
		})
		if err != nil {
			fut.err = err
			return err
		}

		fut.value = value
		return nil
	})
	if err != nil {
		fut.err = err
		close(fut.done)
	}

	return fut
}

// Await blocks until the task settles.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}
