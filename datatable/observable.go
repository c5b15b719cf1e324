package datatable

// Observable holds subscribers interested in a value of type T. State objects
// embed it and call notify after every mutation. It is not safe for concurrent
// use on its own; Table serializes access.
type Observable[T any] struct {
	subs   map[int]func(T)
	nextID int
}

// Subscribe registers fn and returns a function that removes it again.
func (o *Observable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if o.subs == nil {
		o.subs = make(map[int]func(T))
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	return func() {
		delete(o.subs, id)
	}
}

// Subscribers reports how many callbacks are registered.
func (o *Observable[T]) Subscribers() int {
	return len(o.subs)
}

func (o *Observable[T]) notify(v T) {
	for _, fn := range o.subs {
		fn(v)
	}
}
