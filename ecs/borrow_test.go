package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type borrowed struct{ N int }

func TestBorrowTracker(t *testing.T) {
	typ := reflect.TypeFor[borrowed]()
	read := Access{ReadComponents: []reflect.Type{typ}}
	write := Access{WriteComponents: []reflect.Type{typ}}

	t.Run("shared reads", func(t *testing.T) {
		b := newBorrowTracker()
		b.acquire("a", read)
		b.acquire("b", read)
		assert.Panics(t, func() { b.acquire("c", write) })
		b.release(read)
		b.release(read)
		assert.NotPanics(t, func() { b.acquire("c", write) })
	})

	t.Run("exclusive write", func(t *testing.T) {
		b := newBorrowTracker()
		b.acquire("a", write)
		assert.Panics(t, func() { b.acquire("b", read) })
		assert.Panics(t, func() { b.acquire("b", write) })
		b.release(write)
		assert.NotPanics(t, func() { b.acquire("b", read) })
	})

	t.Run("resources and components are tracked apart", func(t *testing.T) {
		b := newBorrowTracker()
		b.acquire("a", write)
		assert.NotPanics(t, func() {
			b.acquire("b", Access{WriteResources: []reflect.Type{typ}})
		})
	})
}
