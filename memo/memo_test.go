package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type todo struct {
	Title string
	Done  bool
}

type todoState struct {
	Todos  []todo
	Filter string
}

func TestSelector(t *testing.T) {
	t.Run("single input", func(t *testing.T) {
		callCount := 0
		sel := New1(
			func(s *todoState, _ string) []todo { return s.Todos },
			func(todos []todo) int {
				callCount++
				return len(todos)
			},
		)

		todos := []todo{{Title: "a"}, {Title: "b"}}
		s1 := &todoState{Todos: todos}
		assert.Equal(t, 2, sel.Select(s1, ""))
		assert.Equal(t, 1, callCount)

		// new snapshot, same slice
		s2 := &todoState{Todos: todos, Filter: "done"}
		assert.Equal(t, 2, sel.Select(s2, ""))
		assert.Equal(t, 1, callCount)

		s3 := &todoState{Todos: append(todos[:2:2], todo{Title: "c"})}
		assert.Equal(t, 3, sel.Select(s3, ""))
		assert.Equal(t, 2, callCount)
		assert.Equal(t, 2, sel.Recomputes())
	})

	t.Run("two inputs", func(t *testing.T) {
		callCount := 0
		sel := New2(
			func(s *todoState, _ int) []todo { return s.Todos },
			func(s *todoState, _ int) string { return s.Filter },
			func(todos []todo, filter string) []string {
				callCount++
				var out []string
				for _, td := range todos {
					if filter == "" || (filter == "done") == td.Done {
						out = append(out, td.Title)
					}
				}
				return out
			},
		)

		todos := []todo{{Title: "a", Done: true}, {Title: "b"}}
		assert.Equal(t, []string{"a", "b"}, sel.Select(&todoState{Todos: todos}, 0))
		assert.Equal(t, []string{"a"}, sel.Select(&todoState{Todos: todos, Filter: "done"}, 0))
		assert.Equal(t, []string{"a"}, sel.Select(&todoState{Todos: todos, Filter: "done"}, 1))
		assert.Equal(t, 2, callCount)
	})

	t.Run("props as input", func(t *testing.T) {
		callCount := 0
		sel := New3(
			func(s map[string]int, _ string) map[string]int { return s },
			func(_ map[string]int, id string) string { return id },
			func(_ map[string]int, _ string) error { return nil },
			func(s map[string]int, id string, _ error) int {
				callCount++
				return s[id]
			},
		)

		state := map[string]int{"x": 1, "y": 2}
		assert.Equal(t, 1, sel.Select(state, "x"))
		assert.Equal(t, 1, sel.Select(state, "x"))
		assert.Equal(t, 2, sel.Select(state, "y"))
		assert.Equal(t, 2, callCount)
	})

	t.Run("reset", func(t *testing.T) {
		callCount := 0
		sel := New1(
			func(s int, _ int) int { return s },
			func(v int) int {
				callCount++
				return v * 2
			},
		)
		assert.Equal(t, 4, sel.Select(2, 0))
		sel.Reset()
		assert.Equal(t, CacheDirty, sel.state)
		assert.Equal(t, 4, sel.Select(2, 0))
		assert.Equal(t, 2, callCount)
	})
}
