package main

import (
	"fmt"
	"io"

	"github.com/delaneyj/storebind/bind"
	"github.com/delaneyj/storebind/memo"
	"github.com/delaneyj/storebind/store"
	"github.com/valyala/quicktemplate"
)

type todo struct {
	ID    int
	Title string
	Done  bool
}

type todoState struct {
	Todos  []todo
	Filter string
	NextID int
}

type (
	addTodo    struct{ Title string }
	toggleTodo struct{ ID int }
	setFilter  struct{ Filter string }
)

const (
	filterAll    = "all"
	filterActive = "active"
	filterDone   = "done"
)

func todoReducer(s *todoState, command any) (*todoState, error) {
	switch cmd := command.(type) {
	case addTodo:
		next := *s
		next.NextID++
		next.Todos = append(s.Todos[:len(s.Todos):len(s.Todos)], todo{ID: next.NextID, Title: cmd.Title})
		return &next, nil
	case toggleTodo:
		next := *s
		next.Todos = make([]todo, len(s.Todos))
		copy(next.Todos, s.Todos)
		for i := range next.Todos {
			if next.Todos[i].ID == cmd.ID {
				next.Todos[i].Done = !next.Todos[i].Done
				return &next, nil
			}
		}
		return s, fmt.Errorf("todo %d not found", cmd.ID)
	case setFilter:
		if cmd.Filter == s.Filter {
			return s, nil
		}
		next := *s
		next.Filter = cmd.Filter
		return &next, nil
	default:
		return s, store.ErrUnknownCommandType
	}
}

type todoActions struct {
	Add    func(title string)
	Toggle func(id int)
	Filter func(filter string)
}

func newTodoCreator() *bind.Creator[*todoState, *todoState, *todoActions] {
	return bind.NewCreator(bind.Options[*todoState, *todoState, *todoActions]{
		PrepareState: func(s *todoState) *todoState { return s },
		PrepareCommands: func(d bind.Dispatch) *todoActions {
			return &todoActions{
				Add:    func(title string) { d(addTodo{Title: title}) },
				Toggle: func(id int) { d(toggleTodo{ID: id}) },
				Filter: func(filter string) { d(setFilter{Filter: filter}) },
			}
		},
	})
}

type listProps struct {
	Heading string
}

type listView struct {
	Heading string
	Items   []todo
}

type listCmds struct {
	Toggle func(id int)
}

func visibleTodos(todos []todo, filter string) []todo {
	if filter == "" || filter == filterAll {
		return todos
	}
	out := make([]todo, 0, len(todos))
	for _, t := range todos {
		if t.Done == (filter == filterDone) {
			out = append(out, t)
		}
	}
	return out
}

// listBinding builds a per-instance selector, so filtering only reruns when the
// todo slice or the filter changes.
func listBinding(c *bind.Creator[*todoState, *todoState, *todoActions]) *bind.Binding[*todoState, *todoState, *todoActions, listProps, listView, listCmds] {
	return bind.Declare(c, bind.Spec[*todoState, *todoActions, listProps, listView, listCmds]{
		MemoizeMapState: func(*todoState, listProps) bind.MapStateFunc[*todoState, listProps, listView] {
			sel := memo.New2(
				func(s *todoState, _ listProps) []todo { return s.Todos },
				func(s *todoState, _ listProps) string { return s.Filter },
				visibleTodos,
			)
			return func(s *todoState, p listProps) (listView, error) {
				return listView{Heading: p.Heading, Items: sel.Select(s, p)}, nil
			}
		},
		MapCommands: func(a *todoActions, _ listProps) (listCmds, error) {
			return listCmds{Toggle: a.Toggle}, nil
		},
	})
}

func renderList(w io.Writer, v listView, _ listCmds) error {
	qw := quicktemplate.AcquireWriter(w)
	defer quicktemplate.ReleaseWriter(qw)

	e := qw.N()
	e.S(v.Heading)
	e.S("\n")
	for _, t := range v.Items {
		if t.Done {
			e.S("  [x] ")
		} else {
			e.S("  [ ] ")
		}
		e.D(t.ID)
		e.S(" ")
		e.S(t.Title)
		e.S("\n")
	}
	return nil
}

type footerView struct {
	Remaining int
	Filter    string
}

type footerCmds struct {
	Filter func(filter string)
}

// footerBinding hides the footer while the list is empty.
func footerBinding(c *bind.Creator[*todoState, *todoState, *todoActions]) *bind.Binding[*todoState, *todoState, *todoActions, struct{}, footerView, footerCmds] {
	return bind.Declare(c, bind.Spec[*todoState, *todoActions, struct{}, footerView, footerCmds]{
		MapState: func(s *todoState, _ struct{}) (footerView, error) {
			if len(s.Todos) == 0 {
				return footerView{}, bind.Suppress()
			}
			remaining := 0
			for _, t := range s.Todos {
				if !t.Done {
					remaining++
				}
			}
			filter := s.Filter
			if filter == "" {
				filter = filterAll
			}
			return footerView{Remaining: remaining, Filter: filter}, nil
		},
		MapCommands: func(a *todoActions, _ struct{}) (footerCmds, error) {
			return footerCmds{Filter: a.Filter}, nil
		},
	})
}

func renderFooter(w io.Writer, v footerView, _ footerCmds) error {
	qw := quicktemplate.AcquireWriter(w)
	defer quicktemplate.ReleaseWriter(qw)

	e := qw.N()
	e.D(v.Remaining)
	if v.Remaining == 1 {
		e.S(" item left")
	} else {
		e.S(" items left")
	}
	e.S(" (showing ")
	e.S(v.Filter)
	e.S(")\n")
	return nil
}
