package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/delaneyj/storebind/host"
	"github.com/delaneyj/storebind/store"
	"github.com/urfave/cli/v3"
)

type renderer interface {
	Renders() int
	Visible() bool
	Output() string
}

type watched struct {
	name string
	r    renderer
	seen int
}

func demo(ctx context.Context, cmd *cli.Command) error {
	st, err := store.New(&todoState{Filter: filterAll}, todoReducer)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if cmd.Bool(verboseKey) {
		logger = log.New(os.Stderr, "host: ", log.Lmicroseconds)
	}
	h := host.New[*todoState](st,
		host.WithLogger(logger),
		host.WithErrorHandler(func(id uint64, err error) {
			log.Printf("instance %d failed: %v", id, err)
		}),
	)

	creator := newTodoCreator()
	list, err := host.Mount(h, listBinding(creator), listProps{Heading: "Todos"}, renderList)
	if err != nil {
		return err
	}
	defer list.Unmount()
	footer, err := host.Mount(h, footerBinding(creator), struct{}{}, renderFooter)
	if err != nil {
		return err
	}
	defer footer.Unmount()

	views := []*watched{
		{name: "list", r: list},
		{name: "footer", r: footer},
	}
	step := func(title string, fn func()) {
		fn()
		fmt.Printf("== %s\n", title)
		for _, v := range views {
			if v.r.Renders() == v.seen {
				fmt.Printf("%s: unchanged\n", v.name)
				continue
			}
			v.seen = v.r.Renders()
			if !v.r.Visible() {
				fmt.Printf("%s: hidden\n", v.name)
				continue
			}
			fmt.Printf("%s:\n%s", v.name, v.r.Output())
		}
	}

	dispatch := func(command any) {
		if err := st.Dispatch(command); err != nil {
			log.Printf("dispatch: %v", err)
		}
	}

	step("mount", func() {})
	step("add milk", func() { dispatch(addTodo{Title: "milk"}) })
	step("add eggs", func() { dispatch(addTodo{Title: "eggs"}) })
	step("toggle milk", func() { list.Descriptor().Commands.Toggle(1) })
	step("show done", func() { footer.Descriptor().Commands.Filter(filterDone) })
	step("show done again", func() { footer.Descriptor().Commands.Filter(filterDone) })
	step("rename heading", func() {
		if err := list.Update(listProps{Heading: "Groceries"}, renderList); err != nil {
			log.Printf("update: %v", err)
		}
	})
	step("toggle unknown", func() { list.Descriptor().Commands.Toggle(42) })

	return nil
}
