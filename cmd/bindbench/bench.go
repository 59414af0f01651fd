package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/delaneyj/storebind/bind"
	"github.com/delaneyj/storebind/host"
	"github.com/delaneyj/storebind/store"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

type counterState struct {
	Counts map[string]int
}

type bump struct{ ID string }

func counterReducer(s *counterState, command any) (*counterState, error) {
	cmd, ok := command.(bump)
	if !ok {
		return s, store.ErrUnknownCommandType
	}
	next := &counterState{Counts: make(map[string]int, len(s.Counts))}
	for k, v := range s.Counts {
		next.Counts[k] = v
	}
	next.Counts[cmd.ID]++
	return next, nil
}

type counterProps struct {
	ID string
}

type counterView struct {
	Count int
}

type counterCmds struct {
	Bump func()
}

func counterBinding() *bind.Binding[*counterState, *counterState, bind.Dispatch, counterProps, counterView, counterCmds] {
	creator := bind.NewCreator(bind.Options[*counterState, *counterState, bind.Dispatch]{
		PrepareState:    func(s *counterState) *counterState { return s },
		PrepareCommands: func(d bind.Dispatch) bind.Dispatch { return d },
	})
	return bind.Declare(creator, bind.Spec[*counterState, bind.Dispatch, counterProps, counterView, counterCmds]{
		MapState: func(s *counterState, p counterProps) (counterView, error) {
			return counterView{Count: s.Counts[p.ID]}, nil
		},
		MapCommands: func(d bind.Dispatch, p counterProps) (counterCmds, error) {
			return counterCmds{Bump: func() { d(bump{ID: p.ID}) }}, nil
		},
	})
}

func renderCounter(w io.Writer, v counterView, _ counterCmds) error {
	_, err := fmt.Fprintf(w, "%d", v.Count)
	return err
}

type benchTotals struct {
	instances   int
	dispatches  int
	evaluations int
	renders     int
}

func bench(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("bind benchmark started")
	defer func() {
		log.Printf("bind benchmark finished in %v", time.Since(start))
	}()

	iters := int(cmd.Int(iterationsKey))
	sizes := cmd.IntSlice(instancesKey)

	tbl := table.NewWriter()
	tbl.SetTitle("Dispatch latency")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	var totals []benchTotals
	for _, size := range sizes {
		n := int(size)
		if n <= 0 {
			continue
		}
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		st, err := store.New(&counterState{Counts: map[string]int{}}, counterReducer)
		if err != nil {
			return err
		}
		h := host.New[*counterState](st)
		b := counterBinding()

		instances := make([]*host.Instance[*counterState, *counterState, bind.Dispatch, counterProps, counterView, counterCmds], n)
		for i := range instances {
			inst, err := host.Mount(h, b, counterProps{ID: fmt.Sprintf("c%d", i)}, renderCounter)
			if err != nil {
				return fmt.Errorf("mount %d: %w", i, err)
			}
			instances[i] = inst
		}

		bumpFirst := instances[0].Descriptor().Commands.Bump
		for i := 0; i < iters; i++ {
			t := time.Now()
			bumpFirst()
			tach.AddTime(time.Since(t))
		}

		calc := tach.Calc()
		tbl.AppendRow(table.Row{
			fmt.Sprintf("dispatch: %d instances", n),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		})

		tot := benchTotals{instances: n, dispatches: iters}
		for _, inst := range instances {
			tot.evaluations += inst.Evaluations()
			tot.renders += inst.Renders()
			inst.Unmount()
		}
		totals = append(totals, tot)
	}
	tbl.Render()

	summary := tablewriter.NewWriter(os.Stdout)
	summary.SetHeader([]string{"instances", "dispatches", "evaluations", "renders", "skipped"})
	for _, tot := range totals {
		summary.Append([]string{
			humanize.Comma(int64(tot.instances)),
			humanize.Comma(int64(tot.dispatches)),
			humanize.Comma(int64(tot.evaluations)),
			humanize.Comma(int64(tot.renders)),
			humanize.Comma(int64(tot.evaluations - tot.renders)),
		})
	}
	summary.Render()

	return nil
}
