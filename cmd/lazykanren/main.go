// Package main is a small command-line tour of the lazykanren engine.
// Each subcommand runs one of the showcase programs and prints its
// answers; --trace turns on goal-level logging of the search.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	minikanren "github.com/lazykanren/lazykanren/pkg/minikanren"
)

var traceSearch bool

// logger returns the goal logger selected by --trace.
func logger() hclog.Logger {
	if !traceSearch {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "lazykanren",
		Level: hclog.Trace,
	})
}

// printAnswers renders a result list with one colored line per answer.
func printAnswers(results []minikanren.Term) {
	if len(results) == 0 {
		color.Red("no answers")
		return
	}
	answer := color.New(color.FgGreen)
	for i, r := range results {
		answer.Printf("answer %d: %s\n", i, r)
	}
}

func newAppendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append",
		Short: "Enumerate every way to split a list with relational append",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("splits of [1, 2, 3]:")
			results := minikanren.Run(10, func(q *minikanren.Var) minikanren.Goal {
				return minikanren.FreshN(2, func(vars ...*minikanren.Var) minikanren.Goal {
					prefix, suffix := vars[0], vars[1]
					goal := minikanren.Conj(
						minikanren.Appendo(prefix, suffix,
							minikanren.NewList(minikanren.NewAtom(1), minikanren.NewAtom(2), minikanren.NewAtom(3))),
						minikanren.Eq(q, minikanren.NewList(prefix, suffix)),
					)
					return minikanren.Traced(logger(), "append-split", goal)
				})
			})
			printAnswers(results)
		},
	}
}

func newInterleaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interleave",
		Short: "Find an answer beside a deliberately diverging branch",
		Run: func(cmd *cobra.Command, args []string) {
			var forever func() minikanren.Goal
			forever = func() minikanren.Goal {
				return minikanren.Delayed(forever)
			}

			fmt.Println("first answer of (diverge | q = 42):")
			results := minikanren.Run(1, func(q *minikanren.Var) minikanren.Goal {
				goal := minikanren.Disj(forever(), minikanren.Eq(q, minikanren.NewAtom(42)))
				return minikanren.Traced(logger(), "interleave", goal)
			})
			printAnswers(results)
		},
	}
}

func newMapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maps",
		Short: "Unify two map terms with complementary unknowns",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(`unifying {a: x, b: 2} with {a: 1, b: y}:`)
			results := minikanren.Run(1, func(q *minikanren.Var) minikanren.Goal {
				return minikanren.FreshN(2, func(vars ...*minikanren.Var) minikanren.Goal {
					x, y := vars[0], vars[1]
					goal := minikanren.Conj(
						minikanren.Eq(
							minikanren.NewMap(map[string]minikanren.Term{"a": x, "b": minikanren.NewAtom(2)}),
							minikanren.NewMap(map[string]minikanren.Term{"a": minikanren.NewAtom(1), "b": y}),
						),
						minikanren.Eq(q, minikanren.NewMap(map[string]minikanren.Term{"x": x, "y": y})),
					)
					return minikanren.Traced(logger(), "map-unify", goal)
				})
			})
			printAnswers(results)
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:   "lazykanren",
		Short: "Demos for the lazykanren relational programming engine",
	}
	root.PersistentFlags().BoolVar(&traceSearch, "trace", false, "log goal evaluation at trace level")
	root.AddCommand(newAppendCmd(), newInterleaveCmd(), newMapsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
