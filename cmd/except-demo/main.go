// Command except-demo exercises the exception runtime end to end: class
// hierarchy catches, early returns across finally blocks, trap
// adaptation, and the debug catch-list validator. It doubles as a smoke
// test that prints what the engine does with each construct.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/meaning-matters/except"
)

type settings struct {
	Debug          bool `yaml:"debug"`
	AbortOnAssert  bool `yaml:"abortOnAssert"`
	SingleThreaded bool `yaml:"singleThreaded"`
	SharedHandlers bool `yaml:"sharedHandlers"`
	Trace          bool `yaml:"trace"`
}

var (
	configPath string
	cfg        settings

	heading = color.New(color.FgCyan, color.Bold)
	result  = color.New(color.FgGreen)
)

func main() {
	root := &cobra.Command{
		Use:           "except-demo",
		Short:         "Demonstrations of the exception-handling runtime",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configure()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with engine settings")
	root.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "enable debug mode and the catch-list validator")
	root.PersistentFlags().BoolVar(&cfg.SingleThreaded, "single-threaded", false, "use the single-threaded engine")
	root.PersistentFlags().BoolVar(&cfg.SharedHandlers, "shared-handlers", false, "use the shared signal-handler policy")
	root.PersistentFlags().BoolVar(&cfg.Trace, "trace", false, "log every engine operation")

	root.AddCommand(
		&cobra.Command{
			Use:   "catch",
			Short: "Subclass catching and rethrow",
			Run:   func(*cobra.Command, []string) { demoCatch() },
		},
		&cobra.Command{
			Use:   "return",
			Short: "Early returns across nested finally blocks",
			Run:   func(*cobra.Command, []string) { demoReturn() },
		},
		&cobra.Command{
			Use:   "trap",
			Short: "A memory fault caught as an exception",
			Run:   func(*cobra.Command, []string) { demoTrap() },
		},
		&cobra.Command{
			Use:   "validate",
			Short: "The debug catch-list validator (requires --debug)",
			Run:   func(*cobra.Command, []string) { demoValidate() },
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configure() error {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	opts := []except.Option{
		except.WithDebug(cfg.Debug),
		except.WithAbortOnAssert(cfg.AbortOnAssert),
		except.WithSingleThreaded(cfg.SingleThreaded),
		except.WithSharedHandlers(cfg.SharedHandlers),
	}
	if cfg.Trace {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		opts = append(opts, except.WithTraceLogger(logger))
	}
	return except.Configure(opts...)
}

var (
	parseError      = except.NewClass("ParseError", except.Exception)
	unexpectedToken = except.NewClass("UnexpectedToken", parseError)
)

func demoCatch() {
	heading.Println("throw UnexpectedToken, catch ParseError")
	except.Try(func() {
		except.Throwf(unexpectedToken, "found %q", "}")
	}).Catch(parseError, func(e *except.ExceptionInstance) {
		result.Printf("caught: %s data=%v\n", e.Message(), e.Data())
	}).Finally(func() {
		fmt.Println("finally ran")
	})
}

func demoReturn() {
	heading.Println("return 1 from the innermost of three try blocks")
	got := except.Call(func() int {
		except.Try(func() {
			except.Try(func() {
				except.Try(func() {
					except.Return(1)
				}).Finally(func() { fmt.Print("A ") })
			}).Finally(func() { fmt.Print("B ") })
		}).Finally(func() { fmt.Print("C ") })
		return 0
	})
	fmt.Println()
	result.Printf("returned %d\n", got)
}

func demoTrap() {
	heading.Println("nil dereference inside try")
	var p *int
	except.Try(func() {
		sink = *p
	}).Catch(except.SegmentationFault, func(e *except.ExceptionInstance) {
		result.Printf("caught: %s\n", e.Message())
		e.PrintTryTrace(os.Stdout)
	}).Finally(nil)
}

var sink int

func demoValidate() {
	heading.Println("a catch list with a shadowed clause")
	except.Try(nil).
		Catch(except.Throwable, nil).
		Catch(except.Exception, nil).
		Finally(nil)
	if !cfg.Debug {
		fmt.Println("(run with --debug to see the validator diagnostics)")
	}
}
