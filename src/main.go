package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"ilocfe/src/frontend"
	"ilocfe/src/ir/iloc"
	"ilocfe/src/ir/llvm"
	"ilocfe/src/util"
	"ilocfe/src/view"
)

func main() {
	atexit.Register(func() {
		_ = util.Logger().Sync()
	})
	atexit.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the front end with command line arguments args and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Parse command line arguments.
	opt, err := util.ParseArgs(args)
	if err != nil {
		fail(stderr, "%s\n        Try '-h' for information on command-line syntax.", err)
		return 1
	}
	if opt.Version {
		_, _ = fmt.Fprintln(stdout, util.Version())
		return 0
	}
	if opt.Mode == util.ModeHelp {
		_ = util.PrintHelp(stdout)
		return 0
	}
	if err := opt.Resolve(); err != nil {
		fail(stderr, "%s", err)
		return 1
	}

	if opt.Verbose {
		util.SetLogger(util.NewVerboseLogger(stderr))
	} else {
		util.SetLogger(nil)
	}
	log := util.Logger()
	defer func() {
		_ = log.Sync()
	}()
	log.Debug("options",
		zap.String("source", opt.Src),
		zap.Stringer("mode", opt.Mode),
		zap.String("output", opt.Out),
		zap.Int("pool size", opt.PoolSize))

	// Read source code.
	src, err := util.ReadSource(opt, stdin)
	if err != nil {
		fail(stderr, "Could not open file '%s': %s", opt.Src, err)
		return 1
	}

	// Initiate output writer.
	out := stdout
	if len(opt.Out) > 0 {
		// Attempt to open output file. Create new file if necessary.
		f, err := os.OpenFile(opt.Out, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fail(stderr, "%s", err)
			return 1
		}
		defer func(f *os.File) {
			if err := f.Close(); err != nil {
				fail(stderr, "%s", err)
			}
		}(f)
		out = f
	}
	util.ListenWrite(out)
	wr := util.NewWriter()

	code := execute(opt, src, wr, stdin, stdout, stderr)

	// Stop the output writer.
	wr.Close()
	if err := util.Close(); err != nil {
		fail(stderr, "could not write output: %s", err)
		return 1
	}
	return code
}

// execute runs the selected mode over src. Regular output goes to wr, diagnostics to stderr.
func execute(opt util.Options, src string, wr *util.Writer, stdin io.Reader, stdout, stderr io.Writer) int {
	log := util.Logger()

	// If -s flag was passed: output token stream and exit.
	if opt.Mode == util.ModeScan {
		if err := frontend.TokenStream(src, wr, stderr); err != nil {
			log.Debug("token stream finished with errors", zap.Error(err))
		}
		return 0
	}

	// Build the block by lexing and parsing source code.
	b := iloc.NewBlock(opt.PoolSize)
	n, err := frontend.Parse(src, b, stderr)
	log.Debug("block built",
		zap.Int("operations", b.Len()),
		zap.Int("pools", b.Arena().Pools()),
		zap.Int("pool size", b.Arena().PoolSize()))

	if err != nil {
		if opt.Mode == util.ModeParse {
			wr.Printf("Parse found errors.\n")
		} else {
			wr.Printf("\nDue to syntax error(s), run terminates.\n")
		}
		return 0
	}

	switch opt.Mode {
	case util.ModeParse:
		wr.Printf("Parse succeeded. Processed %d operations.\n", n)
		return 0
	case util.ModePrint:
		wr.Printf("Parse succeeded. Processed %d operations.\n", n)
		if err := b.Print(wr); err != nil {
			fail(stderr, "%s", err)
			return 1
		}
		return 0
	}

	// Remaining modes work on the renamed block.
	r := iloc.NewRenamer(b)
	maxlive := r.Run()
	log.Debug("block renamed",
		zap.Int("maxlive", maxlive),
		zap.Int("virtual registers", r.VRs),
		zap.Int("operations", b.Len()))

	switch opt.Mode {
	case util.ModeRename:
		if err := b.Print(wr); err != nil {
			fail(stderr, "%s", err)
			return 1
		}
	case util.ModeLLVM:
		ir, err := llvm.GenLLVM(opt, b)
		if err != nil {
			fail(stderr, "Error reported by LLVM: %s", err)
			return 1
		}
		_, _ = wr.WriteString(ir)
	case util.ModeInteractive:
		if err := view.Run(opt.Src, b, r, stdin, stdout); err != nil {
			fail(stderr, "%s", err)
			return 1
		}
	default:
		fail(stderr, "unexpected mode %s", opt.Mode)
		return 1
	}
	return 0
}

// fail prints an error message to w.
func fail(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(w, util.StyleError(w, "ERROR: "+fmt.Sprintf(format, args...)))
}
