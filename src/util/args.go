package util

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Mode selects what the front end does with the source file.
type Mode int

type Options struct {
	Src      string // Path to source file.
	Out      string // Path to output file. Empty for stdout.
	Config   string // Path to YAML configuration file.
	Mode     Mode   // Selected run mode.
	Verbose  bool   // Set true if the front end should log pass statistics to stderr.
	PoolSize int    // Number of nodes per arena pool. Zero for the default.
	Version  bool   // Set true if the application version should be printed.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "iloc front end 1.0"

const maxPoolSize = 1 << 20 // Upper bound on the arena pool size.

// Run modes. ModeUnset is replaced by the configuration file or ModeParse.
const (
	ModeUnset Mode = iota
	ModeHelp
	ModeScan
	ModeParse
	ModePrint
	ModeRename
	ModeLLVM
	ModeInteractive
)

// -------------------
// ----- Globals -----
// -------------------

// ErrUsage is returned when the command line is malformed.
var ErrUsage = errors.New("usage error")

// modeNames provides the configuration file name of every Mode.
var modeNames = [...]string{
	ModeUnset:       "",
	ModeHelp:        "help",
	ModeScan:        "scan",
	ModeParse:       "parse",
	ModePrint:       "print",
	ModeRename:      "rename",
	ModeLLVM:        "llvm",
	ModeInteractive: "interactive",
}

// modeFlags maps the mutually exclusive mode flags to their Mode.
var modeFlags = map[string]Mode{
	"-h":  ModeHelp,
	"-s":  ModeScan,
	"-p":  ModeParse,
	"-r":  ModePrint,
	"-x":  ModeRename,
	"-ll": ModeLLVM,
	"-i":  ModeInteractive,
}

// ---------------------
// ----- functions -----
// ---------------------

func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode returns the Mode named s.
func ParseMode(s string) (Mode, error) {
	for i1, e1 := range modeNames {
		if i1 != int(ModeUnset) && e1 == s {
			return Mode(i1), nil
		}
	}
	return ModeUnset, fmt.Errorf("unknown mode %q", s)
}

// Version returns the application version string.
func Version() string {
	return appVersion
}

// ParseArgs parses command line arguments, not including the program name.
func ParseArgs(args []string) (Options, error) {
	opt := Options{}
	for i1 := 0; i1 < len(args); i1++ {
		a := args[i1]
		if m, ok := modeFlags[a]; ok {
			if opt.Mode != ModeUnset {
				return opt, fmt.Errorf("%w: only one of -h, -s, -p, -r, -x, -ll and -i may be given", ErrUsage)
			}
			opt.Mode = m
			continue
		}
		switch a {
		case "-v":
			opt.Version = true
		case "-vb":
			opt.Verbose = true
		case "-o", "-c", "-pool":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("%w: got flag %s but no argument", ErrUsage, a)
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("%w: expected argument to %s, got new flag %s", ErrUsage, a, args[i1+1])
			}
			switch a {
			case "-o":
				opt.Out = args[i1+1]
			case "-c":
				opt.Config = args[i1+1]
			case "-pool":
				n, err := strconv.Atoi(args[i1+1])
				if err != nil {
					return opt, fmt.Errorf("%w: expected integer pool size, got: %s", ErrUsage, args[i1+1])
				}
				if n < 1 || n > maxPoolSize {
					return opt, fmt.Errorf("%w: pool size must be integer in range [1, %d]", ErrUsage, maxPoolSize)
				}
				opt.PoolSize = n
			}
			i1++
		default:
			if strings.HasPrefix(a, "-") && a != "-" {
				return opt, fmt.Errorf("%w: unexpected flag: %s", ErrUsage, a)
			}
			if len(opt.Src) > 0 {
				return opt, fmt.Errorf("%w: unexpected argument %s, source file already given as %s", ErrUsage, a, opt.Src)
			}
			opt.Src = a
		}
	}
	if len(opt.Src) == 0 && opt.Mode != ModeHelp && !opt.Version {
		return opt, fmt.Errorf("%w: missing source file", ErrUsage)
	}
	return opt, nil
}

// PrintHelp writes a helpful usage message to w.
func PrintHelp(w io.Writer) error {
	sb := strings.Builder{}
	sb.WriteString(StyleHeading(w, "Usage:"))
	sb.WriteString(" ilocfe [flags] filename\n\n")
	sb.WriteString(StyleHeading(w, "Modes (at most one):"))
	sb.WriteRune('\n')
	tw := tabwriter.NewWriter(&sb, 6, 1, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  -h\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(tw, "  -s\tPrints the token stream of the source file.")
	_, _ = fmt.Fprintln(tw, "  -p\tParses the source file and reports success or failure. Default.")
	_, _ = fmt.Fprintln(tw, "  -r\tParses the source file and prints the intermediate representation.")
	_, _ = fmt.Fprintln(tw, "  -x\tParses and renames the block, then prints the renamed representation.")
	_, _ = fmt.Fprintln(tw, "  -ll\tParses and renames the block, then prints it as LLVM IR.")
	_, _ = fmt.Fprintln(tw, "  -i\tParses and renames the block, then opens the interactive liveness viewer.")
	_ = tw.Flush()
	sb.WriteRune('\n')
	sb.WriteString(StyleHeading(w, "Options:"))
	sb.WriteRune('\n')
	tw = tabwriter.NewWriter(&sb, 6, 1, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  -o path\tWrites output to the file at path instead of stdout.")
	_, _ = fmt.Fprintln(tw, "  -c path\tLoads a YAML configuration file. Flags take precedence.")
	_, _ = fmt.Fprintf(tw, "  -pool n\tNumber of operations per arena pool. Must be in range [1, %d].\n", maxPoolSize)
	_, _ = fmt.Fprintln(tw, "  -vb\tVerbose mode: log pass statistics to stderr.")
	_, _ = fmt.Fprintln(tw, "  -v\tPrints application version and exits the application.")
	_ = tw.Flush()
	_, err := io.WriteString(w, sb.String())
	return err
}
