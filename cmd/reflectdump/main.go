// Command reflectdump is a small CLI around the reflection VM, grounded
// on broady-tygor/cmd/tygor's kong-based subcommand structure — a
// subcommand CLI fits here because reflectdump has genuine subcommands
// (run, history, serve) the way tygor's own CLI does, unlike the
// teacher's own single-purpose stdlib-`flag` binaries.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"typegraph/pkg/diagnostics"
	"typegraph/pkg/packed"
	"typegraph/pkg/reflectvm"
)

// CLI is the top-level kong command tree.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Reflect a Packed carrier read from a file or stdin."`
	History HistoryCmd `cmd:"" help:"Summarize a recorded invocation history."`
	Serve   ServeCmd   `cmd:"" help:"Start the gRPC and debug HTTP servers."`
}

// carrierFile is the on-disk shape of a Packed carrier: constant pool
// entries followed by the opcode string, exactly as pkg/httpapi and
// pkg/rpcapi flatten it onto the wire.
type carrierFile struct {
	OpsString    string `json:"opsString"`
	ConstantPool []any  `json:"constantPool"`
}

// RunCmd loads a carrier and reflects it once, or Replay times to
// exercise pkg/diagnostics's determinism/cache-identity checks.
type RunCmd struct {
	File        string `arg:"" optional:"" help:"Path to a carrier JSON file; reads stdin if omitted."`
	Dump        bool   `help:"Pretty-print the full structural graph instead of its one-line form."`
	ReuseCached bool   `help:"Pass reuseCached=true to Reflect."`
	Replay      int    `help:"Run the carrier N times and report the determinism/cache-identity checks instead of the resolved type." default:"0"`
	History     string `help:"Append each replay run to this SQLite log." optional:""`
}

func (c *RunCmd) Run() error {
	var r *os.File
	if c.File == "" || c.File == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("reflectdump: %w", err)
		}
		defer f.Close()
		r = f
	}

	var cf carrierFile
	if err := json.NewDecoder(r).Decode(&cf); err != nil {
		return fmt.Errorf("reflectdump: decoding carrier: %w", err)
	}
	carrier := packed.New(append(cf.ConstantPool, cf.OpsString)...)

	if c.Replay > 0 {
		return c.runReplay(carrier)
	}

	result, err := reflectvm.Default().Reflect(carrier, nil, reflectvm.ReflectOptions{ReuseCached: c.ReuseCached})
	if err != nil {
		return fmt.Errorf("reflectdump: %w", err)
	}

	if c.Dump {
		fmt.Println(colorize(diagnostics.Sdump(result)))
		return nil
	}
	fmt.Println(colorize(result.String()))
	return nil
}

func (c *RunCmd) runReplay(carrier *packed.Packed) error {
	var h *diagnostics.History
	if c.History != "" {
		opened, err := diagnostics.OpenHistory(c.History)
		if err != nil {
			return fmt.Errorf("reflectdump: opening history log: %w", err)
		}
		defer opened.Close()
		h = opened
	}

	results, err := diagnostics.Replay(
		diagnostics.NewProcessorReflector(reflectvm.Default()),
		carrier, nil, c.ReuseCached, c.Replay, h,
	)
	if err != nil {
		return fmt.Errorf("reflectdump: %w", err)
	}

	fmt.Printf("%d runs: deterministic=%t cacheIdentity=%t noGenericCache=%t\n",
		len(results),
		diagnostics.CheckDeterminism(results),
		diagnostics.CheckCacheIdentity(results),
		diagnostics.CheckNoGenericCache(results))
	return nil
}

// colorize wraps s in cyan when stdout is a terminal, matching the
// teacher-adjacent pack's convention (funvibe-funxy's CLI tooling) of
// only decorating output a human is actually looking at.
func colorize(s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return "\x1b[36m" + s + "\x1b[0m"
}

// HistoryCmd summarizes a SQLite invocation log written by pkg/diagnostics.
type HistoryCmd struct {
	DB string `arg:"" help:"Path to the history SQLite database."`
}

func (c *HistoryCmd) Run() error {
	h, err := diagnostics.OpenHistory(c.DB)
	if err != nil {
		return fmt.Errorf("reflectdump: %w", err)
	}
	defer h.Close()

	summary, err := h.Summarize()
	if err != nil {
		return fmt.Errorf("reflectdump: %w", err)
	}
	fmt.Printf("%s invocations, %s cache hits, %s total opcodes executed\n",
		humanize.Comma(int64(summary.Total)),
		humanize.Comma(int64(summary.CacheHits)),
		humanize.Comma(summary.OpcodesSum))
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("reflectdump"),
		kong.Description("Inspect and serve the runtime type reflection VM."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
