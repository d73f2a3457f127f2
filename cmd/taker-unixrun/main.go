// Command taker-unixrun supervises one sandboxed execution per invocation:
// fork, exec, enforce CPU/wall-clock/memory limits, report a verdict.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Boxjan/golib/logs"
	"github.com/alecthomas/kong"

	"github.com/taker-judge/unixrun/exec"
	"github.com/taker-judge/unixrun/runner"
	"github.com/taker-judge/unixrun/units/helper"
)

const description = "Taker UNIX Runner is a sandboxed process runner for one untrusted executable per invocation."

type app struct {
	Run  runCmd  `cmd:"" help:"Run one executable under the sandbox and print its results document."`
	Info infoCmd `cmd:"" help:"Print the runner's self-description."`
}

func main() {
	log := logs.NewLogger()
	if err := log.AddAdapter("console", "warn", `{"filename":"taker-unixrun.log", "rotate": false}`); err != nil {
		fmt.Fprintln(os.Stderr, "log setup failed:", err)
	}
	runner.SetLogger(log)

	kctx := kong.Parse(&app{}, kong.Description(description), kong.ConfigureHelp(kong.HelpOptions{Compact: true}))
	kctx.FatalIfErrorf(kctx.Run(log))
}

type runCmd struct {
	ParamsFile string `name:"params" help:"Path to a parameters JSON document; defaults come from the flags below." type:"path"`

	TimeLimit   float64 `name:"time-limit" help:"CPU time limit in seconds." default:"1"`
	IdleLimit   float64 `name:"idle-limit" help:"Wall-clock limit in seconds; 0 means 3.5x time-limit."`
	MemoryLimit string  `name:"memory-limit" help:"Memory limit with an optional unit suffix (k/m/g), e.g. 256m." default:"256m"`

	Executable string   `arg:"" help:"Path to the executable to run."`
	Args       []string `arg:"" optional:"" help:"Arguments passed to the executable."`
}

func (c *runCmd) Run(log *logs.Logger) error {
	params := runner.DefaultParameters()
	params.TimeLimit = c.TimeLimit
	if c.IdleLimit > 0 {
		params.IdleLimit = c.IdleLimit
	} else {
		params.IdleLimit = c.TimeLimit * 3.5
	}
	params.MemoryLimit = float64(helper.StrToBytes(c.MemoryLimit)) / (1024 * 1024)
	params.Executable = c.Executable
	params.Args = c.Args

	// A bare command name ("true", "python3") is resolved against $PATH
	// before validate() runs, since validate() itself requires an
	// already-resolved path; a path containing a slash is left alone.
	if resolved, err := exec.LookPath(c.Executable); err == nil {
		params.Executable = resolved
	}

	if c.ParamsFile != "" {
		data, err := os.ReadFile(c.ParamsFile)
		if err != nil {
			return fmt.Errorf("reading params file: %w", err)
		}
		if err := json.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("parsing params file: %w", err)
		}
	}

	log.Info("running {} with time-limit={} memory-limit={}", params.Executable, params.TimeLimit, params.MemoryLimit)

	r := runner.NewProcessRunner(params)
	if err := r.Execute(); err != nil {
		return err
	}

	out, err := json.MarshalIndent(r.Results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	fmt.Println(string(out))

	log.Info("finished with status={}", r.Results.Status)
	return nil
}

type infoCmd struct{}

func (c *infoCmd) Run(log *logs.Logger) error {
	out, err := json.MarshalIndent(runner.RunnerInfo(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding runner info: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
