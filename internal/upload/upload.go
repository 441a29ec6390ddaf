// Package upload executes a flash plan against the external esptool
// flasher and translates the process outcome into a structured result.
package upload

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bigbag/tabforge/internal/flashplan"
)

// DefaultTool is the external flashing executable.
const DefaultTool = "esptool.py"

// ToolNotFoundExitCode is surfaced to calling scripts when the flashing
// executable cannot be launched, so they can branch on remediation
// (install the tool) rather than debug a flashing failure.
const ToolNotFoundExitCode = 127

// Outcome classifies how an upload attempt ended.
type Outcome int

const (
	Success Outcome = iota
	Failed
	ToolNotFound
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case ToolNotFound:
		return "tool-not-found"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the structured outcome of one upload attempt. Stdout and
// Stderr hold the tool's captured output for diagnostics; ExitCode is the
// tool's own code on failure and ToolNotFoundExitCode when the tool could
// not be started.
type Result struct {
	Outcome  Outcome
	Stdout   string
	Stderr   string
	ExitCode int
}

// Orchestrator runs flash plans through an external flashing tool.
// No retries are ever performed: flashing touches physical hardware state
// and a silent retry could corrupt a partially written image. Retry policy
// belongs to the caller.
type Orchestrator struct {
	// Tool is the flashing executable name or path.
	Tool string
	// Runner executes the tool. Swappable for tests.
	Runner Runner
	// Output, when non-nil, receives the tool's stdout as it streams.
	Output io.Writer
}

// New returns an orchestrator using esptool.py as a real subprocess.
func New() *Orchestrator {
	return &Orchestrator{Tool: DefaultTool, Runner: ExecRunner{}}
}

// Args builds the tool's argument list for a plan, in the fixed order the
// tool expects: chip selector, connection, write_flash mode flags, then
// offset/path pairs in plan (ascending offset) order.
func Args(plan *flashplan.Plan) []string {
	args := []string{
		"--chip", plan.Chip,
		"--port", plan.Port,
		"--baud", strconv.Itoa(plan.Baud),
		"write_flash",
		"--flash_mode", plan.FlashMode,
		"--flash_freq", plan.FlashFreq,
		"--flash_size", plan.FlashSize,
	}
	for _, img := range plan.Images {
		args = append(args, fmt.Sprintf("0x%04X", img.Offset), img.Path)
	}
	return args
}

// Upload runs the plan through the external tool, blocking until the
// process terminates, and maps the outcome:
//
//	exit 0             -> Success
//	exit non-zero      -> Failed, with the tool's exit code recorded
//	tool cannot start  -> ToolNotFound
func (o *Orchestrator) Upload(plan *flashplan.Plan) Result {
	out, err := o.Runner.Run(o.toolName(), Args(plan), o.Output)
	if err != nil {
		return Result{
			Outcome:  ToolNotFound,
			Stderr:   err.Error(),
			ExitCode: ToolNotFoundExitCode,
		}
	}

	if out.ExitCode != 0 {
		return Result{
			Outcome:  Failed,
			Stdout:   out.Stdout,
			Stderr:   out.Stderr,
			ExitCode: out.ExitCode,
		}
	}

	return Result{Outcome: Success, Stdout: out.Stdout, Stderr: out.Stderr}
}

func (o *Orchestrator) toolName() string {
	if o.Tool != "" {
		return o.Tool
	}
	return DefaultTool
}
