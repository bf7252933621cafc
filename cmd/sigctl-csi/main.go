// sigctl-csi is the external-debugger helper the crash path invokes to
// produce an enhanced backtrace of a dying process. It is a thin
// wrapper around gdb in batch mode; when no debugger is available it
// says so and exits cleanly rather than obstructing the crash path.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

func main() {
	pid := flag.Int("pid", 0, "pid of the process to inspect")
	noColor := flag.Bool("no-color", false, "disable color escapes in debugger output")
	flag.Parse()

	if *pid <= 0 {
		fmt.Fprintln(os.Stderr, "sigctl-csi: --pid is required")
		os.Exit(2)
	}

	gdb, err := exec.LookPath("gdb")
	if err != nil {
		fmt.Println("sigctl-csi: no debugger available (gdb not found)")
		return
	}

	args := []string{
		"--batch", "--nx",
		"-p", strconv.Itoa(*pid),
		"-ex", "set pagination off",
		"-ex", "thread apply all bt",
	}
	if *noColor {
		args = append([]string{"-ex", "set style enabled off"}, args...)
	}

	cmd := exec.Command(gdb, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stdout
	if err := cmd.Run(); err != nil {
		fmt.Printf("sigctl-csi: gdb failed: %v\n", err)
	}
}
