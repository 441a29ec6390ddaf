package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bigbag/tabforge/embedded"
	"github.com/bigbag/tabforge/internal/board"
	"github.com/bigbag/tabforge/internal/build"
	"github.com/bigbag/tabforge/internal/flashplan"
	"github.com/bigbag/tabforge/internal/serialport"
	"github.com/bigbag/tabforge/internal/upload"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	boardFlag        string
	chipFlag         string
	portFlag         string
	baudFlag         int
	esptoolFlag      string
	flashModeFlag    string
	flashFreqFlag    string
	flashSizeFlag    string
	firmwareOnlyFlag bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabforge",
		Short: "Build configuration and flashing for Tab5duino (ESP32-P4) firmware",
		Long: `Tabforge assembles the Tab5duino framework build configuration
(source discovery, build units, toolchain flags) for an external compiler
driver, and uploads built firmware images to ESP32-P4 devices via esptool.

The M5Stack Tab5 board profile is built in; pass --board to target a
different variant.`,
	}
	rootCmd.PersistentFlags().StringVar(&boardFlag, "board", "", "Board manifest YAML (default: embedded M5Stack Tab5)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the merged toolchain configuration",
		Long: `Merge the board profile into the framework's base toolchain
configuration and print the resulting defines, compiler flags and linker
flags, the way the compiler driver will consume them.`,
		RunE: runConfig,
	}

	scanCmd := &cobra.Command{
		Use:   "scan <framework-dir>",
		Short: "Scan framework sources into build units",
		Long: `Discover framework core, HAL and variant sources under the given
framework directory and report the resulting build units. Units with no
sources (e.g. a board without a variant folder) are omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	uploadCmd := &cobra.Command{
		Use:   "upload <artifact-dir>",
		Short: "Flash built firmware images to a device",
		Long: `Build a flash plan from the artifacts in the given build output
directory and execute it with esptool.

By default this flashes:
  - Bootloader at 0x0000       (bootloader.bin)
  - Partition table at 0x8000  (partitions.bin)
  - Firmware at 0x10000        (firmware.bin)

Use --firmware-only to flash only the application image.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}
	uploadCmd.Flags().StringVar(&chipFlag, "chip", "", "Target chip (default: board profile MCU)")
	uploadCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Serial port (auto-detect if not specified)")
	uploadCmd.Flags().IntVarP(&baudFlag, "baud", "b", flashplan.DefaultBaudRate, "Baud rate")
	uploadCmd.Flags().StringVar(&esptoolFlag, "esptool", upload.DefaultTool, "Flashing tool executable")
	uploadCmd.Flags().StringVar(&flashModeFlag, "flash-mode", "", "Override flash mode")
	uploadCmd.Flags().StringVar(&flashFreqFlag, "flash-freq", "", "Override flash frequency")
	uploadCmd.Flags().StringVar(&flashSizeFlag, "flash-size", "", "Override flash size")
	uploadCmd.Flags().BoolVar(&firmwareOnlyFlag, "firmware-only", false, "Flash firmware only (skip bootloader/partitions)")

	portsCmd := &cobra.Command{
		Use:   "ports",
		Short: "List available serial ports",
		RunE:  runPorts,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tabforge %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}

	rootCmd.AddCommand(configCmd, scanCmd, uploadCmd, portsCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadProfile returns the board profile from --board, or the embedded
// M5Stack Tab5 manifest when no file was given.
func loadProfile() (board.Profile, error) {
	if boardFlag != "" {
		return board.Load(boardFlag)
	}
	return board.Parse(embedded.DefaultBoard())
}

func runConfig(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile()
	if err != nil {
		return err
	}

	printBanner(profile)

	cfg := build.Merge(build.BaseConfig(), profile)

	fmt.Println("\nDefines:")
	for _, d := range cfg.Defines {
		fmt.Printf("  %s\n", d)
	}
	fmt.Println("\nCompiler flags:")
	for _, f := range cfg.CompilerFlags {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println("\nLinker flags:")
	for _, f := range cfg.LinkerFlags {
		fmt.Printf("  %s\n", f)
	}

	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	frameworkDir := args[0]

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	printBanner(profile)
	fmt.Printf("Framework directory: %s\n", frameworkDir)

	assembler := &build.Assembler{Logf: func(format string, a ...any) {
		fmt.Printf(format+"\n", a...)
	}}

	units, err := assembler.Assemble(unitSpecs(frameworkDir, profile.Variant))
	if err != nil {
		return err
	}

	if len(units) == 0 {
		fmt.Println("No build units found")
		return nil
	}

	fmt.Printf("\n%d build unit(s):\n", len(units))
	for _, u := range units {
		fmt.Printf("  %s (%d files)\n", u.Name, len(u.Sources))
	}

	return nil
}

// unitSpecs lays out the framework's build units: the shared core (with
// its HAL subtree) and the board-specific variant sources.
func unitSpecs(frameworkDir, variant string) []build.UnitSpec {
	coreDir := filepath.Join(frameworkDir, "cores", "tab5duino")
	return []build.UnitSpec{
		{
			Name:  "FrameworkTab5duino",
			Roots: []string{coreDir, filepath.Join(coreDir, "hal")},
		},
		{
			Name:  "FrameworkVariant",
			Roots: []string{filepath.Join(frameworkDir, "variants", variant)},
		},
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	artifactDir := args[0]

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	chip := chipFlag
	if chip == "" {
		chip = profile.MCU
	}

	portName := portFlag
	if portName == "" {
		fmt.Println("Detecting serial port...")
		portName, err = serialport.FindPort()
		if err != nil {
			return err
		}
		fmt.Printf("Using port %s\n", portName)
	}

	var roles []flashplan.Role
	if firmwareOnlyFlag {
		roles = []flashplan.Role{flashplan.RoleApplication}
	}

	// The plan is rebuilt on every attempt; artifacts and ports may have
	// changed since the last one.
	plan, err := flashplan.Build(flashplan.Request{
		ArtifactDir: artifactDir,
		Chip:        chip,
		Port:        portName,
		Baud:        baudFlag,
		Roles:       roles,
		Board:       profile,
		Overrides: flashplan.Overrides{
			FlashMode: flashModeFlag,
			FlashFreq: flashFreqFlag,
			FlashSize: flashSizeFlag,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Port: %s @ %d baud\n", plan.Port, plan.Baud)
	fmt.Printf("Chip: %s (mode=%s freq=%s size=%s)\n", plan.Chip, plan.FlashMode, plan.FlashFreq, plan.FlashSize)
	for _, img := range plan.Images {
		fmt.Printf("  0x%04X  %s\n", img.Offset, img.Path)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Flashing"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	orch := &upload.Orchestrator{
		Tool:   esptoolFlag,
		Runner: upload.ExecRunner{},
		Output: bar,
	}

	fmt.Printf("Command: %s %s\n", esptoolFlag, strings.Join(upload.Args(plan), " "))

	result := orch.Upload(plan)
	bar.Finish()

	switch result.Outcome {
	case upload.Success:
		fmt.Println("Upload successful!")
		if result.Stdout != "" {
			fmt.Println(result.Stdout)
		}
		return nil
	case upload.ToolNotFound:
		fmt.Fprintf(os.Stderr, "Error: %s not found. Please install esptool.\n", esptoolFlag)
		os.Exit(result.ExitCode)
	default:
		fmt.Fprintf(os.Stderr, "Upload failed (exit code %d)\n", result.ExitCode)
		if result.Stderr != "" {
			fmt.Fprintln(os.Stderr, result.Stderr)
		}
		os.Exit(result.ExitCode)
	}
	return nil
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := serialport.List()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}

	fmt.Println("Available serial ports:")
	for _, p := range ports {
		if p.IsUSB {
			fmt.Printf("  %s (USB %s:%s)\n", p.Name, p.VID, p.PID)
		} else {
			fmt.Printf("  %s\n", p.Name)
		}
	}

	return nil
}

func printBanner(profile board.Profile) {
	fmt.Printf("Tab5duino-IDF Framework v%s\n", build.FrameworkVersion)
	fmt.Printf("Target MCU: %s\n", profile.MCU)
	fmt.Printf("CPU Frequency: %d MHz\n", profile.CPUFreqMHz())
	fmt.Printf("Flash Size: %s\n", profile.FlashSize)
	if profile.HasPSRAM() {
		fmt.Printf("PSRAM: Enabled (%s)\n", profile.PSRAMSize)
	}
}
