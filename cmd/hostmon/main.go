package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/selfspy/hostmon/internal/config"
	"github.com/selfspy/hostmon/internal/ipc"
	"github.com/selfspy/hostmon/internal/logging"
	"github.com/selfspy/hostmon/internal/monitor"
	"github.com/selfspy/hostmon/internal/platform"
	"github.com/selfspy/hostmon/internal/wire"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: hostmon daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: hostmon daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "window":
		os.Exit(runQuery("window", ipc.CommandGetActiveWindowInfo, os.Args[2:]))
	case "keyboard":
		os.Exit(runQuery("keyboard", ipc.CommandGetKeyboardState, os.Args[2:]))
	case "mouse":
		os.Exit(runQuery("mouse", ipc.CommandGetMousePosition, os.Args[2:]))
	case "system":
		os.Exit(runQuery("system", ipc.CommandGetSystemInfo, os.Args[2:]))
	case "permissions":
		os.Exit(runQuery("permissions", ipc.CommandCheckPermissions, os.Args[2:]))
	case "idle":
		os.Exit(runQuery("idle", ipc.CommandGetIdleState, os.Args[2:]))
	case "hotkey":
		os.Exit(runHotkey(os.Args[2:]))
	case "session":
		os.Exit(runSession(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hostmon <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the hostmon daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window              Show the active window")
	fmt.Fprintln(w, "  keyboard            Show keyboard layout and modifier state")
	fmt.Fprintln(w, "  mouse               Show pointer position and button state")
	fmt.Fprintln(w, "  system              Show host configuration snapshot")
	fmt.Fprintln(w, "  permissions         Show monitoring permission grants")
	fmt.Fprintln(w, "  idle                Show idle and lock state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  hotkey set          Register a global hotkey")
	fmt.Fprintln(w, "  hotkey remove       Release a global hotkey")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  session start       Start the monitoring session")
	fmt.Fprintln(w, "  session stop        Stop the monitoring session")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'hostmon <command> --help' for command-specific options.")
}

// newClient builds an IPC client using the configured socket path.
func newClient() (*ipc.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	socketPath, err := cfg.Socket()
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(socketPath), nil
}

// printData renders an outcome payload, either as indented JSON or as
// key: value lines.
func printData(data *wire.Map, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	printMapLines(data, "")
	return nil
}

func printMapLines(m *wire.Map, indent string) {
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		switch val := v.(type) {
		case *wire.Map:
			fmt.Printf("%s%s:\n", indent, key)
			printMapLines(val, indent+"  ")
		case []any:
			fmt.Printf("%s%s:\n", indent, key)
			for _, entry := range val {
				if em, ok := entry.(*wire.Map); ok {
					fmt.Printf("%s  -\n", indent)
					printMapLines(em, indent+"    ")
				} else {
					fmt.Printf("%s  - %v\n", indent, entry)
				}
			}
		default:
			fmt.Printf("%s%s: %v\n", indent, key, v)
		}
	}
}

// runQuery handles the read-only telemetry subcommands, which differ
// only in the command they send.
func runQuery(name string, command ipc.CommandType, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "print raw JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hostmon %s [--json]\n", name)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out, err := client.Call(command, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !out.IsOK() {
		fmt.Fprintf(os.Stderr, "error: %s\n", out.Error)
		return 1
	}
	if err := printData(out.Data, *jsonOut); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: hostmon status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	out, err := client.Status()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !out.IsOK() {
		fmt.Fprintf(os.Stderr, "error: %s\n", out.Error)
		return 1
	}
	printMapLines(out.Data, "")
	return 0
}

func printHotkeyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hostmon hotkey set --key <keycode> [--mods <mask>]")
	fmt.Fprintln(w, "  hostmon hotkey remove --id <id>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Modifier mask: 1=shift 2=control 4=alt 8=command.")
}

func runHotkey(args []string) int {
	if len(args) == 0 {
		printHotkeyUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "set":
		fs := flag.NewFlagSet("hotkey set", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		mods := fs.Int("mods", 0, "modifier bitmask")
		key := fs.Int("key", 0, "platform keycode")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if *key <= 0 {
			fmt.Fprintln(os.Stderr, "--key is required and must be positive")
			return 2
		}

		client, err := newClient()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := client.SetGlobalHotkey(*mods, *key)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !out.IsOK() {
			fmt.Fprintf(os.Stderr, "error: %s\n", out.Error)
			return 1
		}
		printMapLines(out.Data, "")
		return 0
	case "remove":
		fs := flag.NewFlagSet("hotkey remove", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		id := fs.Int64("id", 0, "registration id")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if *id <= 0 {
			fmt.Fprintln(os.Stderr, "--id is required and must be positive")
			return 2
		}

		client, err := newClient()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := client.RemoveGlobalHotkey(*id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !out.IsOK() {
			fmt.Fprintf(os.Stderr, "error: %s\n", out.Error)
			return 1
		}
		return 0
	case "help", "-h", "--help":
		printHotkeyUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown hotkey command: %s\n\n", args[0])
		printHotkeyUsage(os.Stderr)
		return 2
	}
}

func printSessionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hostmon session start")
	fmt.Fprintln(w, "  hostmon session stop --handle <handle>")
}

func runSession(args []string) int {
	if len(args) == 0 {
		printSessionUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "start":
		client, err := newClient()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := client.StartMonitoring()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !out.IsOK() {
			fmt.Fprintf(os.Stderr, "error: %s\n", out.Error)
			return 1
		}
		printMapLines(out.Data, "")
		return 0
	case "stop":
		fs := flag.NewFlagSet("session stop", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		handle := fs.Int64("handle", 0, "session handle")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if *handle <= 0 {
			fmt.Fprintln(os.Stderr, "--handle is required and must be positive")
			return 2
		}

		client, err := newClient()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := client.StopMonitoring(*handle)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !out.IsOK() {
			fmt.Fprintf(os.Stderr, "error: %s\n", out.Error)
			return 1
		}
		return 0
	case "help", "-h", "--help":
		printSessionUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown session command: %s\n\n", args[0])
		printSessionUsage(os.Stderr)
		return 2
	}
}

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (backend: %s)", cfg.Backend)

	// Select and create the platform backend
	backend, err := platform.New(platform.Options{
		Backend:       cfg.Backend,
		Display:       cfg.Display,
		IdleThreshold: time.Duration(cfg.IdleThresholdSeconds) * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to create platform backend: %v", err)
	}
	log.Printf("Platform backend: %s", backend.Name())

	// Operation log
	var opLog *logging.OpLog
	if cfg.Logging.Enabled {
		logFile, err := cfg.LogFile()
		if err != nil {
			log.Fatalf("Failed to resolve log path: %v", err)
		}
		opLog, err = logging.NewOpLog(logging.Config{
			Enabled:   true,
			FilePath:  logFile,
			MaxSizeMB: cfg.Logging.MaxSizeMB,
			MaxFiles:  cfg.Logging.MaxFiles,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize operation log: %v", err)
			opLog = nil
		}
	}
	defer opLog.Close()

	service := monitor.NewService(backend, opLog)
	defer service.Close()

	socketPath, err := cfg.Socket()
	if err != nil {
		log.Fatalf("Failed to resolve socket path: %v", err)
	}

	// Start IPC server
	ipcServer := ipc.NewServer(socketPath, service)
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	log.Println("hostmon daemon started successfully")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
}
