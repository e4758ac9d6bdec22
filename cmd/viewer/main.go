package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/iconidentify/xgallery/internal/export"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	dir := flag.String("dir", "", "Exported gallery directory (defaults to the viewer's own directory, then the working directory)")
	port := flag.Int("port", 0, "Port to listen on (0 picks a free port)")
	noBrowser := flag.Bool("no-browser", false, "Do not open a browser")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("xgallery-viewer %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	archiveDir, err := resolveArchiveDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run xgallery-export first, or pass --dir.\n")
		os.Exit(1)
	}

	manifest, err := readManifest(archiveDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading manifest: %v\n", err)
		os.Exit(1)
	}

	if *port == 0 {
		if *port, err = findAvailablePort(); err != nil {
			fmt.Fprintf(os.Stderr, "Error finding available port: %v\n", err)
			os.Exit(1)
		}
	}

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	url := fmt.Sprintf("http://%s/", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      newArchiveHandler(archiveDir),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Give server a moment to start
	time.Sleep(100 * time.Millisecond)

	select {
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	default:
	}

	fmt.Printf("xgallery Viewer %s\n", Version)
	fmt.Printf("Serving export %s from: %s\n", manifest.ExportID, archiveDir)
	fmt.Printf("Generated %s: %d users, %d tweets\n",
		manifest.GeneratedAt.Local().Format(time.DateTime), manifest.UsersCount, manifest.TweetsCount)
	fmt.Printf("Server running at: %s\n", url)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	if !*noBrowser {
		if err := openBrowser(url); err != nil {
			fmt.Printf("Could not open browser automatically.\n")
			fmt.Printf("Please open %s in your browser.\n", url)
		}
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
	}

	fmt.Println("Goodbye!")
}

// resolveArchiveDir picks the export directory: dir if given, else the
// directory holding the executable, else the working directory.
func resolveArchiveDir(dir string) (string, error) {
	var candidates []string
	if dir != "" {
		candidates = []string{dir}
	} else {
		if execPath, err := os.Executable(); err == nil {
			candidates = append(candidates, filepath.Dir(execPath))
		}
		if wd, err := os.Getwd(); err == nil {
			candidates = append(candidates, wd)
		}
	}

	for _, c := range candidates {
		if fileExists(filepath.Join(c, "index.html")) && fileExists(filepath.Join(c, "manifest.json")) {
			return filepath.Clean(c), nil
		}
	}
	return "", fmt.Errorf("no exported gallery (index.html and manifest.json) found in %s", strings.Join(candidates, ", "))
}

// readManifest loads manifest.json from an export directory.
func readManifest(dir string) (*export.Result, error) {
	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, err
	}
	var manifest export.Result
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest.json: %w", err)
	}
	manifest.DestPath = dir
	return &manifest, nil
}

// newArchiveHandler serves the export directory read-only.
func newArchiveHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Data files change on every export.
		if strings.HasSuffix(r.URL.Path, ".json") {
			w.Header().Set("Cache-Control", "no-cache")
		}
		files.ServeHTTP(w, r)
	})
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// findAvailablePort finds an available TCP port
func findAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	return addr.Port, nil
}

// openBrowser opens the default browser to the given URL
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
