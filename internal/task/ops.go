package task

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/aide-sh/aide/internal/constants"
)

// organizeFolders maps destination folder names to the file extensions
// they collect.
var organizeFolders = []struct {
	name       string
	extensions []string
}{
	{"Documents", []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt"}},
	{"Images", []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"}},
	{"Videos", []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm"}},
	{"Audio", []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma"}},
	{"Archives", []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"}},
	{"Code", []string{".py", ".js", ".html", ".css", ".cpp", ".java", ".go", ".rs"}},
}

// stringParam reads a string param with a fallback.
func stringParam(params map[string]any, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// intParam reads an int param with a fallback, accepting the float64 that
// JSON decoding produces.
func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

func homeDir(sub string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, sub)
}

// systemCleanup removes stale files from the temp directories. The
// "directories" param overrides the default sweep set.
func (d *Dispatcher) systemCleanup(params map[string]any) map[string]any {
	dirs := []string{os.TempDir(), "/var/tmp", homeDir(".cache")}
	if v, ok := params["directories"].([]string); ok {
		dirs = v
	}

	cleaned := []string{}
	errs := []string{}
	cutoff := d.nowFunc().Add(-constants.CleanupFileAge)

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			info, err := entry.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(path); err != nil {
					errs = append(errs, fmt.Sprintf("could not remove %s: %v", path, err))
				} else {
					cleaned = append(cleaned, path)
				}
			}
			return nil
		})
	}

	return map[string]any{"cleaned": cleaned, "errors": errs}
}

// organizeFiles sorts the files of one directory into per-category
// subfolders. Name collisions get a numeric suffix.
func (d *Dispatcher) organizeFiles(params map[string]any) map[string]any {
	directory := stringParam(params, "directory", homeDir("Downloads"))
	if _, err := os.Stat(directory); err != nil {
		return map[string]any{"error": fmt.Sprintf("Directory %s does not exist", directory)}
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("File organization failed: %v", err)}
	}

	organized := []string{}
	createdFolders := []string{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		folder := folderFor(ext)
		if folder == "" {
			continue
		}

		folderPath := filepath.Join(directory, folder)
		if _, err := os.Stat(folderPath); os.IsNotExist(err) {
			if err := os.MkdirAll(folderPath, 0755); err != nil {
				return map[string]any{"error": fmt.Sprintf("File organization failed: %v", err)}
			}
			createdFolders = append(createdFolders, folderPath)
		}

		dest := filepath.Join(folderPath, entry.Name())
		base := strings.TrimSuffix(entry.Name(), ext)
		for n := 1; ; n++ {
			if _, err := os.Stat(dest); os.IsNotExist(err) {
				break
			}
			dest = filepath.Join(folderPath, fmt.Sprintf("%s_%d%s", base, n, ext))
		}

		if err := os.Rename(filepath.Join(directory, entry.Name()), dest); err != nil {
			return map[string]any{"error": fmt.Sprintf("File organization failed: %v", err)}
		}
		organized = append(organized, fmt.Sprintf("%s -> %s/", entry.Name(), folder))
	}

	return map[string]any{"organized": organized, "created_folders": createdFolders}
}

func folderFor(ext string) string {
	for _, f := range organizeFolders {
		for _, e := range f.extensions {
			if e == ext {
				return f.name
			}
		}
	}
	return ""
}

// networkDiagnostics probes connectivity, enumerates interface addresses,
// and reports traffic counters. The "probe_addr" param overrides the
// public DNS endpoint used for the connectivity check.
func (d *Dispatcher) networkDiagnostics(params map[string]any) map[string]any {
	results := map[string]any{}

	probe := stringParam(params, "probe_addr", "8.8.8.8:53")
	start := time.Now()
	conn, err := net.DialTimeout("tcp", probe, 3*time.Second)
	if err != nil {
		results["internet_status"] = "No connection"
	} else {
		conn.Close()
		results["internet_status"] = "Connected"
		results["probe_latency_ms"] = time.Since(start).Milliseconds()
	}

	if ifaces, err := gnet.Interfaces(); err == nil {
		addrs := map[string][]string{}
		for _, iface := range ifaces {
			for _, addr := range iface.Addrs {
				addrs[iface.Name] = append(addrs[iface.Name], addr.Addr)
			}
		}
		results["interfaces"] = addrs
	}

	if counters, err := gnet.IOCounters(false); err == nil && len(counters) > 0 {
		results["network_stats"] = map[string]any{
			"bytes_sent":       counters[0].BytesSent,
			"bytes_received":   counters[0].BytesRecv,
			"packets_sent":     counters[0].PacketsSent,
			"packets_received": counters[0].PacketsRecv,
		}
	}

	return results
}

// optimizePerformance surveys memory-heavy processes and flags resource
// pressure. It never kills anything; output is advisory.
func (d *Dispatcher) optimizePerformance(params map[string]any) map[string]any {
	warnings := []string{}

	type procInfo struct {
		PID           int32   `json:"pid"`
		Name          string  `json:"name"`
		MemoryPercent float32 `json:"memory_percent"`
	}
	heavy := []procInfo{}

	procs, err := process.Processes()
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("Performance optimization failed: %v", err)}
	}
	for _, p := range procs {
		memPct, err := p.MemoryPercent()
		if err != nil || memPct <= 5.0 {
			continue
		}
		name, err := p.Name()
		if err != nil {
			continue
		}
		heavy = append(heavy, procInfo{PID: p.Pid, Name: name, MemoryPercent: memPct})
	}
	sort.Slice(heavy, func(i, j int) bool { return heavy[i].MemoryPercent > heavy[j].MemoryPercent })
	if len(heavy) > 10 {
		heavy = heavy[:10]
	}

	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 && percents[0] > 80 {
		warnings = append(warnings, "High CPU usage detected. Consider closing unnecessary applications.")
	}
	if du, err := disk.Usage("/"); err == nil && du.UsedPercent > 90 {
		warnings = append(warnings, "Disk space is running low. Consider cleaning up files.")
	}

	return map[string]any{
		"memory_heavy_processes": heavy,
		"warnings":               warnings,
	}
}

// automatedBackup copies a source tree into a timestamped folder under the
// backup directory. Params "source_dir" and "backup_dir" override the
// defaults.
func (d *Dispatcher) automatedBackup(params map[string]any) map[string]any {
	sourceDir := stringParam(params, "source_dir", homeDir("Documents"))
	backupDir := stringParam(params, "backup_dir", homeDir("Backups"))

	if _, err := os.Stat(sourceDir); err != nil {
		return map[string]any{"error": fmt.Sprintf("Backup failed: source %s does not exist", sourceDir)}
	}

	timestamp := d.nowFunc().Format("20060102_150405")
	dest := filepath.Join(backupDir, "backup_"+timestamp)

	copied := 0
	err := filepath.WalkDir(sourceDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("Backup process failed: %v", err)}
	}

	return map[string]any{
		"status":          "success",
		"backup_location": dest,
		"timestamp":       timestamp,
		"files_copied":    copied,
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// smartScheduling recommends when to run heavy work based on current load
// and time of day.
func (d *Dispatcher) smartScheduling(params map[string]any) map[string]any {
	now := d.nowFunc()
	hour := now.Hour()

	var cpuPct, memPct float64
	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		cpuPct = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		memPct = vm.UsedPercent
	}

	recommendations := []string{}
	if cpuPct < 30 && memPct < 60 {
		if hour >= 9 && hour <= 17 {
			recommendations = append(recommendations, "Good time for resource-intensive tasks")
		} else {
			recommendations = append(recommendations, "System resources are available for background tasks")
		}
	}
	if hour < 9 || hour > 22 {
		recommendations = append(recommendations, "Quiet hours - good for automated maintenance")
	}

	return map[string]any{
		"current_time":    now.Format(time.RFC3339),
		"system_load":     map[string]any{"cpu": cpuPct, "memory": memPct},
		"recommendations": recommendations,
	}
}

// resourceMonitoring samples CPU and memory over a duration (seconds, from
// the "duration" param) and reports the samples with averages.
func (d *Dispatcher) resourceMonitoring(params map[string]any) map[string]any {
	duration := intParam(params, "duration", constants.DefaultMonitorDuration)
	if duration <= 0 {
		return map[string]any{"error": "Resource monitoring failed: non-positive duration"}
	}

	interval := duration / 12
	if interval < 1 {
		interval = 1
	}
	if interval > 5 {
		interval = 5
	}

	type sample struct {
		Timestamp     string  `json:"timestamp"`
		CPUPercent    float64 `json:"cpu_percent"`
		MemoryPercent float64 `json:"memory_percent"`
	}
	samples := []sample{}

	for i := 0; i < duration/interval; i++ {
		s := sample{Timestamp: d.nowFunc().Format(time.RFC3339)}
		if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
			s.CPUPercent = percents[0]
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			s.MemoryPercent = vm.UsedPercent
		}
		samples = append(samples, s)
		d.sleep(time.Duration(interval) * time.Second)
	}

	results := map[string]any{
		"start_time": d.nowFunc().Format(time.RFC3339),
		"duration":   duration,
		"samples":    samples,
	}
	if len(samples) > 0 {
		var cpuSum, memSum float64
		for _, s := range samples {
			cpuSum += s.CPUPercent
			memSum += s.MemoryPercent
		}
		results["averages"] = map[string]any{
			"cpu_percent":    cpuSum / float64(len(samples)),
			"memory_percent": memSum / float64(len(samples)),
		}
	}
	return results
}

// securityScan runs advisory checks: runaway processes, established
// connections, and world-writable sensitive directories.
func (d *Dispatcher) securityScan(params map[string]any) map[string]any {
	checks := []string{}
	warnings := []string{}

	procs, err := process.Processes()
	if err == nil {
		suspicious := []string{}
		for _, p := range procs {
			cpuPct, err := p.CPUPercent()
			if err != nil || cpuPct <= 90 {
				continue
			}
			name, err := p.Name()
			if err != nil {
				continue
			}
			suspicious = append(suspicious, fmt.Sprintf("%s (pid %d)", name, p.Pid))
		}
		if len(suspicious) > 0 {
			warnings = append(warnings, fmt.Sprintf("High CPU processes detected: %s", strings.Join(suspicious, ", ")))
		} else {
			checks = append(checks, "No suspicious high-CPU processes found")
		}
	}

	if conns, err := gnet.Connections("inet"); err == nil {
		established := 0
		for _, c := range conns {
			if c.Status == "ESTABLISHED" && c.Raddr.IP != "" {
				established++
			}
		}
		checks = append(checks, fmt.Sprintf("Active network connections: %d", established))
	}

	for _, dir := range []string{"/etc", "/usr/bin", "/usr/sbin"} {
		info, err := os.Stat(dir)
		if err != nil {
			continue
		}
		if info.Mode().Perm()&0o002 != 0 {
			warnings = append(warnings, fmt.Sprintf("World-writable sensitive directory: %s", dir))
		} else {
			checks = append(checks, fmt.Sprintf("Permissions OK for %s", dir))
		}
	}

	return map[string]any{
		"checks":   checks,
		"warnings": warnings,
		"recommendations": []string{
			"Keep system updated",
			"Use strong passwords",
			"Enable firewall",
			"Regular security updates",
		},
	}
}
