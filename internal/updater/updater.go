// Package updater implements self-update from GitHub releases.
package updater

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	githubAPIURL = "https://api.github.com/repos/docwriter/docwriter/releases/latest"
	userAgent    = "docwriter-updater"
)

// Release represents a GitHub release.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a release asset.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Updater checks for and applies new versions of the binary.
type Updater struct {
	currentVersion string
}

// NewUpdater creates an updater for the running version.
func NewUpdater(currentVersion string) *Updater {
	return &Updater{currentVersion: currentVersion}
}

// CheckForUpdate reports whether a newer release is available. A "dev" build
// always counts as updatable.
func (u *Updater) CheckForUpdate() (*Release, bool, error) {
	release, err := u.getLatestRelease()
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch latest release: %w", err)
	}

	if u.currentVersion == "dev" {
		return release, true, nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(u.currentVersion, "v")
	return release, latest != current, nil
}

// Update downloads the release asset for this platform and replaces the
// running binary.
func (u *Updater) Update(release *Release) error {
	asset, err := selectAsset(release.Assets)
	if err != nil {
		return err
	}

	fmt.Printf("Downloading %s (%d bytes)...\n", asset.Name, asset.Size)
	tmpFile, err := downloadAsset(asset)
	if err != nil {
		return fmt.Errorf("failed to download asset: %w", err)
	}
	defer os.Remove(tmpFile)

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	return replaceExecutable(tmpFile, execPath)
}

func (u *Updater) getLatestRelease() (*Release, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequest(http.MethodGet, githubAPIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

func selectAsset(assets []Asset) (*Asset, error) {
	goos := runtime.GOOS
	goarch := runtime.GOARCH

	for _, asset := range assets {
		name := strings.ToLower(asset.Name)
		if strings.Contains(name, goos) && strings.Contains(name, goarch) {
			return &asset, nil
		}
	}
	for _, asset := range assets {
		if strings.Contains(strings.ToLower(asset.Name), goos) {
			return &asset, nil
		}
	}
	return nil, fmt.Errorf("no suitable asset found for %s/%s", goos, goarch)
}

func downloadAsset(asset *Asset) (string, error) {
	client := &http.Client{Timeout: 5 * time.Minute}

	req, err := http.NewRequest(http.MethodGet, asset.BrowserDownloadURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "docwriter-update-*")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}
	return tmpFile.Name(), nil
}

// replaceExecutable swaps in the new binary. Windows cannot replace a running
// executable, so the old one is parked as .old and removed on next start.
func replaceExecutable(newPath, execPath string) error {
	if runtime.GOOS != "windows" {
		if err := os.Chmod(newPath, 0o755); err != nil {
			return fmt.Errorf("failed to make binary executable: %w", err)
		}
		if err := os.Rename(newPath, execPath); err != nil {
			return fmt.Errorf("failed to replace executable: %w", err)
		}
		fmt.Println("Update successful!")
		return nil
	}

	oldPath := execPath + ".old"
	os.Remove(oldPath)
	if err := os.Rename(execPath, oldPath); err != nil {
		return fmt.Errorf("failed to backup current executable: %w", err)
	}
	if err := copyFile(newPath, execPath); err != nil {
		os.Rename(oldPath, execPath)
		return fmt.Errorf("failed to copy new executable: %w", err)
	}
	fmt.Println("Update successful! Restart to use the new version.")
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}

// CleanupOldVersion removes the .old backup left behind by a previous update
// (Windows only).
func CleanupOldVersion() {
	if runtime.GOOS != "windows" {
		return
	}
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	os.Remove(execPath + ".old")
}
