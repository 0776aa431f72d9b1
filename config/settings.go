package config

import (
	"os"
	"path/filepath"
	"time"
)

// Settings groups the client-facing configuration derived from the
// environment snapshot. The backend base URL and the image host key come
// from the same variables the site frontend uses.
type Settings struct {
	APIBaseURL     string
	ImgBBKey       string
	ImgBBUploadURL string
	CredentialFile string
	HTTPTimeout    time.Duration

	// Delay between a successful submit and navigation away, so the
	// success notification stays visible.
	NavigateDelay       time.Duration
	ConfigNavigateDelay time.Duration

	PreviewPort string
}

func NewSettings(c map[string]string) Settings {
	return Settings{
		APIBaseURL:          GetString(c, "API_BASE_URL", "http://localhost:8080/api"),
		ImgBBKey:            GetString(c, "IMGBB_API_KEY", ""),
		ImgBBUploadURL:      GetString(c, "IMGBB_UPLOAD_URL", "https://api.imgbb.com/1/upload"),
		CredentialFile:      GetString(c, "CREDENTIAL_FILE", defaultCredentialFile()),
		HTTPTimeout:         time.Duration(GetInt(c, "HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		NavigateDelay:       GetMillis(c, "NAVIGATE_DELAY_MS", time.Second),
		ConfigNavigateDelay: GetMillis(c, "CONFIG_NAVIGATE_DELAY_MS", 1500*time.Millisecond),
		PreviewPort:         GetString(c, "PREVIEW_PORT", "4173"),
	}
}

func defaultCredentialFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".portfolio-admin-credential"
	}
	return filepath.Join(home, ".portfolio-admin", "credential")
}
