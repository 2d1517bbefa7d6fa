package aws

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	credentialsSectionRe = regexp.MustCompile(`^\[([^\]]+)\]$`)
	configSectionRe      = regexp.MustCompile(`^\[profile\s+([^\]]+)\]$`)
	configDefaultRe      = regexp.MustCompile(`^\[default\]$`)
	regionRe             = regexp.MustCompile(`^\s*region\s*=\s*(.+)$`)
)

// SharedProfile is a profile declared in the shared AWS config or
// credentials file
type SharedProfile struct {
	Name   string
	Region string // from config file if set
	Source string // "credentials" or "config"
}

// ListProfiles reads profiles from the shared credentials and config files,
// honouring AWS_SHARED_CREDENTIALS_FILE and AWS_CONFIG_FILE
func ListProfiles() ([]SharedProfile, error) {
	return listProfiles(sharedCredentialsPath(), sharedConfigPath())
}

// ValidateProfile checks that a profile is declared in a shared file
func ValidateProfile(name string) error {
	profiles, err := ListProfiles()
	if err != nil {
		return err
	}

	for _, p := range profiles {
		if p.Name == name {
			return nil
		}
	}

	return fmt.Errorf("profile %q not found in %s or %s", name, sharedCredentialsPath(), sharedConfigPath())
}

func listProfiles(credPath, configPath string) ([]SharedProfile, error) {
	profileMap := make(map[string]*SharedProfile)

	credProfiles, err := parseINIFile(credPath, "credentials", false)
	if err == nil {
		for i := range credProfiles {
			profileMap[credProfiles[i].Name] = &credProfiles[i]
		}
	}

	// Config entries add region info or new profiles (SSO, assume-role)
	configProfiles, err := parseINIFile(configPath, "config", true)
	if err == nil {
		for i := range configProfiles {
			p := &configProfiles[i]
			if existing, ok := profileMap[p.Name]; ok {
				if existing.Region == "" && p.Region != "" {
					existing.Region = p.Region
				}
			} else {
				profileMap[p.Name] = p
			}
		}
	}

	profiles := make([]SharedProfile, 0, len(profileMap))
	for _, p := range profileMap {
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		// "default" first, then alphabetical
		if profiles[i].Name == "default" {
			return true
		}
		if profiles[j].Name == "default" {
			return false
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

func sharedCredentialsPath() string {
	if p := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); p != "" {
		return p
	}
	return filepath.Join(awsDir(), "credentials")
}

func sharedConfigPath() string {
	if p := os.Getenv("AWS_CONFIG_FILE"); p != "" {
		return p
	}
	return filepath.Join(awsDir(), "config")
}

func awsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aws"
	}
	return filepath.Join(home, ".aws")
}

// parseINIFile parses an AWS INI-style file
func parseINIFile(path, source string, isConfigFile bool) ([]SharedProfile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []SharedProfile
	var current *SharedProfile

	startSection := func(name string) {
		if current != nil {
			profiles = append(profiles, *current)
		}
		current = &SharedProfile{Name: strings.TrimSpace(name), Source: source}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if isConfigFile {
			if configDefaultRe.MatchString(line) {
				startSection("default")
				continue
			}
			if matches := configSectionRe.FindStringSubmatch(line); len(matches) == 2 {
				startSection(matches[1])
				continue
			}
			if strings.HasPrefix(line, "[") {
				// sso-session and services sections are not profiles
				if current != nil {
					profiles = append(profiles, *current)
				}
				current = nil
				continue
			}
		} else if matches := credentialsSectionRe.FindStringSubmatch(line); len(matches) == 2 {
			startSection(matches[1])
			continue
		}

		if current != nil {
			if matches := regionRe.FindStringSubmatch(line); len(matches) == 2 {
				current.Region = strings.TrimSpace(matches[1])
			}
		}
	}

	if current != nil {
		profiles = append(profiles, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
