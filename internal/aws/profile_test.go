package aws

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const credentialsFile = `[default]
aws_access_key_id = AKIAEXAMPLE
aws_secret_access_key = secret

[ci]
aws_access_key_id = AKIACI
`

const configFile = `# shared config
[default]
region = us-west-2

[profile dev]
sso_session = corp
region = eu-west-1

[sso-session corp]
sso_region = us-east-1
region = ignored

[profile ci]
region = ap-southeast-1
`

func writeSharedFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	credPath := filepath.Join(dir, "credentials")
	configPath := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(credPath, []byte(credentialsFile), 0600))
	require.NoError(t, os.WriteFile(configPath, []byte(configFile), 0600))
	return credPath, configPath
}

func TestListProfiles(t *testing.T) {
	credPath, configPath := writeSharedFiles(t)

	profiles, err := listProfiles(credPath, configPath)
	require.NoError(t, err)

	assert.Equal(t, []SharedProfile{
		{Name: "default", Region: "us-west-2", Source: "credentials"},
		{Name: "ci", Region: "ap-southeast-1", Source: "credentials"},
		{Name: "dev", Region: "eu-west-1", Source: "config"},
	}, profiles)
}

func TestListProfiles_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	profiles, err := listProfiles(filepath.Join(dir, "nope"), filepath.Join(dir, "nada"))
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestValidateProfile(t *testing.T) {
	credPath, configPath := writeSharedFiles(t)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credPath)
	t.Setenv("AWS_CONFIG_FILE", configPath)

	assert.NoError(t, ValidateProfile("dev"))
	assert.NoError(t, ValidateProfile("default"))

	err := ValidateProfile("corp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "corp" not found`)
}
