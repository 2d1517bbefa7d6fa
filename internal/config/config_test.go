package config

import (
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/home/test/.config/cfnperms/config.yaml"

func stubFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	stub := gostub.Stub(&configFs, fs)
	t.Cleanup(stub.Reset)
	return fs
}

func TestLoadConfig_Missing(t *testing.T) {
	stubFs(t)

	cfg, err := LoadConfig(testPath)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	fs := stubFs(t)
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("base_url: [unterminated"), 0644))

	_, err := LoadConfig(testPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	fs := stubFs(t)

	cfg := &Config{Region: "eu-west-1", Output: "table"}
	require.NoError(t, SaveConfig(testPath, cfg))

	data, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)
	assert.Equal(t, "region: eu-west-1\noutput: table\n", string(data))

	loaded, err := LoadConfig(testPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{KeyBaseURL, "http://localhost:9000/schemas", false},
		{KeySource, "registry", false},
		{KeySource, "s3", true},
		{KeyOutput, "yaml", false},
		{KeyOutput, "xml", true},
		{KeyTimeout, "30s", false},
		{KeyTimeout, "soon", true},
		{KeyTimeout, "-1s", true},
		{KeyRegion, "us-east-1", false},
		{KeyProfile, "dev", false},
		{KeyLogLevel, "debug", false},
		{"colour", "blue", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	v := viper.New()
	Apply(v, &Config{})

	s, err := Resolve(v)
	require.NoError(t, err)
	assert.Equal(t, &Settings{
		Source:   DefaultSource,
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
	}, s)
}

func TestResolve_Precedence(t *testing.T) {
	fileCfg := &Config{
		BaseURL: "http://from-file",
		Region:  "eu-west-1",
		Output:  "table",
		Timeout: "5s",
	}

	t.Setenv("CFNPERMS_REGION", "ap-northeast-1")
	t.Setenv("CFNPERMS_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("base-url", "", "")

	v := viper.New()
	require.NoError(t, v.BindPFlag(KeyOutput, flags.Lookup("output")))
	require.NoError(t, v.BindPFlag(KeyBaseURL, flags.Lookup("base-url")))
	Apply(v, fileCfg)
	require.NoError(t, flags.Parse([]string{"--output", "yaml"}))

	s, err := Resolve(v)
	require.NoError(t, err)

	assert.Equal(t, "yaml", s.Output, "flag beats env")
	assert.Equal(t, "ap-northeast-1", s.Region, "env beats file")
	assert.Equal(t, "http://from-file", s.BaseURL, "file beats default")
	assert.Equal(t, 5*time.Second, s.Timeout)
}

func TestResolve_Invalid(t *testing.T) {
	v := viper.New()
	Apply(v, &Config{Source: "ftp"})
	_, err := Resolve(v)
	assert.Error(t, err)
}

func TestGetConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/cfnperms/config.yaml", GetConfigPath())
}
