/*
Package cmd implements the command-line interface for the MCP to A2A bridge.
It provides commands to serve the bridge and to exercise a running one.
*/
package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the service,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

/*
rootCmd represents the base command when called without any subcommands
*/
var (
	projectName = "a2a-bridge"
	cfgFile     string

	rootCmd = &cobra.Command{
		Use:   projectName,
		Short: "Expose A2A agents as MCP tools",
		Long:  longRoot,
	}
)

/*
Execute is the main entry point for the CLI.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file name in $HOME/."+projectName+", or a path to one; created from the defaults if missing",
	)
}

/*
initConfig writes the default config file if the configured one doesn't exist,
then reads it. Environment variables prefixed with A2A_BRIDGE override file
values, e.g. A2A_BRIDGE_SERVER_PORT.
*/
func initConfig() {
	home, _ := os.UserHomeDir()
	path := configPath(home)

	if err := writeConfig(path); err != nil {
		log.Fatal("failed to write config", "error", err)
	}

	viper.SetConfigFile(path)

	if filepath.Ext(path) == "" {
		viper.SetConfigType("yml")
	}
	viper.SetEnvPrefix("A2A_BRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatal("failed to read config", "error", err)
	}

	if level, err := log.ParseLevel(viper.GetString("log.level")); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("unknown log level, keeping default", "level", viper.GetString("log.level"))
	}
}

/*
configPath resolves the --config flag. A bare file name lives in the
per-user config directory; anything with a directory part is used as given.
*/
func configPath(home string) string {
	if filepath.Base(cfgFile) != cfgFile {
		return cfgFile
	}

	return filepath.Join(home, "."+projectName, cfgFile)
}

func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.path", "/mcp")
	viper.SetDefault("bridge.timeout", "30s")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("client.server", "http://localhost:3000")
}

/*
writeConfig seeds path with the embedded default config unless a file is
already there.
*/
func writeConfig(path string) (err error) {
	var (
		fh  fs.File
		buf bytes.Buffer
	)

	if CheckFileExists(path) {
		return nil
	}

	if dir := filepath.Dir(path); !CheckFileExists(dir) {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if fh, err = embedded.Open("cfg/config.yml"); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}

	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote config file", "path", path)

	return nil
}

func CheckFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
a2a-bridge lets MCP clients reach agents that speak the Agent-to-Agent (A2A)
protocol. It exposes three tools: a2a_discover, a2a_list_agents and a2a_send.
`
