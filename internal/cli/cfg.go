package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xifanyan/helpspot"
)

const configFileSubPath = "/.hs.json"

var (
	cfgFile  string
	conf     Config
	testConn = "Y"
)

type Config struct {
	BaseURL   string `mapstructure:"base_url" json:"base_url"`
	APIToken  string `mapstructure:"api_token" json:"api_token"`
	Username  string `mapstructure:"username" json:"username"`
	Password  string `mapstructure:"password" json:"password"`
	Timeout   int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`
	VerifySSL bool   `mapstructure:"verify_ssl" json:"verify_ssl"`
	Output    string `mapstructure:"output" json:"output"`
}

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Interactively edit the HelpSpot connection settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := conf.credsForm().Run(); err != nil {
			return err
		}

		viper.Set("base_url", conf.BaseURL)
		viper.Set("api_token", conf.APIToken)
		viper.Set("username", conf.Username)
		viper.Set("password", conf.Password)
		viper.Set("verify_ssl", conf.VerifySSL)

		if err := viper.WriteConfig(); err != nil {
			return err
		}

		if strings.ToLower(testConn) == "y" {
			var err error
			client, err = newClient()
			if err != nil {
				return err
			}
			return connectionTest()
		}

		return nil
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigType("json")
		viper.SetConfigName(".hs")
	}

	viper.SetEnvPrefix("HELPSPOT")
	viper.AutomaticEnv()
	setCfgDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) || os.IsNotExist(err) {
			path := home + configFileSubPath
			fmt.Println("Creating default config file")
			if err := viper.WriteConfigAs(path); err != nil {
				fmt.Println("Error creating default config file:", err)
				os.Exit(1)
			}
			fmt.Println("Config file created - location:", path)
		} else {
			fmt.Println("Error reading config file:", err)
			os.Exit(1)
		}
	}
}

func setCfgDefaults() {
	slog.Debug("setting config defaults")
	viper.SetDefault("base_url", "")
	viper.SetDefault("api_token", "")
	viper.SetDefault("username", "")
	viper.SetDefault("password", "")
	viper.SetDefault("timeout_seconds", 30)
	viper.SetDefault("verify_ssl", true)
	viper.SetDefault("output", helpspot.OutputJSON)
}

func newClient() (*helpspot.Client, error) {
	var opts []helpspot.Option

	switch {
	case conf.APIToken != "":
		opts = append(opts, helpspot.WithToken(conf.APIToken))
	case conf.Username != "" || conf.Password != "":
		opts = append(opts, helpspot.WithBasicAuth(conf.Username, conf.Password))
	}

	if conf.Timeout > 0 {
		opts = append(opts, helpspot.WithTimeout(time.Duration(conf.Timeout)*time.Second))
	}
	if !conf.VerifySSL {
		opts = append(opts, helpspot.WithInsecureSkipVerify())
	}
	if conf.Output != "" {
		opts = append(opts, helpspot.WithOutput(conf.Output))
	}

	return helpspot.New(conf.BaseURL, opts...)
}

func (cfg *Config) credsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base URL").
				Placeholder(cfg.BaseURL).
				Validate(requiredInput).
				Inline(true).
				Value(&cfg.BaseURL),
			huh.NewInput().
				Title("API Token (leave blank for basic auth)").
				Placeholder(cfg.APIToken).
				Inline(true).
				Value(&cfg.APIToken),
			huh.NewInput().
				Title("Username").
				Placeholder(cfg.Username).
				Inline(true).
				Value(&cfg.Username),
			huh.NewInput().
				Title("Password").
				Placeholder(cfg.Password).
				EchoMode(huh.EchoModePassword).
				Inline(true).
				Value(&cfg.Password),
			huh.NewConfirm().
				Title("Verify TLS certificates?").
				Value(&cfg.VerifySSL),
			huh.NewInput().
				Title("Run connection test? (Y/n)").
				Placeholder(testConn).
				Inline(true).
				Value(&testConn),
		),
	).WithTheme(huh.ThemeBase16())
}

func requiredInput(s string) error {
	if s == "" {
		return errors.New("field is required")
	}
	return nil
}
