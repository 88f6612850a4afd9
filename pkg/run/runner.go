/*
   R16 - fantasy console
   Copyright (c) 2023, The R16 Authors

   This file is part of R16.

   R16 is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   R16 is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with R16. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	DefaultAddress = ":8816"
	EnvPrefix      = "R16"
)

//
const runnerHelpEpilogue = `- Settings can also be made via environment variables, e.g. R16_ADDRESS
  for --address. Command line flags take precedence.

- Settings can also be stored in a config file, by default $HOME/.r16.yaml,
  using the long flag names as keys.
`

//
var apiClient = &http.Client{Timeout: 60 * time.Second}

//
type setting struct {
	ref      interface{}
	name     string
	required bool
}

// Runner is the base of all commands. It wraps a cobra command and binds each
// setting to a flag, an environment variable, and the config file.
type Runner struct {
	cobra.Command
	//
	Address  string
	LogLevel string
	Config   string
	//
	settings []*setting
	viper    *viper.Viper
	exec     func() error
}

//
func NewRunner(use, short, long, example, epilogue string,
	exec func() error) *Runner {

	r := &Runner{viper: viper.New(), exec: exec}

	if epilogue != "" {
		long = fmt.Sprintf("%s\n\n%s", long, epilogue)
	}

	r.Command = cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Example:       example,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.exec()
		},
	}

	r.viper.SetEnvPrefix(EnvPrefix)
	r.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	return r
}

// AddBaseSettings adds the settings common to all commands
func (r *Runner) AddBaseSettings() {
	r.AddSetting(&r.Address, "address", "a", "", DefaultAddress,
		"listen/target address of the R16 API in the form [host]:port", false)
	r.AddSetting(&r.LogLevel, "log-level", "", "", "info",
		"log level, one of debug, info, warn, error", false)
	r.AddSetting(&r.Config, "config", "", "", defaultConfig(),
		"config file", false)
}

// AddSetting adds a setting named name to this runner. The value will be
// stored in ref, which needs to be a pointer to a string, bool, int, or
// duration. When env is empty, the environment variable is derived from name.
func (r *Runner) AddSetting(ref interface{}, name, short, env string,
	dflt interface{}, usage string, required bool) {

	flags := r.Flags()

	switch v := ref.(type) {
	case *string:
		d, _ := dflt.(string)
		flags.StringVarP(v, name, short, d, usage)
	case *bool:
		d, _ := dflt.(bool)
		flags.BoolVarP(v, name, short, d, usage)
	case *int:
		d, _ := dflt.(int)
		flags.IntVarP(v, name, short, d, usage)
	case *time.Duration:
		d, _ := dflt.(time.Duration)
		flags.DurationVarP(v, name, short, d, usage)
	default:
		panic(fmt.Sprintf("unsupported setting type for %s: %T", name, ref))
	}

	if required {
		usage += " (required)"
		flags.Lookup(name).Usage = usage
	}

	if err := r.viper.BindPFlag(name, flags.Lookup(name)); err != nil {
		log.Fatalf("cannot bind flag %s: %v", name, err)
	}
	if env != "" {
		r.viper.BindEnv(name, env)
	} else {
		r.viper.BindEnv(name)
	}

	r.settings = append(r.settings, &setting{
		ref: ref, name: name, required: required})
}

// ParseSettings resolves all settings from flags, environment, config file,
// and defaults, in that order of precedence, and sets up logging. Missing
// required settings end the program.
func (r *Runner) ParseSettings() error {

	if cfg := r.viper.GetString("config"); cfg != "" {
		r.viper.SetConfigFile(cfg)
		if err := r.viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) || r.Flags().Changed("config") {
				log.Warnf("cannot read config file %s: %v", cfg, err)
			}
		}
	}

	for _, s := range r.settings {
		if s.required && !r.viper.IsSet(s.name) {
			return fmt.Errorf("setting '%s' is required", s.name)
		}
		switch v := s.ref.(type) {
		case *string:
			*v = r.viper.GetString(s.name)
		case *bool:
			*v = r.viper.GetBool(s.name)
		case *int:
			*v = r.viper.GetInt(s.name)
		case *time.Duration:
			*v = r.viper.GetDuration(s.name)
		}
	}

	level := log.InfoLevel
	if r.LogLevel != "" {
		l, err := log.ParseLevel(r.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level '%s'", r.LogLevel)
		}
		level = l
	}
	log.SetLevel(level)

	r.Flags().VisitAll(func(f *pflag.Flag) {
		log.WithFields(log.Fields{
			"setting": f.Name,
			"value":   r.viper.Get(f.Name)}).Debug("effective setting")
	})

	return nil
}

// IsSet determines whether setting name was given by flag, environment, or
// config file.
func (r *Runner) IsSet(name string) bool {
	return r.viper.IsSet(name) &&
		(r.Flags().Changed(name) || r.viper.InConfig(name) ||
			os.Getenv(envName(name)) != "")
}

//
func envName(name string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

//
func defaultConfig() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".r16.yaml")
	}
	return ""
}

//
func defaultHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "rainbow16")
	}
	return "rainbow16"
}

// apiCall sends a request to the R16 API. Callers need to close the returned
// body. Any status other than 200 is turned into an error carrying the reply.
func (r *Runner) apiCall(method, path string, json bool,
	body io.Reader) (io.ReadCloser, error) {

	addr := r.Address
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	req, err := http.NewRequest(method, addr+path, body)
	if err != nil {
		return nil, err
	}
	if json {
		req.Header.Set("Accept", "application/json")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	log.WithFields(log.Fields{
		"method": method,
		"url":    req.URL.String()}).Debug("API call")

	resp, err := apiClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s: %s", resp.Status,
			strings.TrimSpace(string(msg)))
	}

	return resp.Body, nil
}

// GetUserConfirmation asks a yes/no question on the terminal. Without a
// terminal on stdin, the answer is no.
func GetUserConfirmation(msg string) bool {

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Debug("stdin is not a terminal, not asking for confirmation")
		return false
	}

	fmt.Printf("%s [y/N]: ", msg)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
