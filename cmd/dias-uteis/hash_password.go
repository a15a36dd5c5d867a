package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/dias-uteis/internal/auth"
	"github.com/username/dias-uteis/internal/config"
	"go.uber.org/zap"
)

func hashPasswordCmd() *cobra.Command {
	var file string
	var overwrite, unmask bool

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Create the Basic Auth file protecting calendar edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("file") {
				if cfg, err := config.Load(configPath); err == nil && cfg.Auth.File != "" {
					file = cfg.Auth.File
				}
			}

			in := bufio.NewReader(os.Stdin)
			fmt.Print("Username: ")
			username, err := in.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}
			username = strings.TrimSpace(username)

			read := func(prompt string) (string, error) {
				if unmask {
					fmt.Print(prompt)
					line, err := in.ReadString('\n')
					return strings.TrimRight(line, "\r\n"), err
				}
				return auth.ReadPassword(prompt, os.Stdout)
			}

			password, err := read("Password: ")
			if err != nil {
				if errors.Is(err, auth.ErrInterrupted) {
					return nil
				}
				return err
			}
			confirm, err := read("Confirm password: ")
			if err != nil {
				if errors.Is(err, auth.ErrInterrupted) {
					return nil
				}
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := auth.CreateFile(file, username, password, overwrite); err != nil {
				return err
			}

			logger.Info("Auth file created",
				zap.String("file", file),
				zap.String("user", username))
			fmt.Printf("Credentials written to %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "auth.secret", "Auth file path (default: auth.file from config)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing auth file")
	cmd.Flags().BoolVar(&unmask, "insecure-unmask-password", false, "Echo the password while typing")
	return cmd
}
