package main

import (
	"fmt"

	"github.com/kpruthvi/portfolio/internal/site"

	"github.com/spf13/cobra"
)

func openThemeManager() (*site.ThemeManager, string, error) {
	path, err := site.DefaultSettingsPath()
	if err != nil {
		return nil, "", err
	}

	store, err := site.OpenFileStore(path)
	if err != nil {
		return nil, "", err
	}

	m, err := site.NewThemeManager(store, nil)
	if err != nil {
		return nil, "", err
	}
	return m, path, nil
}

func printTheme(m *site.ThemeManager) {
	fmt.Printf("Theme: %s %s (%s)\n", m.Theme(), m.Icon(), m.AriaLabel())
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage the saved colour theme",
	Long:  `View and change the colour theme stored in ~/.portfolio/settings.json.`,
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the saved theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, path, err := openThemeManager()
		if err != nil {
			return err
		}
		printTheme(m)
		logger.Debug("Settings file: %s", path)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Save a theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(site.ThemeLight), string(site.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := site.ParseTheme(args[0])
		if err != nil {
			return err
		}

		m, _, err := openThemeManager()
		if err != nil {
			return err
		}
		if err := m.SetTheme(theme); err != nil {
			return err
		}
		printTheme(m)
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := openThemeManager()
		if err != nil {
			return err
		}
		if _, err := m.Toggle(); err != nil {
			return err
		}
		printTheme(m)
		return nil
	},
}
