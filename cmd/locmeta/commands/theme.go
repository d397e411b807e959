package commands

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
	"github.com/Sumatoshi-tech/locmeta/pkg/prefs"
	"github.com/Sumatoshi-tech/locmeta/pkg/site"
)

func newThemeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [auto|light|dark]",
		Short: "Show or set the color scheme preference",
		Long: `Without an argument, print the stored color scheme and the theme it
resolves to. With an argument, store it. "auto" follows the desktop dark mode
setting when it can be detected and falls back to light.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(prefs.SchemeAuto), string(prefs.SchemeLight), string(prefs.SchemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return setScheme(rt, args[0])
			}

			scheme, err := storedScheme(rt)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", scheme, prefs.Resolve(scheme, prefs.DetectOS))

			return err
		},
	}
}

func setScheme(rt *runtime, raw string) (err error) {
	scheme, err := prefs.ParseScheme(raw)
	if err != nil {
		return err
	}

	store, err := prefs.Open(rt.cfg.Prefs.Path)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, store.Close()) }()

	err = store.SetScheme(scheme)
	if err != nil {
		return err
	}

	rt.logger.Info("color scheme saved", "scheme", scheme, "path", rt.cfg.Prefs.Path)

	return nil
}

// storedScheme reads the preference, defaulting to prefs.default_scheme.
func storedScheme(rt *runtime) (_ prefs.Scheme, err error) {
	fallback, err := prefs.ParseScheme(rt.cfg.Prefs.DefaultScheme)
	if err != nil {
		return "", err
	}

	store, err := prefs.Open(rt.cfg.Prefs.Path)
	if err != nil {
		return "", err
	}

	defer func() { err = errors.Join(err, store.Close()) }()

	return store.Scheme(fallback)
}

// pageTheme resolves the theme of a rendered page: an explicit override wins
// over the stored preference.
func pageTheme(rt *runtime, override string) (plotpage.Theme, error) {
	var (
		scheme prefs.Scheme
		err    error
	)

	if override != "" {
		scheme, err = prefs.ParseScheme(override)
	} else {
		scheme, err = storedScheme(rt)
	}

	if err != nil {
		return "", err
	}

	return prefs.Resolve(scheme, prefs.DetectOS), nil
}

// navFor returns the navigation bar for the site page at path, for example
// "meta/".
func navFor(rt *runtime, path string) []plotpage.NavItem {
	cfg := rt.cfg.Site

	pages := site.DefaultPages(cfg.GitHubURL)
	if len(cfg.Pages) > 0 {
		pages = make([]site.Link, len(cfg.Pages))
		for i, p := range cfg.Pages {
			pages[i] = site.Link{URL: p.URL, Title: p.Title}
		}
	}

	nav := site.Nav{Pages: pages, BasePath: cfg.BasePath}
	current := &url.URL{Scheme: "https", Host: cfg.Host, Path: site.BasePathFor(cfg.Host, cfg.BasePath) + path}

	return nav.Items(current)
}
