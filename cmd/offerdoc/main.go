package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/offerdoc/go-offerdoc/pkg/offerdoc"
	"github.com/offerdoc/go-offerdoc/pkg/offerdoc/ooxml"
)

var CLI struct {
	LogLevel string `help:"Log verbosity (debug, info, warn, error, off)." default:"info"`
	Strict   bool   `help:"Treat a failing validation report as fatal before save."`

	Merge    MergeCmd    `cmd:"" help:"Merge fragment documents into a base document at an anchor heading."`
	Generate GenerateCmd `cmd:"" help:"Run a profile-driven batch per language and currency."`
	Validate ValidateCmd `cmd:"" help:"Validate the structural invariants of a document."`
}

func engineConfig() *offerdoc.Config {
	config := offerdoc.ConfigFromEnvironment()
	config.LogLevel = CLI.LogLevel
	if CLI.Strict {
		config.StrictMode = true
	}
	offerdoc.SetGlobalConfig(config)
	return config
}

// MergeCmd merges one or more fragments at a single anchor
type MergeCmd struct {
	Base       string   `arg:"" help:"Base document path." type:"existingfile"`
	Out        string   `help:"Output document path." required:""`
	Fragment   []string `help:"Fragment document path (repeatable)." required:""`
	Anchor     string   `help:"Anchor heading text, e.g. '1.2 Details'." required:""`
	Subsection string   `help:"New subsection heading appended after the inserted content (single fragment only)."`
	Required   []string `help:"Required heading text for validation (repeatable)."`
}

func (c *MergeCmd) Run() error {
	config := engineConfig()

	if c.Subsection != "" && len(c.Fragment) != 1 {
		return fmt.Errorf("--subsection requires exactly one fragment")
	}

	source, err := os.ReadFile(c.Base)
	if err != nil {
		return fmt.Errorf("failed to read base document: %w", err)
	}
	doc, err := ooxml.Load(source)
	if err != nil {
		return err
	}

	merger := offerdoc.NewMerger(config)

	if c.Subsection != "" {
		fragment, err := ooxml.LoadFragment(c.Fragment[0])
		if err != nil {
			return err
		}
		if err := merger.MergeContent(doc, fragment, c.Anchor, c.Subsection); err != nil {
			return err
		}
	} else {
		fragments := make([]*offerdoc.Document, 0, len(c.Fragment))
		for _, path := range c.Fragment {
			fragment, err := ooxml.LoadFragment(path)
			if err != nil {
				// keep best-effort semantics: a bad file is a failed
				// fragment, not a failed run
				offerdoc.GetLogger().Warn("skipping fragment %s: %v", path, err)
				continue
			}
			fragments = append(fragments, fragment)
		}
		report := merger.MergeMany(doc, fragments, c.Anchor)
		for _, failure := range report.Failures {
			fmt.Fprintf(os.Stderr, "fragment %d failed: %v\n", failure.FragmentIndex, failure.Err)
		}
	}

	return validateAndSave(doc, source, c.Out, c.Required, config)
}

// GenerateCmd runs one merge batch per language and currency from a profile
type GenerateCmd struct {
	Profile string `arg:"" help:"Profile YAML path." type:"existingfile"`
}

func (c *GenerateCmd) Run() error {
	config := engineConfig()

	profile, err := offerdoc.LoadProfile(c.Profile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(profile.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	merger := offerdoc.NewMerger(config)
	logger := offerdoc.GetLogger()

	for _, language := range profile.Languages {
		for _, currency := range profile.Currencies {
			source, err := os.ReadFile(expandPlaceholders(profile.BaseTemplate, language, currency))
			if err != nil {
				return fmt.Errorf("failed to read base template: %w", err)
			}
			doc, err := ooxml.Load(source)
			if err != nil {
				return err
			}

			fragments := make([]*offerdoc.Document, 0, len(profile.Fragments))
			for _, path := range profile.Fragments {
				fragment, err := ooxml.LoadFragment(expandPlaceholders(path, language, currency))
				if err != nil {
					logger.Warn("skipping fragment %s: %v", path, err)
					continue
				}
				fragments = append(fragments, fragment)
			}

			report := merger.MergeMany(doc, fragments, profile.AnchorHeading)
			logger.WithFields(offerdoc.Fields{
				"language": language,
				"currency": currency,
				"applied":  report.Applied,
				"failed":   len(report.Failures),
			}).Info("merged offer document")

			out := filepath.Join(profile.Output.Dir, profile.OutputName(language, currency))
			if err := validateAndSave(doc, source, out, profile.RequiredHeadings, config); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateCmd prints the validation report for a document
type ValidateCmd struct {
	File     string   `arg:"" help:"Document path." type:"existingfile"`
	Required []string `help:"Required heading text (repeatable)."`
}

func (c *ValidateCmd) Run() error {
	config := engineConfig()

	doc, err := ooxml.LoadFile(c.File)
	if err != nil {
		return err
	}

	report := offerdoc.Validate(doc, c.Required)
	fmt.Printf("numbering contiguous:  %v\n", report.NumberingContiguous)
	fmt.Printf("nested lists present:  %v\n", report.HasNestedLists)
	if len(report.MissingRequiredHeadings) > 0 {
		fmt.Printf("missing headings:      %s\n", strings.Join(report.MissingRequiredHeadings, ", "))
	}
	fmt.Printf("fingerprint:           %s\n", offerdoc.Fingerprint(doc))

	if config.StrictMode {
		return report.Err()
	}
	return nil
}

// validateAndSave runs validation, honors strict mode, and writes the
// merged package. Validation is advisory outside strict mode.
func validateAndSave(doc *offerdoc.Document, source []byte, out string, required []string, config *offerdoc.Config) error {
	report := offerdoc.Validate(doc, required)
	if err := report.Err(); err != nil {
		if config.StrictMode {
			return err
		}
		offerdoc.GetLogger().Warn("validation: %v", err)
	}

	data, err := ooxml.Save(doc, source)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	offerdoc.GetLogger().WithField("path", out).Info("saved merged document")
	return nil
}

// expandPlaceholders substitutes {lang} and {currency} in profile paths
func expandPlaceholders(path, language, currency string) string {
	path = strings.ReplaceAll(path, "{lang}", strings.ToLower(language))
	return strings.ReplaceAll(path, "{currency}", strings.ToUpper(currency))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("offerdoc"),
		kong.Description("Offer document generator - merges language and currency specific textblocks into base templates"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
