package offerdoc

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Profile describes one offer generation project: which base template to
// fill, which textblock fragments to merge where, and how to name the
// output per language and currency.
type Profile struct {
	BaseTemplate     string   `yaml:"base_template"`
	AnchorHeading    string   `yaml:"anchor_heading"`
	NewSubsection    string   `yaml:"new_subsection,omitempty"`
	Fragments        []string `yaml:"fragments"`
	RequiredHeadings []string `yaml:"required_headings,omitempty"`
	Languages        []string `yaml:"languages"`
	Currencies       []string `yaml:"currencies"`
	Output           Output   `yaml:"output"`
}

// Output controls where merged documents are written and how they are named
type Output struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoadProfile reads a YAML profile. A .env file next to the working
// directory is picked up first; OFFERDOC_* environment variables override
// the file's output settings.
func LoadProfile(path string) (*Profile, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if dir := os.Getenv("OFFERDOC_OUTPUT_DIR"); dir != "" {
		profile.Output.Dir = dir
	}
	if prefix := os.Getenv("OFFERDOC_OUTPUT_PREFIX"); prefix != "" {
		profile.Output.Prefix = prefix
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Validate checks that the profile names everything a generation run needs
func (p *Profile) Validate() error {
	if p.BaseTemplate == "" {
		return errors.New("profile is missing base_template")
	}
	if p.AnchorHeading == "" {
		return errors.New("profile is missing anchor_heading")
	}
	if len(p.Fragments) == 0 {
		return errors.New("profile lists no fragments")
	}
	if len(p.Languages) == 0 {
		return errors.New("profile lists no languages")
	}
	if len(p.Currencies) == 0 {
		return errors.New("profile lists no currencies")
	}
	if p.Output.Dir == "" {
		return errors.New("profile is missing output.dir")
	}
	return nil
}

// OutputName builds the offer number style file name for one language and
// currency combination, e.g. "Offer_EN_EUR_20260827-a1b2c3d4.docx". The
// random suffix keeps repeated runs from overwriting each other.
func (p *Profile) OutputName(language, currency string) string {
	prefix := p.Output.Prefix
	if prefix == "" {
		prefix = "Offer"
	}
	stamp := time.Now().Format("20060102")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s_%s-%s.docx",
		prefix, strings.ToUpper(language), strings.ToUpper(currency), stamp, suffix)
}
