package offerdoc

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfileYAML = `base_template: templates/base_{lang}.docx
anchor_heading: "1.2 Details"
new_subsection: Additional Information
fragments:
  - textblocks/intro_{lang}.docx
  - textblocks/pricing_{lang}_{currency}.docx
required_headings:
  - Introduction
languages: [en, de]
currencies: [EUR, CHF]
output:
  dir: generated
  prefix: Offer
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	profile, err := LoadProfile(writeProfile(t, sampleProfileYAML))
	require.NoError(t, err)

	assert.Equal(t, "templates/base_{lang}.docx", profile.BaseTemplate)
	assert.Equal(t, "1.2 Details", profile.AnchorHeading)
	assert.Equal(t, "Additional Information", profile.NewSubsection)
	assert.Equal(t, []string{"textblocks/intro_{lang}.docx", "textblocks/pricing_{lang}_{currency}.docx"}, profile.Fragments)
	assert.Equal(t, []string{"en", "de"}, profile.Languages)
	assert.Equal(t, []string{"EUR", "CHF"}, profile.Currencies)
	assert.Equal(t, "generated", profile.Output.Dir)
	assert.Equal(t, "Offer", profile.Output.Prefix)
}

func TestLoadProfileEnvironmentOverrides(t *testing.T) {
	t.Setenv("OFFERDOC_OUTPUT_DIR", "/tmp/offers")
	t.Setenv("OFFERDOC_OUTPUT_PREFIX", "Quote")

	profile, err := LoadProfile(writeProfile(t, sampleProfileYAML))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/offers", profile.Output.Dir)
	assert.Equal(t, "Quote", profile.Output.Prefix)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadProfileBadYAML(t *testing.T) {
	_, err := LoadProfile(writeProfile(t, "languages: [en\n"))
	assert.Error(t, err)
}

func TestProfileValidate(t *testing.T) {
	valid := func() *Profile {
		return &Profile{
			BaseTemplate:  "base.docx",
			AnchorHeading: "1.2 Details",
			Fragments:     []string{"a.docx"},
			Languages:     []string{"en"},
			Currencies:    []string{"EUR"},
			Output:        Output{Dir: "out"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{name: "missing base_template", mutate: func(p *Profile) { p.BaseTemplate = "" }},
		{name: "missing anchor_heading", mutate: func(p *Profile) { p.AnchorHeading = "" }},
		{name: "no fragments", mutate: func(p *Profile) { p.Fragments = nil }},
		{name: "no languages", mutate: func(p *Profile) { p.Languages = nil }},
		{name: "no currencies", mutate: func(p *Profile) { p.Currencies = nil }},
		{name: "missing output dir", mutate: func(p *Profile) { p.Output.Dir = "" }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := valid()
			tt.mutate(profile)
			assert.Error(t, profile.Validate())
		})
	}
}

func TestOutputName(t *testing.T) {
	profile := &Profile{Output: Output{Prefix: "Offer"}}

	name := profile.OutputName("en", "eur")
	assert.Regexp(t, regexp.MustCompile(`^Offer_EN_EUR_\d{8}-[0-9a-f]{8}\.docx$`), name)

	// consecutive calls must not collide
	assert.NotEqual(t, name, profile.OutputName("en", "eur"))
}

func TestOutputNameDefaultPrefix(t *testing.T) {
	profile := &Profile{}
	assert.Regexp(t, regexp.MustCompile(`^Offer_DE_CHF_`), profile.OutputName("de", "chf"))
}
