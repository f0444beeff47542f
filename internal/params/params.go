// Package params holds the per-language filtering parameters and the table
// that resolves a language code to its parameter set.
//
// Every tunable of the cleaning and filtering pipeline lives in FilterConfig:
// the character classes, the check toggles, and the numeric cutoffs. A Table
// maps language codes to configs and always carries a "default" entry that
// serves any language without one of its own, so resolution never fails.
package params

// Character classes shared by the built-in parameter sets. StripChars is
// trimmed from token edges before ratio checks; SpecialChars defines which
// runes count as special for the special-character ratio.
const (
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	digits      = "0123456789"
	whitespace  = " \t\n\r\x0b\x0c"
	extraMarks  = "“”‘’«»„…–—·•¡¿§©®™°±€£¥"

	// DefaultLang is the code of the fallback entry every table carries.
	DefaultLang = "default"
)

// FilterConfig is the full parameter set for one language.
type FilterConfig struct {
	// StripChars is the cutset trimmed from both ends of each token.
	StripChars string `yaml:"strip_chars"`
	// SpecialChars enumerates the runes counted by the special-character
	// ratio check.
	SpecialChars string `yaml:"special_chars"`

	// Word-level cleaning.
	DropWordsWithSubstrings bool     `yaml:"drop_words_with_substrings"`
	ForbiddenSubstrings     []string `yaml:"forbidden_substrings"`
	DropLongWords           bool     `yaml:"drop_long_words"`
	LongWordCutoff          int      `yaml:"long_word_cutoff"`

	// Check toggles and cutoffs, applied in the fixed pipeline order.
	CheckEmpty bool `yaml:"check_empty"`

	CheckSpecialChars  bool    `yaml:"check_special_chars"`
	SpecialCharsCutoff float64 `yaml:"special_chars_cutoff"`

	CheckStopwords    bool    `yaml:"check_stopwords"`
	StopwordMinCutoff float64 `yaml:"stopword_min_cutoff"`
	StopwordMaxCutoff float64 `yaml:"stopword_max_cutoff"`

	CheckBadwords  bool    `yaml:"check_badwords"`
	BadwordsCutoff float64 `yaml:"badwords_cutoff"`

	CheckLangID  bool    `yaml:"check_lang_id"`
	LangIDCutoff float64 `yaml:"lang_id_cutoff"`

	CheckPerplexity  bool    `yaml:"check_perplexity"`
	PerplexityCutoff float64 `yaml:"perplexity_cutoff"`
}

// Table maps language codes to filter configs. The zero value is unusable;
// build one with DefaultTable, Load, or New.
type Table struct {
	configs map[string]FilterConfig
}

// New builds a table from explicit entries. The map must contain a
// "default" entry, which backs every language without its own.
func New(configs map[string]FilterConfig) (*Table, error) {
	if _, ok := configs[DefaultLang]; !ok {
		return nil, errMissingDefault
	}
	copied := make(map[string]FilterConfig, len(configs))
	for code, cfg := range configs {
		copied[code] = cfg
	}
	return &Table{configs: copied}, nil
}

// ConfigFor resolves the parameter set for a language code, falling back to
// the default entry when the code has no entry of its own.
func (t *Table) ConfigFor(lang string) FilterConfig {
	if cfg, ok := t.configs[lang]; ok {
		return cfg
	}
	return t.configs[DefaultLang]
}

// Has reports whether the table carries a dedicated entry for lang.
func (t *Table) Has(lang string) bool {
	_, ok := t.configs[lang]
	return ok
}

// Languages returns the codes with dedicated entries, default included.
func (t *Table) Languages() []string {
	codes := make([]string, 0, len(t.configs))
	for code := range t.configs {
		codes = append(codes, code)
	}
	return codes
}

// baseConfig is the conservative fallback applied to languages without a
// tuned entry. Perplexity filtering stays off here because cutoffs vary too
// much across languages to share a sane default.
func baseConfig() FilterConfig {
	return FilterConfig{
		StripChars:   punctuation + digits + whitespace + extraMarks,
		SpecialChars: punctuation + digits + whitespace + extraMarks,

		DropWordsWithSubstrings: true,
		ForbiddenSubstrings:     []string{"http", "www", ".com", "href", "//"},
		DropLongWords:           true,
		LongWordCutoff:          25,

		CheckEmpty: true,

		CheckSpecialChars:  true,
		SpecialCharsCutoff: 0.40,

		CheckStopwords:    true,
		StopwordMinCutoff: 0.00,
		StopwordMaxCutoff: 0.90,

		CheckBadwords:  true,
		BadwordsCutoff: 0.20,

		CheckLangID:  true,
		LangIDCutoff: 0.70,

		CheckPerplexity:  false,
		PerplexityCutoff: 1000,
	}
}

// DefaultTable returns the built-in parameter table: a conservative default
// entry plus tuned entries for the languages whose corpora have been
// inspected by hand.
func DefaultTable() *Table {
	def := baseConfig()

	en := def
	en.LongWordCutoff = 25
	en.SpecialCharsCutoff = 0.30
	en.StopwordMinCutoff = 0.02
	en.StopwordMaxCutoff = 0.75
	en.BadwordsCutoff = 0.045
	en.LangIDCutoff = 0.80
	en.CheckPerplexity = true
	en.PerplexityCutoff = 2500

	fr := def
	fr.SpecialCharsCutoff = 0.30
	fr.StopwordMinCutoff = 0.02
	fr.StopwordMaxCutoff = 0.80
	fr.BadwordsCutoff = 0.05
	fr.LangIDCutoff = 0.80
	fr.CheckPerplexity = true
	fr.PerplexityCutoff = 2800

	de := def
	de.LongWordCutoff = 40
	de.SpecialCharsCutoff = 0.30
	de.StopwordMinCutoff = 0.01
	de.StopwordMaxCutoff = 0.80
	de.BadwordsCutoff = 0.05
	de.LangIDCutoff = 0.80

	es := fr
	pt := fr
	it := fr

	// Scripts without space-separated words: token-length and stopword
	// heuristics do not transfer, so those stages relax or switch off.
	zh := def
	zh.DropLongWords = false
	zh.LongWordCutoff = 1000
	zh.CheckStopwords = false
	zh.SpecialCharsCutoff = 0.45
	zh.LangIDCutoff = 0.75

	ja := zh
	th := zh

	ar := def
	ar.SpecialCharsCutoff = 0.45
	ar.StopwordMaxCutoff = 0.80
	ar.LangIDCutoff = 0.75

	ru := def
	ru.SpecialCharsCutoff = 0.35
	ru.StopwordMinCutoff = 0.01
	ru.StopwordMaxCutoff = 0.80
	ru.LangIDCutoff = 0.80

	hi := def
	hi.SpecialCharsCutoff = 0.45
	hi.LangIDCutoff = 0.70

	vi := def
	vi.SpecialCharsCutoff = 0.35
	vi.LangIDCutoff = 0.75

	t, err := New(map[string]FilterConfig{
		DefaultLang: def,
		"en":        en,
		"fr":        fr,
		"de":        de,
		"es":        es,
		"pt":        pt,
		"it":        it,
		"zh":        zh,
		"ja":        ja,
		"th":        th,
		"ar":        ar,
		"ru":        ru,
		"hi":        hi,
		"vi":        vi,
	})
	if err != nil {
		// the built-in map always carries a default entry
		panic(err)
	}
	return t
}
