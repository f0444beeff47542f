package langs

// Default returns the built-in registry. It carries one entry per language
// the classifier distinguishes, keyed by ISO 639-1 code, with classifier
// labels in ISO 639-3. Stopword ids follow the lexicon distribution names;
// badword and model ids reuse the language code. Blank ids mark languages
// for which no such resource is published.
func Default() *Table {
	t, err := New(defaultEntries)
	if err != nil {
		// the built-in entries are unique by construction
		panic(err)
	}
	return t
}

var defaultEntries = []Entry{
	{Code: "af", Classifier: "afr", Model: "af"},
	{Code: "ar", Stopwords: "arabic", Badwords: "ar", Classifier: "ara", Model: "ar"},
	{Code: "az", Stopwords: "azerbaijani", Classifier: "aze", Model: "az"},
	{Code: "be", Classifier: "bel", Model: "be"},
	{Code: "bg", Classifier: "bul", Model: "bg"},
	{Code: "bn", Stopwords: "bengali", Classifier: "ben", Model: "bn"},
	{Code: "bs", Classifier: "bos"},
	{Code: "ca", Stopwords: "catalan", Classifier: "cat", Model: "ca"},
	{Code: "cs", Badwords: "cs", Classifier: "ces", Model: "cs"},
	{Code: "cy", Classifier: "cym"},
	{Code: "da", Stopwords: "danish", Badwords: "da", Classifier: "dan", Model: "da"},
	{Code: "de", Stopwords: "german", Badwords: "de", Classifier: "deu", Model: "de"},
	{Code: "el", Stopwords: "greek", Classifier: "ell", Model: "el"},
	{Code: "en", Stopwords: "english", Badwords: "en", Classifier: "eng", Model: "en"},
	{Code: "eo", Badwords: "eo", Classifier: "epo"},
	{Code: "es", Stopwords: "spanish", Badwords: "es", Classifier: "spa", Model: "es"},
	{Code: "et", Classifier: "est", Model: "et"},
	{Code: "eu", Stopwords: "basque", Classifier: "eus"},
	{Code: "fa", Classifier: "fas", Model: "fa"},
	{Code: "fi", Stopwords: "finnish", Badwords: "fi", Classifier: "fin", Model: "fi"},
	{Code: "fr", Stopwords: "french", Badwords: "fr", Classifier: "fra", Model: "fr"},
	{Code: "ga", Classifier: "gle"},
	{Code: "gu", Classifier: "guj", Model: "gu"},
	{Code: "he", Stopwords: "hebrew", Classifier: "heb", Model: "he"},
	{Code: "hi", Badwords: "hi", Classifier: "hin", Model: "hi"},
	{Code: "hr", Classifier: "hrv", Model: "hr"},
	{Code: "hu", Stopwords: "hungarian", Badwords: "hu", Classifier: "hun", Model: "hu"},
	{Code: "hy", Classifier: "hye", Model: "hy"},
	{Code: "id", Stopwords: "indonesian", Classifier: "ind", Model: "id"},
	{Code: "is", Classifier: "isl", Model: "is"},
	{Code: "it", Stopwords: "italian", Badwords: "it", Classifier: "ita", Model: "it"},
	{Code: "ja", Badwords: "ja", Classifier: "jpn", Model: "ja"},
	{Code: "ka", Classifier: "kat", Model: "ka"},
	{Code: "kk", Stopwords: "kazakh", Classifier: "kaz", Model: "kk"},
	{Code: "ko", Badwords: "ko", Classifier: "kor", Model: "ko"},
	{Code: "la", Classifier: "lat"},
	{Code: "lg", Classifier: "lug"},
	{Code: "lt", Classifier: "lit", Model: "lt"},
	{Code: "lv", Classifier: "lav", Model: "lv"},
	{Code: "mi", Classifier: "mri"},
	{Code: "mk", Classifier: "mkd", Model: "mk"},
	{Code: "mn", Classifier: "mon", Model: "mn"},
	{Code: "mr", Classifier: "mar", Model: "mr"},
	{Code: "ms", Classifier: "msa"},
	{Code: "nb", Stopwords: "norwegian", Badwords: "no", Classifier: "nob", Model: "no"},
	{Code: "nl", Stopwords: "dutch", Badwords: "nl", Classifier: "nld", Model: "nl"},
	{Code: "nn", Stopwords: "norwegian", Classifier: "nno"},
	{Code: "pa", Classifier: "pan"},
	{Code: "pl", Badwords: "pl", Classifier: "pol", Model: "pl"},
	{Code: "pt", Stopwords: "portuguese", Badwords: "pt", Classifier: "por", Model: "pt"},
	{Code: "ro", Stopwords: "romanian", Classifier: "ron", Model: "ro"},
	{Code: "ru", Stopwords: "russian", Badwords: "ru", Classifier: "rus", Model: "ru"},
	{Code: "sk", Classifier: "slk", Model: "sk"},
	{Code: "sl", Stopwords: "slovene", Classifier: "slv", Model: "sl"},
	{Code: "sn", Classifier: "sna"},
	{Code: "so", Classifier: "som"},
	{Code: "sq", Classifier: "sqi", Model: "sq"},
	{Code: "sr", Classifier: "srp", Model: "sr"},
	{Code: "st", Classifier: "sot"},
	{Code: "sv", Stopwords: "swedish", Badwords: "sv", Classifier: "swe", Model: "sv"},
	{Code: "sw", Classifier: "swa", Model: "sw"},
	{Code: "ta", Classifier: "tam", Model: "ta"},
	{Code: "te", Classifier: "tel", Model: "te"},
	{Code: "th", Badwords: "th", Classifier: "tha", Model: "th"},
	{Code: "tl", Badwords: "tl", Classifier: "tgl", Model: "tl"},
	{Code: "tn", Classifier: "tsn"},
	{Code: "tr", Stopwords: "turkish", Badwords: "tr", Classifier: "tur", Model: "tr"},
	{Code: "ts", Classifier: "tso"},
	{Code: "uk", Classifier: "ukr", Model: "uk"},
	{Code: "ur", Classifier: "urd", Model: "ur"},
	{Code: "vi", Classifier: "vie", Model: "vi"},
	{Code: "xh", Classifier: "xho"},
	{Code: "yo", Classifier: "yor"},
	{Code: "zh", Stopwords: "chinese", Badwords: "zh", Classifier: "zho", Model: "zh"},
	{Code: "zu", Classifier: "zul"},
}
